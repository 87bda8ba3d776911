package domain

// HistoryEntry is one line recorded in the session history.
type HistoryEntry struct {
	Index int
	Line  string
}
