package domain

// MessageKind selects how a renderer presents a message.
type MessageKind string

const (
	MessagePlain   MessageKind = "plain"
	MessageHeading MessageKind = "heading"
	MessageHelp    MessageKind = "help"
	MessageNotice  MessageKind = "notice"
	MessageWarning MessageKind = "warning"
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// IsDiagnostic reports whether plain renderers should route the kind to stderr.
func (k MessageKind) IsDiagnostic() bool {
	return k == MessageWarning || k == MessageError
}
