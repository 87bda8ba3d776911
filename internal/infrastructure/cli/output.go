package cli

import (
	"bytes"
	"io"

	"github.com/doeshing/replize-go/internal/domain"
)

// NewOutputHandler returns the default handler for one subprocess stream. It
// writes the bytes verbatim and ends them with a newline when the command
// did not, so the next prompt starts on its own line.
func NewOutputHandler(w io.Writer) domain.OutputHandler {
	return func(data []byte) error {
		if _, err := w.Write(data); err != nil {
			return err
		}
		if bytes.HasSuffix(data, []byte("\n")) {
			return nil
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}
