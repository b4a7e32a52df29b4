// Package bus serializes reporter messages to a writer.
package bus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/ui/output"
	"go.trai.ch/pak/internal/ui/style"
)

// New returns a reporter encoding messages of type t to w.
// profile only affects TEXT output. Unknown types fall back to TEXT.
func New(w io.Writer, t domain.OutputType, profile termenv.Profile) ports.Reporter {
	switch t {
	case domain.OutputJSON:
		return &jsonReporter{w: w, term: '\n'}
	case domain.OutputJSON0:
		return &jsonReporter{w: w, term: 0}
	default:
		return &textReporter{out: output.NewWithProfile(w, func() termenv.Profile { return profile })}
	}
}

type textReporter struct {
	mu  sync.Mutex
	out *termenv.Output
}

func (r *textReporter) Report(msg domain.Message) {
	line := r.format(msg)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.out, line+"\n")
}

func (r *textReporter) format(msg domain.Message) string {
	switch msg.Type {
	case domain.MessageProgress:
		return formatProgress(msg)
	case domain.MessageWarn:
		return output.Paint(r.out, style.Warning+" "+msg.Text, style.Yellow)
	case domain.MessageError:
		return output.Paint(r.out, style.Cross+" "+msg.Text, style.Red)
	case domain.MessageDone:
		return output.Paint(r.out, style.Check+" Done", style.Green)
	default:
		return msg.Text
	}
}

func formatProgress(msg domain.Message) string {
	p := msg.Progress
	if p == nil {
		return msg.Text
	}
	if p.Total < 0 {
		return fmt.Sprintf("%s: %d %s", p.Label, p.Current, p.Unit)
	}
	return fmt.Sprintf("%s: %d/%d %s", p.Label, p.Current, p.Total, p.Unit)
}

type jsonReporter struct {
	mu   sync.Mutex
	w    io.Writer
	term byte
}

func (r *jsonReporter) Report(msg domain.Message) {
	var payload any = msg.Text
	if msg.Type == domain.MessageProgress && msg.Progress != nil {
		p := msg.Progress
		payload = []any{p.Label, p.Unit, p.Current, p.Total}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{msg.Type, payload}); err != nil {
		return
	}
	// Encode terminates with a newline.
	data := buf.Bytes()
	data[len(data)-1] = r.term

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.w.Write(data)
}
