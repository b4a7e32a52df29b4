package bus

import (
	"io"
	"slices"
	"sync"

	"go.trai.ch/pak/internal/adapters/detector"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

var (
	_ ports.ReporterFactory = (*Factory)(nil)
	_ ports.Reporter        = Func(nil)
	_ ports.Reporter        = (*Recorder)(nil)
)

// Factory implements ports.ReporterFactory, picking the TEXT color profile from the writer.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// New returns a reporter writing messages of type t to w.
func (f *Factory) New(w io.Writer, t domain.OutputType) ports.Reporter {
	return New(w, t, detector.Profile(w))
}

// Func adapts a callback to ports.Reporter. A nil Func discards messages.
type Func func(domain.Message)

// Report calls f with msg.
func (f Func) Report(msg domain.Message) {
	if f != nil {
		f(msg)
	}
}

// Discard is a reporter that drops every message.
var Discard ports.Reporter = Func(nil)

// Recorder keeps every reported message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []domain.Message
}

// Report appends msg.
func (r *Recorder) Report(msg domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded messages in arrival order.
func (r *Recorder) Messages() []domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.messages)
}

// Texts returns the text of every recorded message of type t.
func (r *Recorder) Texts(t domain.MessageType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, m := range r.messages {
		if m.Type == t {
			out = append(out, m.Text)
		}
	}
	return out
}

// Has reports whether a message of type t was recorded.
func (r *Recorder) Has(t domain.MessageType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.ContainsFunc(r.messages, func(m domain.Message) bool { return m.Type == t })
}

// Last returns the last recorded message, if any.
func (r *Recorder) Last() (domain.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return domain.Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
