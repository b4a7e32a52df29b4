package domain

import "fmt"

// MessageType is the kind of a Message.
type MessageType string

const (
	// MessageStatus is an informational line.
	MessageStatus MessageType = "STATUS"
	// MessageProgress reports the advance of a transfer or batch.
	MessageProgress MessageType = "PROGRESS"
	// MessageWarn is a recoverable problem.
	MessageWarn MessageType = "WARN"
	// MessageError is a failure.
	MessageError MessageType = "ERROR"
	// MessageDone marks the successful completion of an operation.
	MessageDone MessageType = "DONE"
)

// ProgressUnit is what a progress count measures.
type ProgressUnit string

const (
	// UnitByte counts transferred bytes.
	UnitByte ProgressUnit = "BYTE"
	// UnitPackage counts processed packages.
	UnitPackage ProgressUnit = "PACKAGE"
)

// Progress is the payload of a PROGRESS message. Total is -1 when unknown.
type Progress struct {
	Label   string
	Unit    ProgressUnit
	Current int64
	Total   int64
}

// Message is a single event on the reporting bus.
type Message struct {
	Type     MessageType
	Text     string
	Progress *Progress
}

// Status creates a STATUS message.
func Status(format string, args ...any) Message {
	return Message{Type: MessageStatus, Text: fmt.Sprintf(format, args...)}
}

// Warn creates a WARN message.
func Warn(format string, args ...any) Message {
	return Message{Type: MessageWarn, Text: fmt.Sprintf(format, args...)}
}

// Failure creates an ERROR message.
func Failure(format string, args ...any) Message {
	return Message{Type: MessageError, Text: fmt.Sprintf(format, args...)}
}

// Done creates a DONE message.
func Done() Message {
	return Message{Type: MessageDone}
}

// ProgressOf creates a PROGRESS message.
func ProgressOf(label string, unit ProgressUnit, current, total int64) Message {
	return Message{
		Type: MessageProgress,
		Text: label,
		Progress: &Progress{
			Label:   label,
			Unit:    unit,
			Current: current,
			Total:   total,
		},
	}
}

// OutputType selects how messages are serialized.
type OutputType string

const (
	// OutputText writes human readable lines.
	OutputText OutputType = "TEXT"
	// OutputJSON writes one JSON array per line.
	OutputJSON OutputType = "JSON"
	// OutputJSON0 writes JSON arrays terminated by NUL bytes.
	OutputJSON0 OutputType = "JSON_0"
)

// ParseOutputType converts a flag value to an OutputType.
func ParseOutputType(s string) (OutputType, error) {
	switch t := OutputType(s); t {
	case OutputText, OutputJSON, OutputJSON0:
		return t, nil
	default:
		return "", ErrInvalidOutputType
	}
}
