package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogDrain writes events to an io.Writer as structured log lines, either
// human-readable text or JSONL.
type LogDrain struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogDrain creates a LogDrain writing to writer (os.Stdout if nil) in
// text mode, or JSONL if jsonMode is true.
func NewLogDrain(writer io.Writer, jsonMode bool) *LogDrain {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogDrain{writer: writer, jsonMode: jsonMode}
}

// Handle writes one event line.
func (l *LogDrain) Handle(event Event) {
	if l.jsonMode {
		l.handleJSON(event)
		return
	}
	l.handleText(event)
}

func (l *LogDrain) handleJSON(event Event) {
	data, err := json.Marshal(struct {
		Kind      Kind           `json:"kind"`
		Timestamp string         `json:"timestamp"`
		NodeID    string         `json:"nodeId,omitempty"`
		Data      map[string]any `json:"data,omitempty"`
	}{
		Kind:      event.Kind,
		Timestamp: event.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		NodeID:    event.NodeID,
		Data:      event.Data,
	})
	if err != nil {
		_, _ = fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	_, _ = fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogDrain) handleText(event Event) {
	_, _ = fmt.Fprintf(l.writer, "[%s] nodeId=%s", event.Kind, event.NodeID)
	if len(event.Data) > 0 {
		if data, err := json.Marshal(event.Data); err == nil {
			_, _ = fmt.Fprintf(l.writer, " data=%s", data)
		}
	}
	_, _ = fmt.Fprint(l.writer, "\n")
}
