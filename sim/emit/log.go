package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LogEmitter writes events to a writer as human-readable lines or as JSON
// lines, one event per line.
//
// Text mode:
//
//	[route_selected] seed=42 step=1 nodeID=router-1
//
// JSON mode:
//
//	{"seed":42,"step":1,"nodeID":"router-1","msg":"route_selected","meta":null}
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter writing to w (os.Stdout when nil). Set
// jsonMode for machine-readable JSON lines instead of text.
func NewLogEmitter(w io.Writer, jsonMode bool) *LogEmitter {
	if w == nil {
		w = os.Stdout
	}
	return &LogEmitter{writer: w, jsonMode: jsonMode}
}

// Emit writes the event in the configured format. Write failures are
// discarded: logging must never take down a resolution pass.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

func (l *LogEmitter) emitJSON(event Event) {
	payload := struct {
		Seed   int64          `json:"seed"`
		Step   int            `json:"step"`
		NodeID string         `json:"nodeID,omitempty"`
		Msg    string         `json:"msg"`
		Meta   map[string]any `json:"meta"`
	}{event.Seed, event.Step, event.NodeID, event.Msg, event.Meta}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_, _ = l.writer.Write(append(data, '\n'))
}

func (l *LogEmitter) emitText(event Event) {
	line := fmt.Sprintf("[%s] seed=%d step=%d", event.Msg, event.Seed, event.Step)
	if event.NodeID != "" {
		line += " nodeID=" + event.NodeID
	}
	if len(event.Meta) > 0 {
		if data, err := json.Marshal(event.Meta); err == nil {
			line += " meta=" + string(data)
		}
	}
	_, _ = fmt.Fprintln(l.writer, line)
}
