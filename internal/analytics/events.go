// Package analytics appends tool calls and widget API hits as JSON lines to
// per-day files and aggregates them for the dashboard and the report CLI.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Event is one analytics record.
type Event struct {
	ID         string         `json:"id"`
	Time       time.Time      `json:"ts"`
	App        string         `json:"app,omitempty"`
	Kind       string         `json:"kind"` // "tool" or "api"
	Tool       string         `json:"tool,omitempty"`
	DurationMS int64          `json:"dur_ms"`
	OK         bool           `json:"ok"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// Logger appends events to <dir>/events-YYYY-MM-DD.jsonl, rolling at
// midnight boundaries. Writes never fail the request path: on error the
// event is logged and dropped.
type Logger struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

func NewLogger(dir string, logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{dir: dir, logger: logger, now: time.Now}
}

func dayFile(dir, day string) string {
	return filepath.Join(dir, fmt.Sprintf("events-%s.jsonl", day))
}

// Record appends one event, filling ID and Time if unset.
func (l *Logger) Record(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Time.IsZero() {
		ev.Time = l.now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		l.logger.Warn("drop analytics event", zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := ev.Time.Format("2006-01-02")
	if l.file == nil || day != l.day {
		if l.file != nil {
			l.file.Close()
			l.file = nil
		}
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			l.logger.Warn("drop analytics event", zap.Error(err))
			return
		}
		f, err := os.OpenFile(dayFile(l.dir, day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.logger.Warn("drop analytics event", zap.Error(err))
			return
		}
		l.file = f
		l.day = day
	}

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		l.logger.Warn("drop analytics event", zap.Error(err))
	}
}

// Close closes the current day file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// WrapTool returns the tool with its handler instrumented.
func (l *Logger) WrapTool(app string, t server.ServerTool) server.ServerTool {
	inner := t.Handler
	t.Handler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := l.now()
		res, err := inner(ctx, request)
		ok := err == nil && (res == nil || !res.IsError)
		l.Record(Event{
			App:        app,
			Kind:       "tool",
			Tool:       t.Tool.Name,
			DurationMS: l.now().Sub(start).Milliseconds(),
			OK:         ok,
		})
		return res, err
	}
	return t
}
