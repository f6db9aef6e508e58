package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/stromradar/database"
)

type LogAttrFormat string

const (
	LogAttrFormatText LogAttrFormat = "TEXT"
	LogAttrFormatJSON LogAttrFormat = "JSON"
)

type LogStore interface {
	SaveLogEntry(ctx context.Context, r database.LogEntryRow) error
}

// SQLiteHandler stores records in the log table. Attributes added with
// WithAttrs are kept, groups are flattened.
type SQLiteHandler struct {
	store    LogStore
	minLevel slog.Level
	format   LogAttrFormat
	attrs    []slog.Attr
}

func NewSQLiteHandler(store LogStore, minLevel slog.Level, format LogAttrFormat) *SQLiteHandler {
	return &SQLiteHandler{store: store, minLevel: minLevel, format: format}
}

func (h *SQLiteHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.minLevel {
		return nil
	}

	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, a)
		return true
	})

	return h.store.SaveLogEntry(ctx, database.LogEntryRow{
		Timestamp: time.Now(),
		Level:     int(r.Level),
		Message:   r.Message,
		Attrs:     h.formatAttrs(all),
	})
}

func (h *SQLiteHandler) formatAttrs(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}

	if strings.EqualFold(string(h.format), string(LogAttrFormatText)) {
		var b strings.Builder
		for _, a := range attrs {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(a.Key)
			b.WriteString("=")
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(a.Value.String(), "=", "\\="), ";", "\\;"))
		}
		return b.String()
	}

	list := make([]map[string]string, 0, len(attrs))
	for _, a := range attrs {
		list = append(list, map[string]string{a.Key: a.Value.String()})
	}
	jsonBytes, err := json.Marshal(list)
	if err != nil {
		return fmt.Sprintf(`{"error": "%v"}`, err)
	}
	return string(jsonBytes)
}

func (h *SQLiteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *SQLiteHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *SQLiteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel
}
