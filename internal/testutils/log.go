package testutils

import (
	"context"
	"log/slog"
	"strings"
)

// MockHandler is a slog.Handler keeping every record it handles.
// Attributes added through With and groups are dropped: only the record level, message and own attributes are kept.
// It is not safe for concurrent use.
type MockHandler struct {
	records []slog.Record
}

// NewMockHandler returns a new MockHandler.
func NewMockHandler() MockHandler {
	return MockHandler{}
}

// Enabled implements Handler.Enabled. Every level is recorded.
func (h *MockHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements Handler.Handle.
func (h *MockHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

// WithAttrs implements Handler.WithAttrs.
func (h *MockHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

// WithGroup implements Handler.WithGroup.
func (h *MockHandler) WithGroup(string) slog.Handler {
	return h
}

// Messages returns the messages of the records handled at level.
func (h *MockHandler) Messages(level slog.Level) []string {
	var msgs []string
	for _, r := range h.records {
		if r.Level == level {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}

// Logged reports if a record at level has a message containing msg.
func (h *MockHandler) Logged(level slog.Level, msg string) bool {
	for _, m := range h.Messages(level) {
		if strings.Contains(m, msg) {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute key of the first record whose message contains msg.
func (h *MockHandler) Attr(msg, key string) (v slog.Value, found bool) {
	for _, r := range h.records {
		if !strings.Contains(r.Message, msg) {
			continue
		}
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				v, found = a.Value, true
				return false
			}
			return true
		})
		if found {
			return v, true
		}
	}
	return v, false
}
