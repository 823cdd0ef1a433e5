package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeGlobal(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.ErrorLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)
	return logs
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		label    string
		wantID   string
		wantName string
		wantLogs []string
	}{
		{name: "valid", id: "A", label: "Course A", wantID: "A", wantName: "Course A"},
		{name: "missing id", id: "", label: "Course A", wantName: "Course A", wantLogs: []string{"An ID must be provided"}},
		{name: "missing name", id: "A", label: "", wantID: "A", wantLogs: []string{"A name must be provided"}},
		{name: "missing both", wantLogs: []string{"An ID must be provided", "A name must be provided"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeGlobal(t)

			it := NewItem(tt.id, tt.label)

			assert.Equal(t, tt.wantID, it.ID())
			assert.Equal(t, tt.wantName, it.Name())

			var got []string
			for _, e := range logs.All() {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantLogs, got)
		})
	}
}

func TestItemRecord(t *testing.T) {
	it := NewItem("B", "Course B")
	assert.Equal(t, Record{ID: "B", Name: "Course B"}, it.Record())
	assert.Equal(t, "Course B (B)", it.String())
}
