package otel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingSpan struct {
	noop.Span
	errs []error
}

func (r *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	r.errs = append(r.errs, err)
}

type roomID string

func (r roomID) String() string { return "room:" + string(r) }

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{name: "bool", value: true, want: attribute.BoolValue(true)},
		{name: "string", value: "pending", want: attribute.StringValue("pending")},
		{name: "int", value: 3, want: attribute.IntValue(3)},
		{name: "int64", value: int64(30000), want: attribute.Int64Value(30000)},
		{name: "float64", value: 299.5, want: attribute.Float64Value(299.5)},
		{name: "strings", value: []string{"wifi", "pool"}, want: attribute.StringSliceValue([]string{"wifi", "pool"})},
		{name: "time", value: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), want: attribute.StringValue("2024-06-01T00:00:00Z")},
		{name: "stringer", value: roomID("r1"), want: attribute.StringValue("room:r1")},
		{name: "fallback", value: struct{ N int }{N: 2}, want: attribute.StringValue("{2}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toAttribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}

func TestScope_TraceErrorIgnoresNil(t *testing.T) {
	rec := &recordingSpan{}
	scope := NewScope(rec)

	scope.TraceIfError(nil)
	assert.Empty(t, rec.errs)

	scope.TraceIfError(errors.New("boom"))
	assert.Len(t, rec.errs, 1)
}
