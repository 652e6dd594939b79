package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
		want Directive
		ok   bool
	}{
		{
			name: "plain directive",
			line: "cache=example.Cache",
			want: Directive{Name: "cache", Values: []Value{{Type: "example.Cache"}}},
			ok:   true,
		},
		{
			name: "optional key",
			line: "?metrics=example.Metrics",
			want: Directive{Optional: true, Name: "metrics", Values: []Value{{Type: "example.Metrics"}}},
			ok:   true,
		},
		{
			name: "child value",
			line: "bus=+example.Subscriber",
			want: Directive{Name: "bus", Values: []Value{{Child: true, Type: "example.Subscriber"}}},
			ok:   true,
		},
		{
			name: "mixed value list preserves order",
			line: "bus=example.Bus,+example.First,+example.Second",
			want: Directive{Name: "bus", Values: []Value{
				{Type: "example.Bus"},
				{Child: true, Type: "example.First"},
				{Child: true, Type: "example.Second"},
			}},
			ok: true,
		},
		{
			name: "whitespace tolerated",
			line: "  cache = example.Cache , +example.Child ",
			want: Directive{Name: "cache", Values: []Value{
				{Type: "example.Cache"},
				{Child: true, Type: "example.Child"},
			}},
			ok: true,
		},
		{name: "no equals sign", line: "just a comment line", ok: false},
		{name: "legacy section header", line: "[section]=whatever", ok: false},
		{name: "blank line", line: "", ok: false},
		{name: "empty key", line: "=example.Cache", ok: false},
		{name: "bare optional marker", line: "?=example.Cache", ok: false},
		{name: "empty value list", line: "cache=", ok: false},
		{name: "only separators", line: "cache= , ,", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
