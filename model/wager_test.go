package model

import (
	"encoding/json"
	"testing"
)

func TestParseWager(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{name: "number", raw: `12345.5`, want: 12345.5, ok: true},
		{name: "integer", raw: `42`, want: 42, ok: true},
		{name: "quoted", raw: `"99.9"`, want: 99.9, ok: true},
		{name: "zero", raw: `0`, want: 0, ok: true},
		{name: "negative", raw: `-5`, want: 0, ok: false},
		{name: "null", raw: `null`, want: 0, ok: false},
		{name: "missing", raw: ``, want: 0, ok: false},
		{name: "garbage", raw: `"abc"`, want: 0, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseWager(json.RawMessage(tc.raw))
			if got != tc.want || ok != tc.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}
