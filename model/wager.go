package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseWager reads a wager amount out of a raw JSON value. Upstream
// APIs are not consistent about whether amounts arrive as numbers or
// quoted strings, so both are accepted. The second return is false
// when the value is missing or unparseable, which callers turn into a
// zero-wager placeholder instead of failing the batch.
func ParseWager(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.Trim(s, `"`)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
