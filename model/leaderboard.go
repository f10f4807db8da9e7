package model

import (
	"sort"
	"strings"
)

// LeaderboardEntry is one anonymized participant. Wagered is always in
// the platform's whole-currency unit, never subunits.
type LeaderboardEntry struct {
	Username string  `json:"username"`
	Wagered  float64 `json:"wagered"`
	Avatar   string  `json:"avatar"`
}

// LeaderboardResponse is the payload served to clients and the unit of
// caching. The underscore-prefixed fields are only set on fallback
// paths so that a fresh response carries no extra metadata.
type LeaderboardResponse struct {
	Results   []LeaderboardEntry `json:"results"`
	PrizePool string             `json:"prize_pool"`
	Fallback  bool               `json:"_fallback,omitempty"`
	Stale     bool               `json:"_stale,omitempty"`
	Message   string             `json:"_message,omitempty"`
	Source    string             `json:"source,omitempty"`
}

// Clone returns a deep copy. Fallback tagging always happens on a
// clone so cached data is never mutated after being stored.
func (r *LeaderboardResponse) Clone() *LeaderboardResponse {
	if r == nil {
		return nil
	}
	c := *r
	c.Results = make([]LeaderboardEntry, len(r.Results))
	copy(c.Results, r.Results)
	return &c
}

const (
	maxVisibleRunes  = 2
	maxStars         = 6
	maxUsernameRunes = 8
)

// Anonymize hides a display name: the first two characters stay
// visible, followed by one asterisk per hidden character up to six,
// with the whole result capped at eight characters.
func Anonymize(name string) string {
	runes := []rune(name)
	visible := len(runes)
	if visible > maxVisibleRunes {
		visible = maxVisibleRunes
	}
	stars := len(runes) - maxVisibleRunes
	if stars < 0 {
		stars = 0
	}
	if stars > maxStars {
		stars = maxStars
	}

	out := []rune(string(runes[:visible]) + strings.Repeat("*", stars))
	if len(out) > maxUsernameRunes {
		out = out[:maxUsernameRunes]
	}
	return string(out)
}

// AbsoluteAvatar resolves an avatar reference to something a browser
// can load. A missing value falls back to the platform placeholder and
// a root-relative path is rewritten against the platform origin.
// Anything already absolute passes through untouched.
func AbsoluteAvatar(avatar, origin, placeholder string) string {
	if avatar == "" {
		avatar = placeholder
	}
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		return avatar
	}
	if strings.HasPrefix(avatar, "/") && origin != "" {
		return origin + avatar
	}
	return avatar
}

// SortEntries orders entries by wagered amount descending. The sort is
// stable so that ties keep their upstream order.
func SortEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Wagered > entries[j].Wagered
	})
}
