package internal

import (
	"encoding/json"
	"errors"
	"strings"
)

// Leaderboard is one entry from the affiliate's my-leaderboards
// listing. The ID arrives as either a number or a quoted string
// depending on the API revision, so it is kept raw until compared.
type Leaderboard struct {
	ID         json.RawMessage `json:"id"`
	StartDate  string          `json:"startDate"`
	TopPlayers []Player        `json:"topPlayers"`
}

// IDString renders the leaderboard ID for comparisons, regardless of
// whether the wire value was numeric or quoted.
func (l *Leaderboard) IDString() string {
	return strings.Trim(strings.TrimSpace(string(l.ID)), `"`)
}

type Player struct {
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	Wagered   json.RawMessage `json:"wagered"`
	Wager     json.RawMessage `json:"wager"`
	Avatar    string          `json:"avatar"`
	AvatarURL string          `json:"avatarUrl"`
}

// ParseListing accepts the three payload shapes the listing endpoint
// has been observed to return: a bare array of leaderboards, an object
// wrapping the array in a "data" field, and a single leaderboard
// object.
func ParseListing(body []byte) ([]Leaderboard, error) {
	var boards []Leaderboard
	if err := json.Unmarshal(body, &boards); err == nil {
		return boards, nil
	}

	var wrapped struct {
		Data []Leaderboard `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var single Leaderboard
	if err := json.Unmarshal(body, &single); err == nil && (single.ID != nil || single.TopPlayers != nil) {
		return []Leaderboard{single}, nil
	}

	return nil, errors.New("listing payload has no recognizable leaderboards")
}
