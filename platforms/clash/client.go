package clash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/platforms/clash/internal"
	"golang.org/x/oauth2"
)

const ClashURL = "https://clash.gg"

type Client interface {
	// Leaderboard fetches the affiliate's leaderboards and returns the
	// players of the selected one. leaderboardID selects an exact
	// leaderboard when non-empty; see selectLeaderboard for the
	// fallback policy when it is empty or not found.
	Leaderboard(leaderboardID string) ([]model.LeaderboardEntry, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(token string) (Client, error) {
	c := &client{
		url:        ClashURL,
		httpClient: bearerClient(token),
	}
	c.httpClient.Timeout = 10 * time.Second
	return c, nil
}

func NewForTest(url, token string) Client {
	return &client{
		url:        url,
		httpClient: bearerClient(token),
	}
}

// bearerClient wraps the static affiliate token in an oauth2 transport
// so every request carries the Authorization header.
func bearerClient(token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(context.Background(), ts)
}

func (c *client) Leaderboard(leaderboardID string) ([]model.LeaderboardEntry, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/affiliates/leaderboards/my-leaderboards-api", c.url), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating clash http request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending clash http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status code from clash: %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading clash response: %w", err)
	}

	boards, err := internal.ParseListing(body)
	if err != nil {
		return nil, fmt.Errorf("error parsing response from clash: %w", err)
	}

	target := selectLeaderboard(boards, leaderboardID)
	if target == nil {
		return nil, errors.New("clash listing contains no leaderboards")
	}

	results := make([]model.LeaderboardEntry, 0, len(target.TopPlayers))
	for i, p := range target.TopPlayers {
		results = append(results, toEntry(&p, i))
	}
	return results, nil
}

// selectLeaderboard picks which leaderboard to serve: an exact match
// on the configured ID when one is set, otherwise the most recently
// started by startDate, otherwise the first in listing order.
func selectLeaderboard(boards []internal.Leaderboard, leaderboardID string) *internal.Leaderboard {
	if len(boards) == 0 {
		return nil
	}

	if leaderboardID != "" {
		for i := range boards {
			if boards[i].IDString() == leaderboardID {
				return &boards[i]
			}
		}
	}

	best := 0
	bestStart, bestOK := parseStartDate(boards[0].StartDate)
	for i := 1; i < len(boards); i++ {
		start, ok := parseStartDate(boards[i].StartDate)
		if !ok {
			continue
		}
		if !bestOK || start.After(bestStart) {
			best, bestStart, bestOK = i, start, true
		}
	}
	return &boards[best]
}

func parseStartDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
