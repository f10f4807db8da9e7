package rain

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rosarz/therosarz-site/model"
)

const (
	RainURL = "https://api.rain.gg"

	headerAPIKey = "x-api-key"
)

type Client interface {
	Leaderboard(start, end time.Time, typ, code string) ([]model.LeaderboardEntry, error)
}

type client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func New(apiKey string) (Client, error) {
	c := &client{
		url:    RainURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url, apiKey string) Client {
	return &client{
		url:        url,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

func (c *client) Leaderboard(start, end time.Time, typ, code string) ([]model.LeaderboardEntry, error) {
	q := url.Values{}
	q.Set("start_date", start.UTC().Format(time.RFC3339))
	q.Set("end_date", end.UTC().Format(time.RFC3339))
	q.Set("type", typ)
	q.Set("code", code)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/affiliates/leaderboard?%s", c.url, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating rain http request: %w", err)
	}
	req.Header.Add(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending rain http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status code from rain: %d: %s", resp.StatusCode, body)
	}

	var parsed leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from rain: %w", err)
	}

	results := make([]model.LeaderboardEntry, 0, len(parsed.Results))
	for i, p := range parsed.Results {
		results = append(results, p.toEntry(i))
	}
	return results, nil
}
