package csgobig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rosarz/therosarz-site/model"
)

const CSGOBigURL = "https://csgobig.com"

// ErrRateLimited is returned when the API reports its own soft rate
// limit inside a 200 body. It is not a generic failure: callers should
// back off and serve fallback data instead of retrying.
var ErrRateLimited = errors.New("csgobig rate limit reached")

type Client interface {
	RefDetails(code string, from, to time.Time) ([]model.LeaderboardEntry, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	c := &client{
		url: CSGOBigURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (c *client) RefDetails(code string, from, to time.Time) ([]model.LeaderboardEntry, error) {
	url := fmt.Sprintf("%s/api/partners/getRefDetails/%s?from=%d&to=%d", c.url, code, from.UnixMilli(), to.UnixMilli())
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating csgobig http request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending csgobig http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status code from csgobig: %d: %s", resp.StatusCode, body)
	}

	var parsed refDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from csgobig: %w", err)
	}

	if !parsed.Success {
		if strings.Contains(strings.ToLower(parsed.Error), "rate limit") {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, parsed.Error)
		}
		return nil, fmt.Errorf("csgobig reported failure: %s", parsed.Error)
	}

	results := make([]model.LeaderboardEntry, 0, len(parsed.Results))
	for i, p := range parsed.Results {
		results = append(results, p.toEntry(i))
	}
	return results, nil
}
