package mockplatform

import (
	"time"

	"github.com/rosarz/therosarz-site/model"
	"github.com/stretchr/testify/mock"
)

type RainClient struct {
	mock.Mock
}

func (c *RainClient) Leaderboard(start, end time.Time, typ, code string) ([]model.LeaderboardEntry, error) {
	args := c.Called(start, end, typ, code)

	var res []model.LeaderboardEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeaderboardEntry)
	}

	return res, args.Error(1)
}

type ClashClient struct {
	mock.Mock
}

func (c *ClashClient) Leaderboard(leaderboardID string) ([]model.LeaderboardEntry, error) {
	args := c.Called(leaderboardID)

	var res []model.LeaderboardEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeaderboardEntry)
	}

	return res, args.Error(1)
}

type CSGOBigClient struct {
	mock.Mock
}

func (c *CSGOBigClient) RefDetails(code string, from, to time.Time) ([]model.LeaderboardEntry, error) {
	args := c.Called(code, from, to)

	var res []model.LeaderboardEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeaderboardEntry)
	}

	return res, args.Error(1)
}
