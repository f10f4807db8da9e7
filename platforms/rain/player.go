package rain

import (
	"encoding/json"
	"fmt"

	"github.com/rosarz/therosarz-site/model"
)

// defaultAvatar matches the site's bundled bot image, used when rain
// does not report an avatar for a participant.
const defaultAvatar = "../bot.png"

type leaderboardResponse struct {
	Results []rainPlayer `json:"results"`
}

// rainPlayer is already close to the common shape; wagered is in the
// final currency unit so no conversion happens here.
type rainPlayer struct {
	Username string          `json:"username"`
	Wagered  json.RawMessage `json:"wagered"`
	Avatar   string          `json:"avatar"`
}

func (p *rainPlayer) toEntry(index int) model.LeaderboardEntry {
	name := p.Username
	if name == "" {
		name = fmt.Sprintf("User%d", index)
	}

	wagered, _ := model.ParseWager(p.Wagered)

	return model.LeaderboardEntry{
		Username: model.Anonymize(name),
		Wagered:  wagered,
		Avatar:   model.AbsoluteAvatar(p.Avatar, "", defaultAvatar),
	}
}
