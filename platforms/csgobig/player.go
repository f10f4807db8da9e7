package csgobig

import (
	"encoding/json"
	"fmt"

	"github.com/rosarz/therosarz-site/model"
)

const defaultAvatar = "/assets/img/censored_avatar.png"

type refDetailsResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Results []csgobigPlayer `json:"results"`
}

type csgobigPlayer struct {
	Name       string          `json:"name"`
	WagerTotal json.RawMessage `json:"wagerTotal"`
	Img        string          `json:"img"`
}

func (p *csgobigPlayer) toEntry(index int) model.LeaderboardEntry {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("User%d", index)
	}

	wagered, _ := model.ParseWager(p.WagerTotal)

	return model.LeaderboardEntry{
		Username: model.Anonymize(name),
		Wagered:  wagered,
		Avatar:   model.AbsoluteAvatar(p.Img, CSGOBigURL, defaultAvatar),
	}
}
