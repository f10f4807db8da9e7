package clash

import (
	"fmt"

	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/platforms/clash/internal"
)

const defaultAvatar = "../bot.png"

// toEntry maps one topPlayers record to the common shape. Clash
// reports wagers in gem cents, so the amount is divided by 100.
func toEntry(p *internal.Player, index int) model.LeaderboardEntry {
	name := p.Username
	if name == "" {
		name = p.Name
	}
	if name == "" {
		name = fmt.Sprintf("User%d", index)
	}

	raw := p.Wagered
	if len(raw) == 0 {
		raw = p.Wager
	}
	cents, _ := model.ParseWager(raw)

	avatar := p.Avatar
	if avatar == "" {
		avatar = p.AvatarURL
	}

	return model.LeaderboardEntry{
		Username: model.Anonymize(name),
		Wagered:  cents / 100,
		Avatar:   model.AbsoluteAvatar(avatar, ClashURL, defaultAvatar),
	}
}
