package model

import (
	"strings"
)

type Platform string

const (
	PLATFORM_UNKNOWN Platform = "unknown"
	PlatformRain     Platform = "rain"
	PlatformClash    Platform = "clash"
	PlatformCSGOBig  Platform = "csgobig"
)

// AllPlatforms lists every supported platform in refresh order.
var AllPlatforms = []Platform{PlatformRain, PlatformClash, PlatformCSGOBig}

// ParsePlatform maps a site query value to a Platform. An empty value
// selects rain, which is the default platform for the site.
func ParsePlatform(site string) Platform {
	site = strings.ToLower(strings.TrimSpace(site))
	switch site {
	case "", "rain":
		return PlatformRain
	case "clash":
		return PlatformClash
	case "csgobig":
		return PlatformCSGOBig
	default:
		return PLATFORM_UNKNOWN
	}
}
