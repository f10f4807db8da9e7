package model

import (
	"testing"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		site string
		want Platform
	}{
		{site: "rain", want: PlatformRain},
		{site: "clash", want: PlatformClash},
		{site: "csgobig", want: PlatformCSGOBig},
		{site: "", want: PlatformRain},
		{site: "CLASH", want: PlatformClash},
		{site: " csgobig ", want: PlatformCSGOBig},
		{site: "stake", want: PLATFORM_UNKNOWN},
	}

	for _, tc := range tests {
		t.Run(tc.site, func(t *testing.T) {
			got := ParsePlatform(tc.site)
			if got != tc.want {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}
