package platform

import (
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/engine"
)

// NewRegistry wires up the platform variants that ship with the
// service. Platforms without a variant (facebook, twitter) are simply
// absent: the engine answers for them with its static defaults.
func NewRegistry() map[domain.Platform]engine.PlatformInsights {
	return map[domain.Platform]engine.PlatformInsights{
		domain.PlatformInstagram: &InstagramInsights{},
		domain.PlatformTikTok:    &TikTokInsights{},
		domain.PlatformYouTube:   &YouTubeInsights{},
	}
}
