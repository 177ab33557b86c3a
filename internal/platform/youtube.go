package platform

import (
	"context"

	"github.com/orchids/social-analytics/internal/domain"
)

type YouTubeInsights struct{}

func (y *YouTubeInsights) Demographics(ctx context.Context) (*domain.AudienceDemographics, error) {
	return &domain.AudienceDemographics{
		AgeGroups: map[string]float64{
			"13-17": 6,
			"18-24": 23,
			"25-34": 31,
			"35-44": 22,
			"45+":   18,
		},
		GenderSplit: map[string]float64{
			"female": 46,
			"male":   52,
			"other":  2,
		},
	}, nil
}

func (y *YouTubeInsights) TopLocations(ctx context.Context) ([]domain.LocationStat, error) {
	return []domain.LocationStat{
		{Location: "United States", Percent: 32},
		{Location: "India", Percent: 18},
		{Location: "United Kingdom", Percent: 9},
		{Location: "Germany", Percent: 6},
	}, nil
}

func (y *YouTubeInsights) TopLanguages(ctx context.Context) ([]domain.LanguageStat, error) {
	return []domain.LanguageStat{
		{Language: "English", Percent: 62},
		{Language: "Hindi", Percent: 12},
		{Language: "German", Percent: 6},
	}, nil
}

func (y *YouTubeInsights) TrendingAudio(ctx context.Context) ([]domain.TrendingAudio, error) {
	return nil, nil
}
