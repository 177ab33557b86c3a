package platform

import (
	"context"

	"github.com/orchids/social-analytics/internal/domain"
)

type TikTokInsights struct{}

func (t *TikTokInsights) Demographics(ctx context.Context) (*domain.AudienceDemographics, error) {
	return &domain.AudienceDemographics{
		AgeGroups: map[string]float64{
			"13-17": 18,
			"18-24": 38,
			"25-34": 26,
			"35-44": 11,
			"45+":   7,
		},
		GenderSplit: map[string]float64{
			"female": 54,
			"male":   43,
			"other":  3,
		},
	}, nil
}

func (t *TikTokInsights) TopLocations(ctx context.Context) ([]domain.LocationStat, error) {
	return []domain.LocationStat{
		{Location: "United States", Percent: 28},
		{Location: "Indonesia", Percent: 16},
		{Location: "Brazil", Percent: 12},
		{Location: "Mexico", Percent: 8},
	}, nil
}

func (t *TikTokInsights) TopLanguages(ctx context.Context) ([]domain.LanguageStat, error) {
	return []domain.LanguageStat{
		{Language: "English", Percent: 48},
		{Language: "Spanish", Percent: 18},
		{Language: "Indonesian", Percent: 14},
	}, nil
}

func (t *TikTokInsights) TrendingAudio(ctx context.Context) ([]domain.TrendingAudio, error) {
	return []domain.TrendingAudio{
		{AudioID: "tt-audio-7281", Title: "original sound - viral remix", UseCnt: 1840000},
		{AudioID: "tt-audio-5512", Title: "sped up nightcore edit", UseCnt: 962000},
		{AudioID: "tt-audio-3307", Title: "lofi background beat", UseCnt: 514000},
	}, nil
}
