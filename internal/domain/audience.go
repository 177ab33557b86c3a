package domain

type AudienceDemographics struct {
	AgeGroups    map[string]float64
	GenderSplit  map[string]float64
	TopLocations []LocationStat
	TopLanguages []LanguageStat
}

type LocationStat struct {
	Location string
	Percent  float64
}

type LanguageStat struct {
	Language string
	Percent  float64
}

type TrendingAudio struct {
	AudioID string
	Title   string
	UseCnt  int64
}

// DefaultDemographics is the documented static fallback used when no
// platform collaborator can supply real audience data.
func DefaultDemographics() AudienceDemographics {
	return AudienceDemographics{
		AgeGroups: map[string]float64{
			"13-17": 5,
			"18-24": 30,
			"25-34": 35,
			"35-44": 18,
			"45+":   12,
		},
		GenderSplit: map[string]float64{
			"female": 52,
			"male":   45,
			"other":  3,
		},
		TopLocations: []LocationStat{
			{Location: "United States", Percent: 40},
			{Location: "United Kingdom", Percent: 12},
			{Location: "Canada", Percent: 8},
		},
		TopLanguages: []LanguageStat{
			{Language: "English", Percent: 70},
			{Language: "Spanish", Percent: 12},
		},
	}
}
