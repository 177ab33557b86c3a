package domain

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentResult holds a fused sentiment score in [-1, 1], its label,
// and per-category emotion intensities in [0, 1].
type SentimentResult struct {
	Score    float64
	Label    SentimentLabel
	Emotions map[string]float64
}

func NeutralSentiment() SentimentResult {
	return SentimentResult{
		Score:    0,
		Label:    SentimentNeutral,
		Emotions: map[string]float64{},
	}
}

// BrandMention is one brand occurrence with its surrounding context.
type BrandMention struct {
	Brand   string
	Context string
}

type BrandSentiment struct {
	Brand        string
	MentionCount int
	Sentiment    SentimentResult
}
