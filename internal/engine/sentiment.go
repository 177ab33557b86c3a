package engine

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/orchids/social-analytics/internal/domain"
)

// SummaryResult is what the external summarization collaborator
// returns. The Sentiment field is free text and treated as unreliable.
type SummaryResult struct {
	Summary   string
	Sentiment string
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (*SummaryResult, error)
}

// fusionWeights are applied positionally to the scores in the order
// lexicon, pattern, contextual. When fewer signals are present only
// the leading weights participate, which silently shifts weight onto
// whichever signals happen to occupy those positions. Preserved as-is
// until product clarifies intent; see the fusion tests.
var fusionWeights = []float64{0.4, 0.3, 0.3}

const (
	positiveLabelThreshold = 0.1
	negativeLabelThreshold = -0.1
	emotionStep            = 0.3
)

var positiveWords = map[string]bool{
	"good": true, "great": true, "awesome": true, "amazing": true,
	"excellent": true, "love": true, "perfect": true, "fantastic": true,
	"wonderful": true, "best": true, "happy": true, "beautiful": true,
	"brilliant": true, "incredible": true, "enjoy": true, "impressive": true,
	"recommend": true, "stunning": true, "flawless": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "worst": true, "poor": true, "disappointing": true,
	"ugly": true, "broken": true, "useless": true, "waste": true,
	"boring": true, "annoying": true, "scam": true, "refund": true,
	"garbage": true, "overpriced": true,
}

var positiveEmojiTokens = map[string]bool{
	":)": true, ":-)": true, ":d": true, "=)": true, "<3": true,
	"🙂": true, "😊": true, "😍": true, "👍": true, "❤️": true,
}

var negativeEmojiTokens = map[string]bool{
	":(": true, ":-(": true, "=(": true,
	"😞": true, "😠": true, "😡": true, "👎": true, "💔": true,
}

var emotionKeywords = map[string][]string{
	"joy":      {"happy", "love", "joy", "excited", "amazing", "wonderful", "delighted", "great"},
	"anger":    {"angry", "furious", "mad", "hate", "annoyed", "outraged"},
	"sadness":  {"sad", "unhappy", "depressed", "crying", "miserable", "heartbroken"},
	"fear":     {"afraid", "scared", "terrified", "worried", "anxious", "nervous"},
	"surprise": {"surprised", "shocked", "unexpected", "unbelievable", "wow", "stunned"},
	"disgust":  {"disgusting", "gross", "awful", "nasty", "revolting", "vile"},
}

// SentimentEngine fuses lexicon, pattern and contextual signals into a
// single score. It is a pure pipeline per input text; the only outside
// call is the optional summarizer, whose failures never propagate.
type SentimentEngine struct {
	summarizer Summarizer
}

func NewSentimentEngine(summarizer Summarizer) *SentimentEngine {
	return &SentimentEngine{summarizer: summarizer}
}

func (e *SentimentEngine) Analyze(ctx context.Context, text string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.NeutralSentiment()
	}

	scores := []float64{
		lexiconScore(text),
		patternScore(text),
	}
	if e.summarizer != nil {
		scores = append(scores, e.contextualScore(ctx, text))
	}

	score := fuseScores(scores)
	label := labelForScore(score)

	return domain.SentimentResult{
		Score:    score,
		Label:    label,
		Emotions: detectEmotions(text, label),
	}
}

func lexiconScore(text string) float64 {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return 0
	}

	raw := 0.0
	for _, token := range tokens {
		word := strings.Trim(token, ".,!?;:'\"()")
		if positiveWords[word] {
			raw++
		} else if negativeWords[word] {
			raw--
		}
	}

	divisor := float64(len(tokens)) / 10
	if divisor < 1 {
		divisor = 1
	}

	return clamp(raw/divisor, -1, 1)
}

func patternScore(text string) float64 {
	score := 0.0

	exclaim := float64(strings.Count(text, "!")) * 0.1
	if exclaim > 0.3 {
		exclaim = 0.3
	}
	score += exclaim

	if strings.Count(text, "?") > 2 {
		score -= 0.1
	}

	capsTokens := countAllCapsTokens(text)
	if capsTokens > 3 {
		score -= 0.2
	} else if capsTokens > 0 {
		score += 0.1
	}

	if hasRepeatedRun(text, 3) {
		score += 0.15
	}

	for _, token := range strings.Fields(strings.ToLower(text)) {
		if positiveEmojiTokens[token] {
			score += 0.2
		} else if negativeEmojiTokens[token] {
			score -= 0.2
		}
	}

	return clamp(score, -1, 1)
}

// contextualScore asks the summarizer for a short summary and keyword
// matches its reported sentiment. Collaborator failure substitutes
// neutral; the caller never sees the error.
func (e *SentimentEngine) contextualScore(ctx context.Context, text string) float64 {
	summary, err := e.summarizer.Summarize(ctx, text)
	if err != nil || summary == nil {
		return 0
	}

	sentiment := strings.ToLower(summary.Sentiment)
	switch {
	case strings.Contains(sentiment, "positive"), strings.Contains(sentiment, "good"):
		return 0.6
	case strings.Contains(sentiment, "negative"), strings.Contains(sentiment, "bad"):
		return -0.6
	}
	return 0
}

func fuseScores(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	weighted := 0.0
	totalWeight := 0.0
	for i, score := range scores {
		if i >= len(fusionWeights) {
			break
		}
		weighted += score * fusionWeights[i]
		totalWeight += fusionWeights[i]
	}
	if totalWeight == 0 {
		return 0
	}

	return clamp(weighted/totalWeight, -1, 1)
}

// labelForScore uses strict thresholds: a score of exactly 0.1 is
// still neutral.
func labelForScore(score float64) domain.SentimentLabel {
	switch {
	case score > positiveLabelThreshold:
		return domain.SentimentPositive
	case score < negativeLabelThreshold:
		return domain.SentimentNegative
	}
	return domain.SentimentNeutral
}

func detectEmotions(text string, label domain.SentimentLabel) map[string]float64 {
	lower := strings.ToLower(text)
	emotions := map[string]float64{}

	for emotion, keywords := range emotionKeywords {
		intensity := 0.0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				intensity += emotionStep
			}
		}
		if intensity > 1 {
			intensity = 1
		}
		if intensity > 0 {
			emotions[emotion] = intensity
		}
	}

	// A positive label with no joy signal still reads as joyful; a
	// negative one with no emotion at all defaults to mild sadness.
	if label == domain.SentimentPositive && emotions["joy"] == 0 {
		emotions["joy"] = 0.5
	}
	if label == domain.SentimentNegative && len(emotions) == 0 {
		emotions["sadness"] = 0.4
	}

	return emotions
}

func countAllCapsTokens(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		letters := 0
		allUpper := true
		for _, r := range token {
			if unicode.IsLetter(r) {
				letters++
				if !unicode.IsUpper(r) {
					allUpper = false
					break
				}
			}
		}
		if allUpper && letters >= 2 {
			count++
		}
	}
	return count
}

func hasRepeatedRun(text string, minRun int) bool {
	run := 1
	var prev rune
	for i, r := range text {
		if i > 0 && r == prev {
			run++
			if run >= minRun {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// ExtractBrandMentions collects sentences naming the brand, each
// padded with its immediate neighbours for context. When no sentence
// matches but the brand appears in the raw text, it falls back to a
// ten-token window either side of the first matching token.
func ExtractBrandMentions(text, brand string) []domain.BrandMention {
	lowerBrand := strings.ToLower(brand)
	if lowerBrand == "" {
		return nil
	}

	var sentences []string
	for _, s := range sentenceSplitter.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	var mentions []domain.BrandMention
	for i, sentence := range sentences {
		if !strings.Contains(strings.ToLower(sentence), lowerBrand) {
			continue
		}
		parts := []string{}
		if i > 0 {
			parts = append(parts, sentences[i-1])
		}
		parts = append(parts, sentence)
		if i < len(sentences)-1 {
			parts = append(parts, sentences[i+1])
		}
		mentions = append(mentions, domain.BrandMention{
			Brand:   brand,
			Context: strings.Join(parts, ". "),
		})
	}

	if len(mentions) == 0 && strings.Contains(strings.ToLower(text), lowerBrand) {
		if window := tokenWindow(text, lowerBrand, 10); window != "" {
			mentions = append(mentions, domain.BrandMention{
				Brand:   brand,
				Context: window,
			})
		}
	}

	return mentions
}

func tokenWindow(text, lowerBrand string, radius int) string {
	tokens := strings.Fields(text)
	for i, token := range tokens {
		if !strings.Contains(strings.ToLower(token), lowerBrand) {
			continue
		}
		start := i - radius
		if start < 0 {
			start = 0
		}
		end := i + radius + 1
		if end > len(tokens) {
			end = len(tokens)
		}
		return strings.Join(tokens[start:end], " ")
	}
	return ""
}

// AnalyzeBrands aggregates sentiment per brand. Brands with no
// extracted context are left out of the map entirely rather than
// reported as neutral.
func (e *SentimentEngine) AnalyzeBrands(ctx context.Context, text string, brands []string) map[string]domain.BrandSentiment {
	results := map[string]domain.BrandSentiment{}

	for _, brand := range brands {
		mentions := ExtractBrandMentions(text, brand)
		if len(mentions) == 0 {
			continue
		}

		if len(mentions) == 1 {
			results[brand] = domain.BrandSentiment{
				Brand:        brand,
				MentionCount: 1,
				Sentiment:    e.Analyze(ctx, mentions[0].Context),
			}
			continue
		}

		sum := 0.0
		merged := map[string]float64{}
		for _, mention := range mentions {
			res := e.Analyze(ctx, mention.Context)
			sum += res.Score
			for emotion, intensity := range res.Emotions {
				if intensity > merged[emotion] {
					merged[emotion] = intensity
				}
			}
		}

		mean := sum / float64(len(mentions))
		results[brand] = domain.BrandSentiment{
			Brand:        brand,
			MentionCount: len(mentions),
			Sentiment: domain.SentimentResult{
				Score:    mean,
				Label:    labelForScore(mean),
				Emotions: merged,
			},
		}
	}

	return results
}
