package domain

import (
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube,
		PlatformFacebook, PlatformTwitter:
		return true
	}
	return false
}

func AllPlatforms() []Platform {
	return []Platform{
		PlatformInstagram,
		PlatformTikTok,
		PlatformYouTube,
		PlatformFacebook,
		PlatformTwitter,
	}
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

type MetricRecord struct {
	ID           string
	Title        string
	PublishedAt  time.Time
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
	ViewCount    int64
	Tags         []string
	Platform     Platform
}

// EngagementRate floors the denominator at 1 so zero-view records keep
// their raw numerator instead of dividing by zero.
func (r MetricRecord) EngagementRate() float64 {
	views := r.ViewCount
	if views < 1 {
		views = 1
	}
	return float64(r.LikeCount+r.CommentCount+r.ShareCount) / float64(views)
}

func (r MetricRecord) Validate() error {
	if r.ID == "" {
		return ErrInvalidRecordID
	}
	if !r.Platform.IsValid() {
		return ErrInvalidPlatform
	}
	if r.LikeCount < 0 || r.CommentCount < 0 || r.ShareCount < 0 || r.ViewCount < 0 {
		return ErrNegativeCounter
	}
	if r.PublishedAt.IsZero() {
		return ErrMissingPublishTime
	}
	return nil
}

type EngagementTrendPoint struct {
	Timestamp time.Time
	Value     float64
}

type EngagementTrends struct {
	Likes           []EngagementTrendPoint
	Comments        []EngagementTrendPoint
	Views           []EngagementTrendPoint
	EngagementRates []EngagementTrendPoint
}

type ContentPerformance struct {
	TopPerformers       []MetricRecord
	BottomPerformers    []MetricRecord
	ContentTypeAverages map[string]ContentTypeStats
}

type ContentTypeStats struct {
	AvgLikes       float64
	AvgComments    float64
	AvgShares      float64
	AvgViews       float64
	EngagementRate float64
	RecordCount    int
}
