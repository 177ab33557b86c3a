package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRate_FloorsDenominator(t *testing.T) {
	rec := MetricRecord{LikeCount: 7, CommentCount: 2, ShareCount: 1}

	// Zero views: the numerator passes through undivided.
	assert.Equal(t, 10.0, rec.EngagementRate())

	rec.ViewCount = 100
	assert.Equal(t, 0.1, rec.EngagementRate())
}

func TestMetricRecord_Validate(t *testing.T) {
	valid := MetricRecord{
		ID:          "post-1",
		Platform:    PlatformTikTok,
		PublishedAt: time.Now(),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*MetricRecord)
		wantErr error
	}{
		{"missing ID", func(r *MetricRecord) { r.ID = "" }, ErrInvalidRecordID},
		{"unknown platform", func(r *MetricRecord) { r.Platform = "friendster" }, ErrInvalidPlatform},
		{"negative likes", func(r *MetricRecord) { r.LikeCount = -1 }, ErrNegativeCounter},
		{"negative views", func(r *MetricRecord) { r.ViewCount = -1 }, ErrNegativeCounter},
		{"zero publish time", func(r *MetricRecord) { r.PublishedAt = time.Time{} }, ErrMissingPublishTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			assert.ErrorIs(t, rec.Validate(), tt.wantErr)
		})
	}
}

func TestPlatform_IsValid(t *testing.T) {
	for _, p := range AllPlatforms() {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, Platform("myspace").IsValid())
	assert.False(t, Platform("").IsValid())
	assert.False(t, Platform("Instagram").IsValid(), "platform names are lowercase")
}

func TestValidationError_MessageIncludesFields(t *testing.T) {
	err := NewValidationError(ErrInvalidTimeRange, "invalid time range", map[string]string{
		"start_date": "not parseable",
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Contains(t, err.Error(), "invalid time range")
	assert.Contains(t, err.Error(), "start_date: not parseable")
}

func TestValidationError_UnwrapsToItsOwnSentinel(t *testing.T) {
	err := NewValidationError(ErrInvalidPlatform, "invalid platform", map[string]string{
		"platform": "unknown value",
	})

	assert.ErrorIs(t, err, ErrInvalidPlatform)
	assert.NotErrorIs(t, err, ErrInvalidTimeRange)
}
