package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	t.Run("success counts path and created rows", func(t *testing.T) {
		beforeRuns := testutil.ToFloat64(RecommendationRuns.WithLabelValues(PathProfile))
		beforeCreated := testutil.ToFloat64(RecommendationsCreated)

		RecordGeneration(PathProfile, 7, 3, 20*time.Millisecond, nil)

		assert.Equal(t, beforeRuns+1, testutil.ToFloat64(RecommendationRuns.WithLabelValues(PathProfile)))
		assert.Equal(t, beforeCreated+3, testutil.ToFloat64(RecommendationsCreated))
	})

	t.Run("failure only counts the failure", func(t *testing.T) {
		beforeFailures := testutil.ToFloat64(RecommendationFailures)
		beforeRuns := testutil.ToFloat64(RecommendationRuns.WithLabelValues(PathFallback))

		RecordGeneration(PathFallback, 0, 0, time.Millisecond, errors.New("mongo down"))

		assert.Equal(t, beforeFailures+1, testutil.ToFloat64(RecommendationFailures))
		assert.Equal(t, beforeRuns, testutil.ToFloat64(RecommendationRuns.WithLabelValues(PathFallback)))
	})
}

func TestRecordPreferenceRefresh(t *testing.T) {
	beforeOK := testutil.ToFloat64(PreferenceRefreshes.WithLabelValues("success"))
	beforeErr := testutil.ToFloat64(PreferenceRefreshes.WithLabelValues("error"))

	RecordPreferenceRefresh(nil)
	RecordPreferenceRefresh(errors.New("boom"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(PreferenceRefreshes.WithLabelValues("success")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(PreferenceRefreshes.WithLabelValues("error")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))

	RecordHTTPRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
