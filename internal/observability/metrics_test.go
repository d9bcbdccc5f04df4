package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/api/cases", "GET", 200, 5*time.Millisecond)
	metrics.RecordRequest("/api/cases", "GET", 200, 7*time.Millisecond)
	metrics.RecordError("/api/cases", "POST", "VALIDATION_FAILED")

	assert.Equal(t, int64(2), metrics.requestCount["/api/cases|GET|200"])
	assert.Equal(t, int64(1), metrics.errorCount["/api/cases|POST|VALIDATION_FAILED"])
}

func TestMetricsDenialCount(t *testing.T) {
	metrics := NewMetrics()
	assert.Zero(t, metrics.DenialCount("Cases"))

	metrics.RecordDenial("Cases")
	metrics.RecordDenial("Cases")
	metrics.RecordDenial("Admin")

	assert.Equal(t, int64(2), metrics.DenialCount("Cases"))
	assert.Equal(t, int64(1), metrics.DenialCount("Admin"))
	assert.Zero(t, metrics.DenialCount("Users"))
}

func TestMetricsNilReceiver(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/x", "GET", 200, 0)
	metrics.RecordError("/x", "GET", "INTERNAL_ERROR")
	metrics.RecordDenial("Cases")
	assert.Zero(t, metrics.DenialCount("Cases"))
}
