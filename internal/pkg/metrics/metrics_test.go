package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReport(t *testing.T) {
	before := testutil.ToFloat64(ReportsGenerated.WithLabelValues("skills"))
	RecordReport("skills")
	assert.Equal(t, before+1, testutil.ToFloat64(ReportsGenerated.WithLabelValues("skills")))
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/consultants", "200"))
	RecordAPIRequest("GET", "/api/v1/consultants", "200", 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/consultants", "200")))
}

func TestSetBreakerOpen(t *testing.T) {
	SetBreakerOpen(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(ResumeBreakerState))
	SetBreakerOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(ResumeBreakerState))
}
