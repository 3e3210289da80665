package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLLMCall(t *testing.T) {
	before := testutil.ToFloat64(LLMCallsTotal.WithLabelValues("test_op", "error"))

	RecordLLMCall("test_op", errors.New("quota"))
	RecordLLMCall("test_op", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(LLMCallsTotal.WithLabelValues("test_op", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(LLMCallsTotal.WithLabelValues("test_op", "success")), 1.0)
}

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchedArticles.WithLabelValues("test_source"))

	RecordFetch("test_source", "partial", 7)

	assert.Equal(t, before+7, testutil.ToFloat64(FetchedArticles.WithLabelValues("test_source")))
	assert.Equal(t, 1.0, testutil.ToFloat64(FetchTotal.WithLabelValues("test_source", "partial")))
}
