package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSourceErrors(t *testing.T) {
	before := testutil.ToFloat64(SourceErrors.WithLabelValues("points"))
	SourceErrors.WithLabelValues("points").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SourceErrors.WithLabelValues("points")))
}

func TestObserveQuery(t *testing.T) {
	ObserveQuery("postgres", "facts", time.Now().Add(-10*time.Millisecond))
	assert.Equal(t, 1, testutil.CollectAndCount(SourceQueryDuration))
}
