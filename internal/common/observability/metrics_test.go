// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilObservabilityIsNoop(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordJobProcessed(ctx, "rank-card-recommendations")
		o.RecordJobDuration(ctx, "rank-card-recommendations", time.Second)
		o.RecordShortlist(ctx, 5)
	})
	assert.NoError(t, o.Shutdown(ctx))

	empty := &Observability{}
	assert.NotPanics(t, func() {
		empty.RecordJobProcessed(ctx, "x")
	})
	assert.NoError(t, empty.Shutdown(ctx))
}
