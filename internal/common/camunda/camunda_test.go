// internal/common/camunda/camunda_test.go
package camunda

import (
	"errors"
	"testing"
	"time"

	"card-advisor-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"read: connection reset by peer", true},
		{"rpc error: code = PermissionDenied", false},
		{"rpc error: code = NotFound desc = job not found", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRetryableZeebeError(errors.New(tt.err)), tt.err)
	}
}

func TestBackoffDelay(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 10 * time.Second}
	assert.Equal(t, time.Second, backoffDelay(cfg, 0))
	assert.Equal(t, 4*time.Second, backoffDelay(cfg, 2))
	assert.Equal(t, 10*time.Second, backoffDelay(cfg, 5))
	assert.Equal(t, 10*time.Second, backoffDelay(cfg, 100))
}

type recordingHandler struct {
	calls int
}

func (h *recordingHandler) Handle(_ worker.JobClient, _ entities.Job) {
	h.calls++
}

func TestInstrument(t *testing.T) {
	const taskType = "instrument-test"
	handler := &recordingHandler{}

	wrapped := Instrument(taskType, handler, nil)
	wrapped(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: taskType}})
	wrapped(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 2, Type: taskType}})

	assert.Equal(t, 2, handler.calls)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.WorkerJobDuration, "worker_job_duration_seconds"))
}
