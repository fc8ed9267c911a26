package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"lingua-cms/internal/domain/entity"
)

func TestResultOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ResultSuccess},
		{"validation", &entity.ValidationError{Field: "title", Message: "is required"}, ResultValidation},
		{"not found", entity.NotFound("Post not found with id: 1"), ResultNotFound},
		{"wrapped conflict", fmt.Errorf("create content: %w", entity.Conflict("dup")), ResultConflict},
		{"forbidden", entity.Forbidden("no"), ResultForbidden},
		{"unauthenticated", entity.Unauthenticated("no"), ResultUnauthenticated},
		{"infrastructure", errors.New("connection reset"), ResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultOf(tt.err))
		})
	}
}

func TestRecordOperation(t *testing.T) {
	OperationsTotal.Reset()

	RecordOperation("post", "createContent", nil, 5*time.Millisecond)
	RecordOperation("post", "createContent", entity.Conflict("dup"), time.Millisecond)
	RecordOperation("post", "createContent", nil, 2*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(OperationsTotal.WithLabelValues("post", "createContent", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(OperationsTotal.WithLabelValues("post", "createContent", ResultConflict)))
	assert.Greater(t, testutil.CollectAndCount(OperationDuration), 0)
}

func TestRecordContentConflict(t *testing.T) {
	ContentConflictsTotal.Reset()

	RecordContentConflict("page", "precheck")
	RecordContentConflict("page", "constraint")
	RecordContentConflict("page", "constraint")

	assert.Equal(t, 1.0, testutil.ToFloat64(ContentConflictsTotal.WithLabelValues("page", "precheck")))
	assert.Equal(t, 2.0, testutil.ToFloat64(ContentConflictsTotal.WithLabelValues("page", "constraint")))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(3, 7)
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnectionsInUse))
	assert.Equal(t, 7.0, testutil.ToFloat64(DBConnectionsIdle))
}

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	RecordHTTPRequest("GET", "GET /posts/{id}", "200", 10*time.Millisecond, 512)
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "GET /posts/{id}", "200")))
}

func TestRecordOperation_DurationSamples(t *testing.T) {
	OperationDuration.Reset()

	RecordOperation("link", "delete", nil, 3*time.Millisecond)
	RecordOperation("link", "delete", entity.NotFound("Link not found"), 7*time.Millisecond)

	observer, err := OperationDuration.GetMetricWithLabelValues("link", "delete")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	m := &dto.Metric{}
	if err := observer.(prometheus.Histogram).Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.010, m.GetHistogram().GetSampleSum(), 1e-9)
}
