package metrics

import (
	"errors"
	"time"

	"lingua-cms/internal/domain/entity"
)

// Result labels of cms_operations_total.
const (
	ResultSuccess         = "success"
	ResultValidation      = "invalid"
	ResultNotFound        = "not_found"
	ResultConflict        = "conflict"
	ResultForbidden       = "forbidden"
	ResultUnauthenticated = "unauthenticated"
	ResultError           = "error"
)

// ResultOf classifies err into a result label.
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return ResultValidation
	case errors.Is(err, entity.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, entity.ErrConflict):
		return ResultConflict
	case errors.Is(err, entity.ErrForbidden):
		return ResultForbidden
	case errors.Is(err, entity.ErrUnauthenticated):
		return ResultUnauthenticated
	default:
		return ResultError
	}
}

// RecordOperation records the outcome and latency of one service operation.
func RecordOperation(kind, action string, err error, duration time.Duration) {
	OperationsTotal.WithLabelValues(kind, action, ResultOf(err)).Inc()
	OperationDuration.WithLabelValues(kind, action).Observe(duration.Seconds())
}

// RecordContentConflict counts a rejected duplicate content record.
func RecordContentConflict(kind, source string) {
	ContentConflictsTotal.WithLabelValues(kind, source).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}
