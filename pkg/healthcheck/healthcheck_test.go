package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticChecker(status Status, message string) CheckerFunc {
	return func(ctx context.Context) Check {
		return Check{
			Name:        "static",
			Status:      status,
			Message:     message,
			LastChecked: time.Now().UTC(),
		}
	}
}

func TestCheckHealthAggregation(t *testing.T) {
	t.Run("AllHealthy", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("a", staticChecker(StatusHealthy, ""))
		hc.Register("b", staticChecker(StatusHealthy, ""))

		resp := hc.CheckHealth(context.Background())
		assert.Equal(t, StatusHealthy, resp.Status)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Len(t, resp.Checks, 2)
	})

	t.Run("DegradedWins", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("a", staticChecker(StatusHealthy, ""))
		hc.Register("b", staticChecker(StatusDegraded, "pool exhausted"))

		resp := hc.CheckHealth(context.Background())
		assert.Equal(t, StatusDegraded, resp.Status)
	})

	t.Run("UnhealthyWinsOverDegraded", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("a", staticChecker(StatusDegraded, ""))
		hc.Register("b", staticChecker(StatusUnhealthy, "connection refused"))

		resp := hc.CheckHealth(context.Background())
		assert.Equal(t, StatusUnhealthy, resp.Status)
	})
}

func TestCheckHealthCaching(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	calls := 0
	hc.Register("counted", CheckerFunc(func(ctx context.Context) Check {
		calls++
		return Check{Name: "counted", Status: StatusHealthy}
	}))

	hc.CheckHealth(context.Background())
	hc.CheckHealth(context.Background())
	assert.Equal(t, 1, calls)

	hc.cacheTTL = 0
	hc.CheckHealth(context.Background())
	assert.Equal(t, 2, calls)
}

func TestHandlerStatusCodes(t *testing.T) {
	t.Run("HealthyReturns200", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("ok", staticChecker(StatusHealthy, ""))

		rec := httptest.NewRecorder()
		hc.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("UnhealthyReturns503", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("down", staticChecker(StatusUnhealthy, "dial tcp: refused"))

		rec := httptest.NewRecorder()
		hc.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLivenessHandler(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("down", staticChecker(StatusUnhealthy, "ignored for liveness"))

	rec := httptest.NewRecorder()
	hc.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}
