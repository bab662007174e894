package health

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProber answers readiness probes with a canned error.
type fakeProber struct {
	err   error
	calls int
}

func (f *fakeProber) ListDatasets(context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []string{"ds"}, nil
}

func TestChecker_StateMachine(t *testing.T) {
	c := NewChecker(nil)
	assert.Equal(t, "starting", c.State())
	assert.False(t, c.IsReady())

	c.SetReady()
	assert.Equal(t, "ready", c.State())
	assert.True(t, c.IsReady())

	c.SetDraining()
	assert.Equal(t, "draining", c.State())
	assert.False(t, c.IsReady())
}

func TestLivenessHandler_AlwaysOK(t *testing.T) {
	c := NewChecker(nil)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessHandler_NotReadyBeforeStart(t *testing.T) {
	c := NewChecker(nil)
	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessHandler_ProbesWarehouse(t *testing.T) {
	prober := &fakeProber{}
	c := NewChecker(prober)
	c.SetReady()

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, prober.calls)
}

func TestReadinessHandler_WarehouseUnreachable(t *testing.T) {
	c := NewChecker(&fakeProber{err: fmt.Errorf("dial timeout")})
	c.SetReady()

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "dial timeout")
}

func TestReadinessHandler_NilProberIsStateOnly(t *testing.T) {
	c := NewChecker(nil)
	c.SetReady()

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
