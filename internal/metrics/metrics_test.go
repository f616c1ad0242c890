package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
)

func TestObserveProcedure(t *testing.T) {
	m := New()

	m.ObserveProcedure("join_team", nil)
	m.ObserveProcedure("join_team", apierrors.ConflictError("already a member of this team"))
	m.ObserveProcedure("join_team", apierrors.ConflictError("already a member of this team"))
	m.ObserveProcedure("join_team", errors.New("connection refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.procedureCalls.WithLabelValues("join_team", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.procedureCalls.WithLabelValues("join_team", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.procedureCalls.WithLabelValues("join_team", "error")))
}

func TestObserveProcedure_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveProcedure("create_team", nil)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	m.ObserveProcedure("set_task_status", apierrors.Validation("bad status"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `teamtask_procedure_calls_total{outcome="validation",procedure="set_task_status"} 1`))
	assert.True(t, strings.Contains(body, `teamtask_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
