package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"menubot/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveMessage(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveMessage(domain.OutcomeMenuNext, nil, 10*time.Millisecond)
	r.ObserveMessage(domain.OutcomeMenuNext, nil, 10*time.Millisecond)
	r.ObserveMessage(domain.OutcomeHandoffOpened, nil, time.Millisecond)
	r.ObserveMessage(domain.OutcomeHandoffSuppressed, nil, time.Millisecond)
	r.ObserveMessage("", errors.New("db down"), time.Millisecond)

	assert.Equal(t, 2.0, promtest.ToFloat64(r.messages.WithLabelValues("menu_next")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.messages.WithLabelValues("error")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.handoffs.WithLabelValues("opened")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.handoffs.WithLabelValues("suppressed")))
	assert.Equal(t, 1, promtest.CollectAndCount(r.duration))
}

func TestRecorder_ObserveUpdate(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveUpdate(nil)
	r.ObserveUpdate(errors.New("send failed"))
	r.ObserveUpdate(nil)

	assert.Equal(t, 2.0, promtest.ToFloat64(r.updates.WithLabelValues("ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.updates.WithLabelValues("error")))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveMessage(domain.OutcomeMenuHome, nil, time.Millisecond)
		r.ObserveUpdate(nil)
	})
}

func TestNewRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.ObserveMessage(domain.OutcomeMenuHome, nil, time.Millisecond)

	router := NewRouter(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `menubot_messages_total{outcome="menu_home"} 1`))
}
