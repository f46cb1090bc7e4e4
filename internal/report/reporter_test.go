package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/anuragkar/scambait/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleReport() *domain.Report {
	in := domain.Intelligence{
		{Kind: domain.KindPhoneNumber, Value: "+919876543210"},
		{Kind: domain.KindUPIHandle, Value: "pramod@paytm"},
	}
	return &domain.Report{
		SessionID:              "session-xyz",
		ScamDetected:           true,
		TotalMessagesExchanged: 7,
		ExtractedIntelligence:  in.Summary(),
		AgentNotes:             "Used urgency tactics",
	}
}

func newTestReporter(t *testing.T, url string) *Reporter {
	t.Helper()
	r := NewReporter(Config{
		URL:         url,
		Timeout:     2 * time.Second,
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
	})
	t.Cleanup(r.client.CloseIdleConnections)
	return r
}

func TestDeliverPostsReportPayload(t *testing.T) {
	var got domain.Report
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		contentType = req.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outcome := newTestReporter(t, srv.URL).Deliver(context.Background(), sampleReport())

	assert.Equal(t, domain.DeliveryDelivered, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, *sampleReport(), got)
}

func TestDeliverDefaultsEmptyAgentNotes(t *testing.T) {
	var got domain.Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rep := sampleReport()
	rep.AgentNotes = ""
	newTestReporter(t, srv.URL).Deliver(context.Background(), rep)

	assert.Equal(t, "Scam engagement completed", got.AgentNotes)
	assert.Empty(t, rep.AgentNotes, "caller's report must not be mutated")
}

func TestDeliverRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outcome := newTestReporter(t, srv.URL).Deliver(context.Background(), sampleReport())

	assert.Equal(t, domain.DeliveryDelivered, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliverRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	outcome := newTestReporter(t, srv.URL).Deliver(context.Background(), sampleReport())

	assert.Equal(t, domain.DeliveryDelivered, outcome.Status)
	assert.Equal(t, 2, outcome.Attempts)
}

func TestDeliverDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	outcome := newTestReporter(t, srv.URL).Deliver(context.Background(), sampleReport())

	assert.Equal(t, domain.DeliveryExhausted, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeliverExhaustsOnUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := srv.URL
	srv.Close()

	outcome := newTestReporter(t, url).Deliver(context.Background(), sampleReport())

	assert.Equal(t, domain.DeliveryExhausted, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
}

func TestDeliverStopsBackoffWhenContextEnds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewReporter(Config{
		URL:         srv.URL,
		Timeout:     2 * time.Second,
		MaxRetries:  3,
		BackoffBase: 10 * time.Second,
	})
	t.Cleanup(r.client.CloseIdleConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	outcome := r.Deliver(ctx, sampleReport())

	assert.Equal(t, domain.DeliveryExhausted, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReporterEnabled(t *testing.T) {
	assert.False(t, NewReporter(Config{}).Enabled())
	assert.True(t, NewReporter(Config{URL: "http://callback.example/final"}).Enabled())
}
