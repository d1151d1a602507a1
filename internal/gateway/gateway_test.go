package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/flexirent/flexirent-client/config"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestGateway(t *testing.T, handler http.HandlerFunc, token string, opts ...Option) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}
	return New(cfg, &staticTokens{token: token}, testLogger(), opts...)
}

func TestGateway_Send_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}, "tok-123")

	err := gw.Send(context.Background(), "GET", "/api/properties", nil, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestGateway_Send_NoCredentialNoHeader(t *testing.T) {
	var sawAuth bool
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, "")

	err := gw.Send(context.Background(), "GET", "/api/properties", nil, nil, nil)

	assert.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestGateway_Send_DecodesResponse(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 7, "name": "seven"}`))
	}, "")

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := gw.Send(context.Background(), "GET", "/x", nil, nil, &out)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "seven", out.Name)
}

func TestGateway_Send_UnauthorizedRunsTeardown(t *testing.T) {
	calls := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	}, "stale", WithOnUnauthorized(func() { calls++ }))

	err := gw.Send(context.Background(), "GET", "/api/bookings", nil, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, 1, calls)

	err = gw.Send(context.Background(), "GET", "/api/bookings", nil, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "hook runs on every 401, teardown itself must be idempotent")
}

func TestGateway_Send_ConcurrentUnauthorized(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale", WithOnUnauthorized(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := gw.Send(context.Background(), "GET", "/api/bookings", nil, nil, nil)
			assert.Equal(t, KindUnauthorized, KindOf(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, calls)
}

func TestGateway_Send_ErrorMessageExtraction(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"error field", 400, `{"error": "city is required"}`, KindValidation, "city is required"},
		{"message field", 400, `{"message": "bad range"}`, KindValidation, "bad range"},
		{"plain text", 500, "boom", KindServer, "boom"},
		{"empty body", 503, "", KindServer, "request failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}, "")

			err := gw.Send(context.Background(), "GET", "/x", nil, nil, nil)

			gerr, ok := err.(*Error)
			assert.True(t, ok)
			assert.Equal(t, tc.wantKind, gerr.Kind)
			assert.Equal(t, tc.wantMsg, gerr.Message)
			assert.Equal(t, tc.status, gerr.HTTPStatus)
		})
	}
}

func TestGateway_Send_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	cfg := config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 1}
	gw := New(cfg, &staticTokens{}, testLogger())

	err := gw.Send(context.Background(), "GET", "/x", nil, nil, nil)

	assert.Error(t, err)
	gerr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, KindNetwork, gerr.Kind)
	assert.Zero(t, gerr.HTTPStatus)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		status       int
		wantKind     ErrorKind
		wantTeardown bool
	}{
		{400, KindValidation, false},
		{401, KindUnauthorized, true},
		{403, KindValidation, false},
		{404, KindValidation, false},
		{409, KindValidation, false},
		{500, KindServer, false},
		{502, KindServer, false},
	}

	for _, tc := range testCases {
		kind, teardown := Classify(tc.status)
		assert.Equal(t, tc.wantKind, kind, "status %d", tc.status)
		assert.Equal(t, tc.wantTeardown, teardown, "status %d", tc.status)
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindNetwork, KindOf(context.Canceled))
}
