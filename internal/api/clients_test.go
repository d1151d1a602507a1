package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/flexirent/flexirent-client/config"
	"github.com/flexirent/flexirent-client/internal/gateway"
)

// recordedRequest captures what a client put on the wire so each test can
// assert the verb, path, query and payload mapping.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type noTokens struct{}

func (noTokens) Token() (string, bool) { return "", false }

func testGateway(t *testing.T, status int, response string, record *recordedRequest) *gateway.Gateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if record != nil {
			record.Method = r.Method
			record.Path = r.URL.Path
			record.Query = r.URL.Query()
			record.Body, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return gateway.New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, noTokens{}, log)
}
