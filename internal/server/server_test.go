package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kamipad/stash"
	"github.com/kamipad/stash/internal/app"
	"github.com/kamipad/stash/internal/logging"
	"github.com/stretchr/testify/suite"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type ServerSuite struct {
	suite.Suite
	clk     *fakeClock
	app     *app.App
	handler http.Handler
}

func (s *ServerSuite) SetupTest() {
	s.clk = &fakeClock{now: time.Now()}

	cfg := app.DefaultConfig()
	cfg.DataDir = ""
	cfg.LogLevel = "debug"
	cfg.LogTTL = time.Minute

	a, err := app.New(cfg,
		app.WithLogOutput(io.Discard),
		app.WithRegistry(stash.NewRegistry(stash.RegistryClock(s.clk))),
	)
	s.Require().NoError(err)
	s.app = a
	s.handler = New(a).Handler()
}

func (s *ServerSuite) TearDownTest() {
	s.app.Close()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *ServerSuite) decodeEntries(rec *httptest.ResponseRecorder) []logging.Entry {
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var entries []logging.Entry
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &entries))
	return entries
}

func (s *ServerSuite) TestIndex() {
	rec := s.get("/api/")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got indexData
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(app.Name, got.Name)
	s.Equal(app.Version, got.Version)
	s.Equal(app.Description, got.Description)

	_, ok := logging.ParseRequestID(rec.Header().Get(RequestIDHeader))
	s.True(ok, "response must carry a request id")
}

func (s *ServerSuite) TestLogByRequest() {
	first := s.get("/api/")
	id := first.Header().Get(RequestIDHeader)

	entries := s.decodeEntries(s.get("/api/log/" + id))
	s.Require().Len(entries, 2)
	s.Equal("request started", entries[0].Message)
	s.Equal("request finished", entries[1].Message)
	for _, e := range entries {
		s.Equal(id, e.RequestID)
		s.Equal("/api/", e.Fields["path"])
	}
	s.EqualValues(http.StatusOK, entries[1].Fields["status"])
}

func (s *ServerSuite) TestLogByRequestUnknown() {
	entries := s.decodeEntries(s.get("/api/log/" + logging.NewRequestID().String()))
	s.Empty(entries)
	s.NotNil(entries)
}

func (s *ServerSuite) TestLogByRequestMalformed() {
	rec := s.get("/api/log/NOT-AN-ID")
	s.Equal("[]\n", rec.Body.String())
}

func (s *ServerSuite) TestLogByRequestExpired() {
	id := s.get("/api/").Header().Get(RequestIDHeader)

	s.clk.Advance(30 * time.Second)
	s.NotEmpty(s.decodeEntries(s.get("/api/log/" + id)))

	s.clk.Advance(time.Minute)
	s.Empty(s.decodeEntries(s.get("/api/log/" + id)))
}

func (s *ServerSuite) TestLogs() {
	s.get("/api/")

	entries := s.decodeEntries(s.get("/api/logs"))
	var msgs []string
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	s.Contains(msgs, "starting application")
	s.Contains(msgs, "request finished")
}

func (s *ServerSuite) TestHealth() {
	rec := s.get("/health")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("OK", rec.Body.String())
	s.Empty(rec.Header().Get(RequestIDHeader))
}

func (s *ServerSuite) TestMetrics() {
	s.get("/api/")
	s.get("/nowhere")

	rec := s.get("/metrics")
	s.Require().Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	s.Contains(body, `kamipad_http_requests_total{method="GET",route="GET /api/{$}",status="200"} 1`)
	s.Contains(body, `kamipad_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	s.Contains(body, `kamipad_cache_entries{cache="logging.RequestID->[]logging.Entry"} 1`)
}

func (s *ServerSuite) TestLoggerFallback() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.NotNil(Logger(req.Context()))
}
