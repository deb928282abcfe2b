package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/httputil"
	"github.com/matzehuels/slabtower/pkg/observability"
	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/report"
	"github.com/matzehuels/slabtower/pkg/store"
)

const canonical = `1,0,1~1,2,1
0,0,2~2,0,2
0,2,3~2,2,3
0,0,4~0,2,4
2,0,5~2,2,5
0,1,6~2,1,6
1,1,8~1,1,9
`

const robotsInput = `p=0,4 v=3,-3
p=6,3 v=-1,-3
p=10,3 v=-1,2
p=2,0 v=2,-1
p=0,0 v=1,3
p=3,0 v=-2,-2
p=7,6 v=-1,-3
p=3,0 v=-1,-2
p=9,3 v=2,3
p=7,3 v=-1,2
p=2,4 v=2,-3
p=9,5 v=-3,-3
`

func newTestServer(t *testing.T, st store.Store, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, st, log.New(io.Discard))
	ts := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/v1/analyze?detailed=1", canonical)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	rep := decode[report.Report](t, resp)
	assert.Equal(t, 7, rep.BrickCount)
	assert.Equal(t, 5, rep.Removable)
	assert.Equal(t, 7, rep.CascadeSum)
	assert.Len(t, rep.Bricks, 7)
}

func TestAnalyzeErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		status  int
		code    errors.Code
		message string
	}{
		{"malformed", "1,0,1~1,2\n", http.StatusUnprocessableEntity, errors.ErrCodeMalformedInput, `line 1: want 3 coordinates, got "1,2"`},
		{"bad coordinate", "1,0,1~1,x,1\n", http.StatusUnprocessableEntity, errors.ErrCodeMalformedInput, `line 1: coordinate "x"`},
		{"collision", "0,0,1~2,0,1\n1,0,1~1,0,1\n", http.StatusUnprocessableEntity, errors.ErrCodeCollision, "collides with brick"},
		{"empty", "", http.StatusBadRequest, errors.ErrCodeInvalidInput, "request body is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/analyze", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[httputil.ErrorBody](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.Contains(t, body.Message, tt.message)
		})
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, nil, WithMaxBody(16))
	resp := post(t, ts.URL+"/v1/analyze", canonical)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestAnalyzeSaveWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/v1/analyze?save=1", canonical)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeUnsupported, decode[httputil.ErrorBody](t, resp).Code)
}

func TestReports(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	saved := decode[report.Report](t, post(t, ts.URL+"/v1/analyze?save=1", canonical))
	require.NotEmpty(t, saved.ID)

	resp := get(t, ts.URL+"/v1/reports/"+saved.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[report.Report](t, resp)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.CascadeSum, got.CascadeSum)

	list := decode[[]report.Report](t, get(t, ts.URL+"/v1/reports?limit=5"))
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	missing := get(t, ts.URL+"/v1/reports/does-not-exist")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[httputil.ErrorBody](t, missing).Code)

	bad := get(t, ts.URL+"/v1/reports?limit=many")
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestReportsWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotImplemented, get(t, ts.URL+"/v1/reports").StatusCode)
}

func TestRobots(t *testing.T) {
	ts := newTestServer(t, nil, WithRobotsDefaults(pipeline.RobotsOptions{Seconds: 100}))

	resp := post(t, ts.URL+"/v1/robots/safety", robotsInput)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[pipeline.RobotsResult](t, resp)
	assert.Equal(t, int64(12), res.SafetyFactor)
	assert.Equal(t, int64(11), res.Space.Width)
	assert.Equal(t, int64(7), res.Space.Height)
	assert.Equal(t, int64(-1), res.EasterEgg)

	zero := decode[pipeline.RobotsResult](t, post(t, ts.URL+"/v1/robots/safety?seconds=0&width=11&height=7", robotsInput))
	assert.Equal(t, int64(0), zero.Seconds)

	neg := post(t, ts.URL+"/v1/robots/safety?seconds=-1", robotsInput)
	assert.Equal(t, http.StatusBadRequest, neg.StatusCode)

	junk := post(t, ts.URL+"/v1/robots/safety?width=wide", robotsInput)
	assert.Equal(t, http.StatusBadRequest, junk.StatusCode)
}

type recordingHooks struct {
	observability.NoopServerHooks
	routes   []string
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _ string, route string, status int, _ time.Duration) {
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	runner := pipeline.NewRunner(nil, nil, store.NewMemoryStore(), log.New(io.Discard))
	h := New(runner).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/abc", nil))

	require.Len(t, hooks.routes, 1)
	assert.Equal(t, "/v1/reports/{id}", hooks.routes[0])
	assert.Equal(t, http.StatusNotFound, hooks.statuses[0])
}
