package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/josephgoksu/promptfy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordedEvent struct {
	name  string
	props telemetry.Properties
}

type fakeTelemetry struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeTelemetry) Track(event string, properties telemetry.Properties) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{name: event, props: properties})
}

func (f *fakeTelemetry) Close() error { return nil }

func (f *fakeTelemetry) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.name)
	}
	return out
}

func newTestServer(t *testing.T, prefill bool) (*Server, *fakeTelemetry) {
	t.Helper()
	tel := &fakeTelemetry{}
	s, err := New(Options{
		Host:           "127.0.0.1",
		Port:           0,
		AllowedOrigins: []string{"http://localhost:5173"},
		Prefill:        prefill,
		Telemetry:      tel,
	})
	require.NoError(t, err)
	return s, tel
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthcheck(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","methodologies":3}`, rec.Body.String())
}

func TestLanding_ListsEveryMethodology(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, d := range methodology.Default().All() {
		assert.Contains(t, body, `href="`+d.Path+`"`)
		assert.Contains(t, body, d.Name)
	}
	assert.NotContains(t, body, ".svg")
}

func TestFormPage_Prefill(t *testing.T) {
	s, _ := newTestServer(t, true)
	example := "Postgres for storage, Go backend, web client first."

	rec := do(s, httptest.NewRequest(http.MethodGet, "/agent-planning", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), example)
	assert.NotContains(t, rec.Body.String(), `id="prompt"`, "no prompt before submission")
	assert.Contains(t, rec.Body.String(), "<h1>Collaborative Planning with Agents</h1>")
	assert.NotContains(t, rec.Body.String(), ".svg")

	s.SetPrefill(false)
	rec = do(s, httptest.NewRequest(http.MethodGet, "/agent-planning", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), example)
	assert.Contains(t, rec.Body.String(), `name="goal"`)
}

func TestFormSubmit_InlineError(t *testing.T) {
	s, tel := newTestServer(t, true)

	rec := do(s, postForm("/diverge", url.Values{
		"problemStatement": {"too short"},
		"constraints":      {"No new backend services"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please provide more details (at least 10 characters)")
	assert.Contains(t, body, `aria-invalid="true"`)
	assert.Contains(t, body, "No new backend services", "entered text is kept")
	assert.NotContains(t, body, `id="prompt"`)
	assert.Equal(t, []string{telemetry.EventValidationFailed}, tel.names())
}

func TestFormSubmit_RendersPrompt(t *testing.T) {
	s, tel := newTestServer(t, false)
	goal := "Build a collaborative task management app with real-time updates and team workspaces"

	rec := do(s, postForm("/agent-planning", url.Values{"goal": {goal}}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="prompt"`)
	assert.Contains(t, body, "## Goal\n"+goal)
	assert.NotContains(t, body, "## UX Preferences")
	assert.Contains(t, body, "Copied!")
	assert.Contains(t, body, "2000")
	assert.Equal(t, []string{telemetry.EventPromptGenerated}, tel.names())
}

func TestFormSubmit_EscapesUserText(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(s, postForm("/diverge", url.Values{
		"problemStatement": {"<script>alert(1)</script> breaks onboarding"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestUnknownPage(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/waterfall", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestAPI_UnknownEndpoint(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr types.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, types.CodeNotFound, apiErr.Code)
}

func TestAPI_ListMethodologies(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/methodologies", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Methodologies []struct {
			ID     string `json:"id"`
			Fields []struct {
				Name     string `json:"name"`
				Required bool   `json:"required"`
			} `json:"fields"`
		} `json:"methodologies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	ids := make([]string, 0, len(got.Methodologies))
	for _, m := range got.Methodologies {
		ids = append(ids, m.ID)
		require.NotEmpty(t, m.Fields)
		assert.True(t, m.Fields[0].Required)
	}
	if diff := cmp.Diff([]string{"diverge", "tracer-bullet", "agent-planning"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAPI_GetMethodology(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/methodologies/tracer_bullet", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"workingCode"`)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/methodologies/waterfall", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr types.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, types.CodeUnknownMethodology, apiErr.Code)
}

func TestAPI_BuildPrompt(t *testing.T) {
	s, tel := newTestServer(t, true)
	def, err := methodology.Lookup(methodology.Diverge)
	require.NoError(t, err)
	in := map[string]string{
		"problemStatement": "Onboarding drops users halfway.",
		"constraints":      "Must work on mobile.",
	}
	want, err := def.Build(in)
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]any{"fields": in})
	rec := do(s, postJSON("/api/methodologies/diverge/prompt", string(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got promptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, methodology.Diverge, got.Methodology)
	assert.Equal(t, want, got.Prompt)
	assert.Equal(t, []string{"Problem Statement", "Constraints"}, got.Sections)
	assert.Equal(t, []string{telemetry.EventPromptGenerated}, tel.names())
}

func TestAPI_BuildPromptValidation(t *testing.T) {
	s, tel := newTestServer(t, true)

	rec := do(s, postJSON("/api/methodologies/tracer-bullet/prompt",
		`{"fields":{"workingCode":"CLI posts rows.","nextSlice":"dashboard"}}`))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got struct {
		Code    string `json:"code"`
		Details struct {
			Methodology string            `json:"methodology"`
			Fields      map[string]string `json:"fields"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, types.CodeValidationFailed, got.Code)
	assert.Equal(t, "tracer-bullet", got.Details.Methodology)
	assert.Equal(t, map[string]string{
		"workingCode": "Please provide more details (at least 20 characters)",
	}, got.Details.Fields)
	assert.Equal(t, []string{telemetry.EventValidationFailed}, tel.names())
}

func TestAPI_BadBody(t *testing.T) {
	s, _ := newTestServer(t, true)

	for _, body := range []string{`not json`, `{}`} {
		rec := do(s, postJSON("/api/methodologies/diverge/prompt", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMiddleware_RequestID(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = do(s, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/api/methodologies/diverge/prompt", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := do(s, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/methodologies", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = do(s, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_StartShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s, _ := newTestServer(t, true)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	s.serve(&wg, ln, errChan)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthcheck")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	wg.Wait()

	select {
	case err := <-errChan:
		t.Fatalf("unexpected server error: %v", err)
	default:
	}
}

func TestServer_Addr(t *testing.T) {
	s, err := New(Options{Host: "127.0.0.1", Port: 5173})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5173", s.Addr())
}
