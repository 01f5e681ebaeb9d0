package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/kkpan11/heavydb/pkg/cache"
	"github.com/kkpan11/heavydb/pkg/pipeline"
)

const plan = `
[[node]]
name    = "emps"
op      = "scan"
table   = ["hr", "emps"]
columns = [{ name = "empid", type = "INTEGER" }]

[[node]]
name      = "f"
op        = "filter"
inputs    = ["emps"]
condition = { op = ">", type = "BOOLEAN", operands = [{ input = 0 }, { literal = 10 }] }
`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), logger, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/toml", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", resp.Header.Get("X-Request-ID"))
	}
	if got := resp.Header.Get("Server"); !strings.HasPrefix(got, "relexplain/") {
		t.Errorf("Server = %q", got)
	}
}

func TestExplainJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/explain?compact=true", plan)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	var doc struct {
		Rels []map[string]any `json:"rels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	var ids []any
	for _, r := range doc.Rels {
		ids = append(ids, r["id"])
	}
	if diff := cmp.Diff([]any{"0", "1"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.Rels[1]["inputs"]; ok {
		t.Error("filter record should omit inputs")
	}

	again := post(t, srv.URL+"/v1/explain?compact=true", plan)
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestExplainFormats(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"text", "text/plain; charset=utf-8", "1: LogicalFilter(condition=>($0, 10))"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph G {"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/explain?format="+tt.format, plan)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if body := readBody(t, resp); !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, body)
			}
		})
	}
}

func TestExplainErrors(t *testing.T) {
	srv := newTestServer(t, WithMaxPlanBytes(64))
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"bad format", "?format=png", "[[node]]\nname = \"a\"", http.StatusBadRequest, "INVALID_FORMAT"},
		{"empty plan", "", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad plan", "", "[[node]]\nname = \"a\"\nop = \"nope\"", http.StatusBadRequest, "INVALID_PLAN"},
		{"too large", "", strings.Repeat("#", 65), http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/explain"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
				RequestID string `json:"request_id"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.RequestID != resp.Header.Get("X-Request-ID") {
				t.Errorf("request_id %q does not match header %q", body.RequestID, resp.Header.Get("X-Request-ID"))
			}
		})
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-ID"); got == "not-a-uuid" {
		t.Error("malformed request id should be replaced")
	}
}

func TestLogRequests(t *testing.T) {
	var buf syncBuffer
	logger := log.New(&buf)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	out := buf.String()
	for _, want := range []string{"request", "method=GET", "path=/healthz", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("statusFor(plain error) = %d", got)
	}
}

// syncBuffer is a bytes.Buffer safe for the server goroutine to write
// while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestExplainNonFiniteLiteralIsBadRequest(t *testing.T) {
	srv := newTestServer(t)
	plan := "[[node]]\nname = \"v\"\nop = \"values\"\ncolumns = [{ name = \"x\", type = \"DOUBLE\" }]\ntuples = [[nan]]\n"

	resp := post(t, srv.URL+"/v1/explain", plan)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
