package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/fetchkit/httpclient/httpclienttest"
	"github.com/kbukum/fetchkit/server"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(context.Background(), append([]string{"--no-color"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeEcho(t *testing.T, stdout string) server.Echo {
	t.Helper()
	var e server.Echo
	if err := json.Unmarshal([]byte(stdout), &e); err != nil {
		t.Fatalf("failed to decode output %q: %v", stdout, err)
	}
	return e
}

func TestGet_PrintsEchoedRequest(t *testing.T) {
	srv := httpclienttest.New(t)

	code, stdout, stderr := run(t, "get", srv.URL+"/items", "-q", "page=2", "-q", "tag=a", "-q", "tag=b", "-H", "X-Trace: abc")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}

	e := decodeEcho(t, stdout)
	if e.Method != "GET" || e.Path != "/items" {
		t.Errorf("expected GET /items, got %s %s", e.Method, e.Path)
	}
	if got := e.Query["page"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("expected page=2, got %v", got)
	}
	if got := e.Query["tag"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected tag=[a b], got %v", got)
	}
	if e.Header("X-Trace") != "abc" {
		t.Errorf("expected X-Trace abc, got %q", e.Header("X-Trace"))
	}
	if e.Header("User-Agent") != "fetchkit/dev" {
		t.Errorf("expected fetchkit user agent, got %q", e.Header("User-Agent"))
	}
	if e.Header("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}
}

func TestGet_HeaderOverridesUserAgent(t *testing.T) {
	srv := httpclienttest.New(t)

	code, _, stderr := run(t, "get", srv.URL+"/", "-H", "User-Agent: custom/1")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if got := srv.Last(t).Header("User-Agent"); got != "custom/1" {
		t.Errorf("expected custom/1, got %q", got)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	srv := httpclienttest.New(t)

	code, stdout, stderr := run(t, "post", srv.URL+"/things", "-d", `{"name":"widget","count":3}`, "--select", "json.name")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if strings.TrimSpace(stdout) != "widget" {
		t.Errorf("expected selected value widget, got %q", stdout)
	}
	last := srv.Last(t)
	if ct := last.Header("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if last.Body != `{"name":"widget","count":3}` {
		t.Errorf("expected body sent as-is, got %q", last.Body)
	}
}

func TestPost_BodyFromFile(t *testing.T) {
	srv := httpclienttest.New(t)
	path := filepath.Join(t.TempDir(), "body.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := run(t, "put", srv.URL+"/doc", "-d", "@"+path)
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if got := srv.Last(t).Body; got != "plain text" {
		t.Errorf("expected file contents as body, got %q", got)
	}
}

func TestGet_TextAndEmptyBodies(t *testing.T) {
	srv := httpclienttest.New(t)

	code, stdout, _ := run(t, "get", srv.URL+"/text")
	if code != ExitSuccess || strings.TrimSpace(stdout) != "hello from fetchkit" {
		t.Errorf("expected text body, got %d %q", code, stdout)
	}

	code, stdout, _ = run(t, "get", srv.URL+"/empty")
	if code != ExitSuccess || stdout != "" {
		t.Errorf("expected no output for an empty body, got %d %q", code, stdout)
	}
}

func TestInclude_WritesStatusToStderr(t *testing.T) {
	srv := httpclienttest.New(t)

	code, _, stderr := run(t, "get", srv.URL+"/", "-i")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stderr, "200 OK\n") {
		t.Errorf("expected status line first, got %q", stderr)
	}
	if !strings.Contains(stderr, "content-type: application/json") {
		t.Errorf("expected lower-cased headers, got %q", stderr)
	}
}

func TestExitCodes(t *testing.T) {
	srv := httpclienttest.New(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"not found", []string{"get", srv.URL + "/status/404"}, ExitHTTPError},
		{"server error", []string{"delete", srv.URL + "/status/503"}, ExitHTTPError},
		{"source path blocked", []string{"get", srv.URL + "/src/app.ts"}, ExitUsageError},
		{"bad header", []string{"get", srv.URL, "-H", "no-colon"}, ExitUsageError},
		{"bad query", []string{"get", srv.URL, "-q", "novalue"}, ExitUsageError},
		{"missing select path", []string{"get", srv.URL, "--select", "nope.nothing"}, ExitUsageError},
		{"missing url", []string{"get"}, ExitUsageError},
		{"unknown command", []string{"fetch", srv.URL}, ExitUsageError},
		{"missing config", []string{"get", srv.URL, "--config", filepath.Join(t.TempDir(), "absent.yml")}, ExitConfigError},
		{"connection refused", []string{"get", "http://127.0.0.1:1/"}, ExitNetworkError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.args...)
			if code != tc.want {
				t.Errorf("expected exit %d, got %d (stderr %q)", tc.want, code, stderr)
			}
			if !strings.Contains(stderr, "error:") {
				t.Errorf("expected an error line, got %q", stderr)
			}
		})
	}
}

func TestStatusError_PrintsBodyAndMessage(t *testing.T) {
	srv := httpclienttest.New(t)

	code, stdout, stderr := run(t, "get", srv.URL+"/status/404")
	if code != ExitHTTPError {
		t.Fatalf("expected exit %d, got %d", ExitHTTPError, code)
	}
	if !strings.Contains(stdout, `"status": 404`) {
		t.Errorf("expected the error body on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Not Found") {
		t.Errorf("expected the body message in the error, got %q", stderr)
	}
}

func TestSourcePath_NeverSent(t *testing.T) {
	srv := httpclienttest.New(t)

	run(t, "get", srv.URL+"/src/main.js")
	if srv.Count() != 0 {
		t.Errorf("expected no request to reach the server, got %d", srv.Count())
	}
}

func TestConfigFile_BaseURLAndToken(t *testing.T) {
	srv := httpclienttest.New(t)
	path := filepath.Join(t.TempDir(), "fetchkit.yml")
	yml := "client:\n  base_url: " + srv.URL + "/api\n  headers:\n    X-Client: cli-test\ntoken: secret\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := run(t, "--config", path, "get", "/users/7")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	last := srv.Last(t)
	if last.Path != "/api/users/7" {
		t.Errorf("expected /api/users/7, got %q", last.Path)
	}
	if got := last.Header("Authorization"); got != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", got)
	}
	if got := last.Header("X-Client"); got != "cli-test" {
		t.Errorf("expected configured header, got %q", got)
	}
}

func TestBaseFlag_OverridesConfig(t *testing.T) {
	srv := httpclienttest.New(t)

	code, _, stderr := run(t, "--base", srv.URL+"/v2", "get", "status-check")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if got := srv.Last(t).Path; got != "/v2/status-check" {
		t.Errorf("expected /v2/status-check, got %q", got)
	}
}

func TestVerbose_LogsRequests(t *testing.T) {
	srv := httpclienttest.New(t)

	code, _, stderr := run(t, "-v", "get", srv.URL+"/")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "response") {
		t.Errorf("expected response log line, got %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := run(t, "version")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout, "fetchkit version dev") {
		t.Errorf("expected version line, got %q", stdout)
	}
}

func TestParseQuery(t *testing.T) {
	params, err := parseQuery([]string{"a=1", "b=x=y", "a=2", "a=3", "empty="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := params["a"].([]string); !ok || len(got) != 3 {
		t.Errorf("expected three values for a, got %v", params["a"])
	}
	if params["b"] != "x=y" {
		t.Errorf("expected value split on first '=', got %v", params["b"])
	}
	if params["empty"] != "" {
		t.Errorf("expected empty value, got %v", params["empty"])
	}
}

func TestReadBody(t *testing.T) {
	tests := []struct {
		in     string
		isJSON bool
	}{
		{`{"a":1}`, true},
		{`[1,2]`, true},
		{`42`, true},
		{`hello`, false},
		{`{broken`, false},
	}
	for _, tc := range tests {
		got, err := readBody(tc.in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		_, isJSON := got.(json.RawMessage)
		if isJSON != tc.isJSON {
			t.Errorf("readBody(%q): expected json=%t, got %T", tc.in, tc.isJSON, got)
		}
	}
}
