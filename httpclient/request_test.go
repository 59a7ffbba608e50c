package httpclient

import (
	"reflect"
	"testing"
)

func TestMergeConfig(t *testing.T) {
	defaults := Defaults{
		BaseURL:         "https://a.test",
		Headers:         map[string]string{"Accept": "application/json", "X-Env": "prod"},
		WithCredentials: true,
	}

	t.Run("call headers win per key", func(t *testing.T) {
		got := MergeConfig(defaults, RequestConfig{Headers: map[string]string{"X-Env": "dev", "X-Trace": "1"}})
		want := map[string]string{"Accept": "application/json", "X-Env": "dev", "X-Trace": "1"}
		if !reflect.DeepEqual(got.Headers, want) {
			t.Errorf("expected %v, got %v", want, got.Headers)
		}
	})

	t.Run("call headers win regardless of case", func(t *testing.T) {
		d := Defaults{Headers: map[string]string{"Content-Type": "application/json", "X-Env": "prod"}}
		got := MergeConfig(d, RequestConfig{Headers: map[string]string{"content-type": "text/plain"}})
		want := map[string]string{"content-type": "text/plain", "X-Env": "prod"}
		if !reflect.DeepEqual(got.Headers, want) {
			t.Errorf("expected %v, got %v", want, got.Headers)
		}
		if d.Headers["Content-Type"] != "application/json" {
			t.Error("merge must not modify the default headers")
		}
	})

	t.Run("fresh header map", func(t *testing.T) {
		got := MergeConfig(defaults, RequestConfig{})
		got.Headers["Accept"] = "text/plain"
		if defaults.Headers["Accept"] != "application/json" {
			t.Error("merge must not alias the default headers")
		}
	})

	t.Run("base url", func(t *testing.T) {
		if got := MergeConfig(defaults, RequestConfig{}); got.BaseURL != "https://a.test" {
			t.Errorf("expected default base, got %q", got.BaseURL)
		}
		if got := MergeConfig(defaults, RequestConfig{BaseURL: "https://b.test"}); got.BaseURL != "https://b.test" {
			t.Errorf("expected call base, got %q", got.BaseURL)
		}
	})

	t.Run("credentials default and override", func(t *testing.T) {
		if got := MergeConfig(defaults, RequestConfig{}); !got.Credentialed() {
			t.Error("expected credentials from defaults")
		}
		if got := MergeConfig(defaults, RequestConfig{WithCredentials: Bool(false)}); got.Credentialed() {
			t.Error("expected explicit false to win")
		}
	})

	t.Run("method", func(t *testing.T) {
		if got := MergeConfig(defaults, RequestConfig{}); got.Method != "GET" {
			t.Errorf("expected GET, got %q", got.Method)
		}
		if got := MergeConfig(defaults, RequestConfig{Method: "patch"}); got.Method != "PATCH" {
			t.Errorf("expected PATCH, got %q", got.Method)
		}
	})

	t.Run("params copied", func(t *testing.T) {
		call := RequestConfig{Params: Params{"q": "joe"}}
		got := MergeConfig(defaults, call)
		got.Params["q"] = "ann"
		if call.Params["q"] != "joe" {
			t.Error("merge must not alias the call params")
		}
	})
}

func TestRequestConfig_HeaderCaseInsensitive(t *testing.T) {
	cfg := RequestConfig{Headers: map[string]string{"content-type": "text/plain"}}
	v, ok := cfg.Header("Content-Type")
	if !ok || v != "text/plain" {
		t.Errorf("expected text/plain, got %q (%v)", v, ok)
	}
	if _, ok := cfg.Header("Accept"); ok {
		t.Error("expected Accept to be absent")
	}
}

func TestRequestConfig_Clone(t *testing.T) {
	cfg := &RequestConfig{Headers: map[string]string{"A": "1"}, Params: Params{"p": 1}}
	cp := cfg.Clone()
	cp.Headers["A"] = "2"
	cp.Params["p"] = 2
	if cfg.Headers["A"] != "1" || cfg.Params["p"] != 1 {
		t.Error("clone must not share maps")
	}
}

func TestResponse_WithData(t *testing.T) {
	r := &Response{Data: "a", Status: 200}
	cp := r.WithData("b")
	if r.Data != "a" || cp.Data != "b" || cp.Status != 200 {
		t.Errorf("unexpected copy: %+v from %+v", cp, r)
	}
	if !cp.OK() {
		t.Error("expected OK for 200")
	}
}
