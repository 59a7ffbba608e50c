package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "1.0.0"}, "1.0.0"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0 (abc1234)"},
		{"dirty", Info{Version: "dev", GitCommit: "abc1234", Dirty: true}, "dev (abc1234, dirty)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGetPrefersLdflags(t *testing.T) {
	oldV, oldC, oldB := Version, GitCommit, BuildTime
	defer func() { Version, GitCommit, BuildTime = oldV, oldC, oldB }()

	Version, GitCommit, BuildTime = "2.1.0", "0123456789abcdef", "2026-01-02T03:04:05Z"
	info := Get()
	if info.Version != "2.1.0" {
		t.Errorf("expected version 2.1.0, got %q", info.Version)
	}
	if info.GitCommit != "0123456" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("expected build time from ldflags, got %q", info.BuildTime)
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "1.4.2"
	if got := UserAgent(); got != "fetchkit/1.4.2" {
		t.Errorf("expected fetchkit/1.4.2, got %q", got)
	}
}
