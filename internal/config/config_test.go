package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showsaver/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected no config file to exist")
	}
	if cfg.Server.BaseURL != "http://127.0.0.1:5000" {
		t.Fatalf("unexpected base URL %q", cfg.Server.BaseURL)
	}
	if cfg.Polling.QueueInterval != 2 || cfg.Polling.JobInterval != 1 {
		t.Fatalf("unexpected poll intervals %d/%d", cfg.Polling.QueueInterval, cfg.Polling.JobInterval)
	}
	if cfg.Display.ReleaseLimit != 9 || cfg.Display.CompletedTail != 3 {
		t.Fatalf("unexpected display limits %d/%d", cfg.Display.ReleaseLimit, cfg.Display.CompletedTail)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.toml")
	content := strings.Join([]string{
		"[server]",
		`base_url = "example.com:5000/"`,
		"[polling]",
		"queue_interval = 5",
		"[history]",
		`path = "~/history.db"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %s to exist, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Server.BaseURL != "http://example.com:5000" {
		t.Fatalf("base URL not normalized: %q", cfg.Server.BaseURL)
	}
	if cfg.Polling.QueueInterval != 5 {
		t.Fatalf("queue interval override lost: %d", cfg.Polling.QueueInterval)
	}
	if cfg.Polling.JobInterval != 1 {
		t.Fatalf("job interval default lost: %d", cfg.Polling.JobInterval)
	}
	if cfg.History.Path != filepath.Join(home, "history.db") {
		t.Fatalf("history path not expanded: %q", cfg.History.Path)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "bad scheme",
			mutate: func(c *config.Config) { c.Server.BaseURL = "ftp://example.com" },
			want:   "base_url",
		},
		{
			name:   "bad color",
			mutate: func(c *config.Config) { c.Display.Color = "sometimes" },
			want:   "display.color",
		},
		{
			name:   "bad level",
			mutate: func(c *config.Config) { c.LogLevel = "loud" },
			want:   "log_level",
		},
		{
			name:   "bad format",
			mutate: func(c *config.Config) { c.LogFormat = "xml" },
			want:   "log_format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	target := filepath.Join(home, "sample.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
