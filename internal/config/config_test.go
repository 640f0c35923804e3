package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Fatalf("Address = %q", cfg.Address())
	}
	if cfg.Chat.ReplyDelay != time.Second || cfg.Weather.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected durations: %+v %+v", cfg.Chat, cfg.Weather)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerHour != 600 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "heritagebot.yaml")
	err := os.WriteFile(path, []byte(`
server:
  port: 9090
chat:
  reply_delay: 250ms
knowledge:
  path: /srv/chatbotData.yaml
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("HERITAGEBOT_ADMIN_API_KEY", "s3cret")
	t.Setenv("HERITAGEBOT_SERVER_HOST", "127.0.0.1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Address() != "127.0.0.1:9090" {
		t.Fatalf("Address = %q", cfg.Address())
	}
	if cfg.Chat.ReplyDelay != 250*time.Millisecond {
		t.Fatalf("reply delay = %s", cfg.Chat.ReplyDelay)
	}
	if cfg.Admin.APIKey != "s3cret" || cfg.Knowledge.Path != "/srv/chatbotData.yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HERITAGEBOT_WEATHER_API_KEY=owm-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("HERITAGEBOT_WEATHER_API_KEY") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Weather.APIKey != "owm-key" {
		t.Fatalf("weather api key = %q", cfg.Weather.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: 8080},
		Knowledge: KnowledgeConfig{Path: "kb.json"},
		Chat:      ChatConfig{SessionIdle: 30 * time.Minute},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error = %v", err)
	}

	bad := *cfg
	bad.Server.Port = 0
	if bad.Validate() == nil {
		t.Fatalf("expected port error")
	}

	bad = *cfg
	bad.RateLimit = RateLimitConfig{Enabled: true}
	if bad.Validate() == nil {
		t.Fatalf("expected rate limit error")
	}

	for _, idle := range []time.Duration{0, -time.Minute} {
		bad = *cfg
		bad.Chat.SessionIdle = idle
		if bad.Validate() == nil {
			t.Fatalf("expected session_idle error for %s", idle)
		}
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
