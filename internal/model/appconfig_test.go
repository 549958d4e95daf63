package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultWidth != defaults.Width {
		t.Errorf("Width mismatch: config=%d settings=%d", cfg.DefaultWidth, defaults.Width)
	}
	if cfg.DefaultPadding != defaults.Padding {
		t.Errorf("Padding mismatch: config=%d settings=%d", cfg.DefaultPadding, defaults.Padding)
	}
	if cfg.DefaultMaxSize != defaults.MaxSize {
		t.Errorf("MaxSize mismatch: config=%d settings=%d", cfg.DefaultMaxSize, defaults.MaxSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level=info, got %s", cfg.LogLevel)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultWidth = 2048
	cfg.DefaultPadding = 4
	cfg.DefaultAllowRotation = false

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Width != 2048 {
		t.Errorf("expected Width=2048, got %d", s.Width)
	}
	if s.Padding != 4 {
		t.Errorf("expected Padding=4, got %d", s.Padding)
	}
	if s.AllowRotation {
		t.Error("expected AllowRotation=false")
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("b.json", 2)
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("c.json", 2)

	want := []string{"c.json", "a.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("expected %v, got %v", want, cfg.RecentProjects)
		}
	}
}
