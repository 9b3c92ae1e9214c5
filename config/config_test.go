package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr == "" {
		t.Fatal("expected default listen address")
	}
	if cfg.StoryModel == "" {
		t.Fatal("expected default story model")
	}
	if cfg.ImageModel == "" {
		t.Fatal("expected default image model")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ECHOES_ADDR", "127.0.0.1:1234")
	t.Setenv("ECHOES_STORY_MODEL", "gemini-test")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != "127.0.0.1:1234" {
		t.Fatalf("addr = %q, want 127.0.0.1:1234", cfg.Addr)
	}
	if cfg.StoryModel != "gemini-test" {
		t.Fatalf("story model = %q, want gemini-test", cfg.StoryModel)
	}
}
