package scenario

import (
	"testing"

	"echoes/locale"
)

func TestCatalogIsWellFormed(t *testing.T) {
	if len(Catalog) == 0 {
		t.Fatal("empty catalog")
	}
	seen := map[string]bool{}
	for _, s := range Catalog {
		if s.ID == "" {
			t.Fatal("scenario with empty id")
		}
		if seen[s.ID] {
			t.Fatalf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Goal.EN == "" || s.Goal.SK == "" {
			t.Fatalf("%s: goal missing a language", s.ID)
		}
		if s.Situation.EN == "" || s.Situation.SK == "" {
			t.Fatalf("%s: situation missing a language", s.ID)
		}
		if s.ImagePrompt == "" {
			t.Fatalf("%s: empty image prompt", s.ID)
		}
	}
}

func TestByID(t *testing.T) {
	s, ok := ByID("tower")
	if !ok {
		t.Fatal("expected tower scenario")
	}
	if s.Title.For(locale.English) != "The Silent Tower" {
		t.Fatalf("title = %q", s.Title.For(locale.English))
	}
	if _, ok := ByID("no-such"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestTextFallsBackToEnglish(t *testing.T) {
	txt := Text{EN: "hello"}
	if got := txt.For(locale.Slovak); got != "hello" {
		t.Fatalf("fallback = %q, want hello", got)
	}
}

func TestSecretsOnlyWhereDefined(t *testing.T) {
	princess, _ := ByID("princess")
	if !princess.HasSecrets() {
		t.Fatal("princess scenario should carry secrets")
	}
	tower, _ := ByID("tower")
	if tower.HasSecrets() {
		t.Fatal("tower scenario should not carry secrets")
	}
}
