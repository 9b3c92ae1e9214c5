package prompts

import (
	"strings"
	"testing"

	"echoes/game"
	"echoes/locale"
)

func TestSystemIncludesContext(t *testing.T) {
	instr := System("Escape the tower.", 42, locale.English,
		[]string{"rusty key"}, []string{"The Warden"}, game.DifficultyHard, "")

	for _, want := range []string{
		"Escape the tower.",
		"rusty key",
		"The Warden",
		"42 characters",
		"UNFORGIVING MODE",
		"Simple English",
	} {
		if !strings.Contains(instr, want) {
			t.Fatalf("instruction missing %q", want)
		}
	}
}

func TestSystemSlovakDirective(t *testing.T) {
	instr := System("Uteč.", 10, locale.Slovak, nil, nil, game.DifficultyNormal, "")
	if !strings.Contains(instr, "Slovak language") {
		t.Fatal("expected Slovak language instruction")
	}
	if !strings.Contains(instr, "BALANCED MODE") {
		t.Fatal("expected balanced directive for NORMAL")
	}
}

func TestSystemAppendsSecrets(t *testing.T) {
	instr := System("g", 5, locale.English, nil, nil, game.DifficultyJoke, "HIDDEN TRUTHS: the blade lies")
	if !strings.Contains(instr, "HIDDEN TRUTHS") {
		t.Fatal("expected secrets block")
	}
}

func TestSystemUnknownDifficultyFallsBack(t *testing.T) {
	instr := System("g", 5, locale.English, nil, nil, "LEGACY", "")
	if !strings.Contains(instr, "BALANCED MODE") {
		t.Fatal("unknown difficulty should use the default directive")
	}
}

func TestEnhanceImagePrompt(t *testing.T) {
	got := EnhanceImagePrompt("  a lonely cabin ")
	if !strings.HasPrefix(got, "a lonely cabin") {
		t.Fatalf("prompt body mangled: %q", got)
	}
	if !strings.HasSuffix(got, ImageStyleSuffix) {
		t.Fatal("missing style suffix")
	}
}
