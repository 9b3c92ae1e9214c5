package locale

import "testing"

func TestTableKnownLanguages(t *testing.T) {
	for _, lang := range []Language{English, Slovak} {
		tab := Table(lang)
		if tab.Placeholder == "" {
			t.Fatalf("%s: empty placeholder", lang)
		}
		if tab.LossEpitaph == "" {
			t.Fatalf("%s: empty loss epitaph", lang)
		}
	}
}

func TestTableUnknownFallsBackToEnglish(t *testing.T) {
	got := Table("xx")
	want := Table(English)
	if got != want {
		t.Fatal("unknown language should fall back to English table")
	}
}

func TestValid(t *testing.T) {
	if !Valid(English) || !Valid(Slovak) {
		t.Fatal("expected en and sk to be valid")
	}
	if Valid("de") {
		t.Fatal("expected de to be invalid")
	}
}
