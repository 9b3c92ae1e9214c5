package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCleanNarration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips bracketed annotations",
			in:   "The door opens.\n\n[CAPACITY RESTORED: +9]",
			want: "The door opens.",
		},
		{
			name: "collapses newlines",
			in:   "One.\nTwo.\n\nThree.",
			want: "One. Two. Three.",
		},
		{
			name: "plain text unchanged",
			in:   "Nothing happens.",
			want: "Nothing happens.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanNarration(tt.in); got != tt.want {
				t.Fatalf("CleanNarration(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewProviderSelection(t *testing.T) {
	if New("elevenlabs", "", "voice") != nil {
		t.Fatal("no key should disable speech")
	}
	if New("unknown", "key", "voice") != nil {
		t.Fatal("unknown provider should disable speech")
	}
	if New("elevenlabs", "key", "voice") == nil {
		t.Fatal("expected elevenlabs provider")
	}
}

func TestElevenLabsSpeak(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	e := NewElevenLabs("secret", "voice-1")
	e.baseURL = srv.URL

	audio, err := e.Speak(context.Background(), "The void [SYSTEM] listens.")
	if err != nil {
		t.Fatalf("speak: %v", err)
	}
	if string(audio) != "audio-bytes" {
		t.Fatalf("audio = %q", audio)
	}
	if gotPath != "/text-to-speech/voice-1" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
}

func TestElevenLabsSpeakEmptyAfterCleaningIsSilent(t *testing.T) {
	e := NewElevenLabs("secret", "voice-1")
	audio, err := e.Speak(context.Background(), "[ONLY SYSTEM NOISE]")
	if err != nil || audio != nil {
		t.Fatalf("expected silent nil, got %v / %v", audio, err)
	}
}

func TestElevenLabsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	e := NewElevenLabs("bad", "voice-1")
	e.baseURL = srv.URL
	if _, err := e.Speak(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
