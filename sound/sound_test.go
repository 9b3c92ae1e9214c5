package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestRenderAllCues(t *testing.T) {
	for _, cue := range Cues() {
		t.Run(string(cue), func(t *testing.T) {
			wav, err := Render(cue)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(wav, []byte("RIFF")) {
				t.Fatal("missing RIFF header")
			}
			if !bytes.Equal(wav[8:12], []byte("WAVE")) {
				t.Fatal("missing WAVE tag")
			}
			var riffLen uint32
			binary.Read(bytes.NewReader(wav[4:8]), binary.LittleEndian, &riffLen)
			if int(riffLen)+8 != len(wav) {
				t.Fatalf("riff length %d does not match file size %d", riffLen, len(wav))
			}
			// More than a header's worth of audio.
			if len(wav) < 1000 {
				t.Fatalf("suspiciously short wav: %d bytes", len(wav))
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, _ := Render(CueSubmit)
	b, _ := Render(CueSubmit)
	if !bytes.Equal(a, b) {
		t.Fatal("renders of the same cue should be identical")
	}
}

func TestRenderUnknownCue(t *testing.T) {
	if _, err := Render("explode"); !errors.Is(err, ErrUnknownCue) {
		t.Fatalf("expected ErrUnknownCue, got %v", err)
	}
}
