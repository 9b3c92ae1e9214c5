package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"echoes/command"
	"echoes/game"
	"echoes/locale"
	"echoes/session"
	"echoes/sound"
	"echoes/templates"
)

// maxSaveSize bounds uploaded save files.
const maxSaveSize = 10 << 20

type Handler struct {
	Manager *session.Manager
}

func (h *Handler) view(flash string) templates.View {
	ts, remaining, total := h.Manager.Countdown()
	v := templates.NewView(h.Manager.Snapshot(), ts, remaining, total)
	v.Flash = flash
	return v
}

// Index serves the full page: start screen or the running game.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templates.Index("Echoes of the Void", h.view("")).Render(r.Context(), w)
}

// Config applies start-screen settings without starting a run. Used by the
// language switcher so the whole screen re-renders localized.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	h.Manager.Configure(configFromForm(r))
	templates.Shell(h.view("")).Render(r.Context(), w)
}

// Start begins a new run with the submitted settings.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.Manager.Configure(configFromForm(r))
	if err := h.Manager.Start(r.Context()); err != nil {
		http.Error(w, "The story could not begin. Please try again.", http.StatusInternalServerError)
		return
	}
	templates.Shell(h.view("")).Render(r.Context(), w)
}

// Turn resolves one player action. Recognized commands short-circuit the
// backend: "restart" returns to the start screen, "wait" submits silence.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	prompt := strings.TrimSpace(r.FormValue("prompt"))

	switch command.Recognize(prompt) {
	case command.Restart:
		h.Manager.Restart()
		templates.Shell(h.view("")).Render(r.Context(), w)
		return
	case command.Wait:
		h.Manager.Wait(r.Context())
		templates.Game(h.view("")).Render(r.Context(), w)
		return
	}

	err := h.Manager.Submit(r.Context(), prompt)
	templates.Game(h.view(flashFor(err, h.Manager.Snapshot().Language))).Render(r.Context(), w)
}

// Wait submits the wait sentinel directly (the dedicated button).
func (h *Handler) Wait(w http.ResponseWriter, r *http.Request) {
	h.Manager.Wait(r.Context())
	templates.Game(h.view("")).Render(r.Context(), w)
}

// Draft mirrors the input buffer so a timer expiry can force-submit it.
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	h.Manager.SetDraft(r.FormValue("prompt"))
	w.WriteHeader(http.StatusNoContent)
}

// State re-renders the game screen; the page polls it so async image
// patches and forced submissions show up.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	templates.Game(h.view("")).Render(r.Context(), w)
}

// Restart returns to the start screen, keeping the configured tuning.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.Manager.Restart()
	templates.Shell(h.view("")).Render(r.Context(), w)
}

// Export downloads the session as a markdown save file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc, name, err := h.Manager.Export()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export the story: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(doc)
}

// ExportPDF downloads the transcript as a printable document.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Manager.ExportPDF()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export the story: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="echoes.pdf"`)
	w.Write(doc)
}

// Import loads a markdown save and resumes it.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("savefile")
	if err != nil {
		http.Error(w, "No save file in the request.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSaveSize))
	if err != nil {
		http.Error(w, "Could not read the save file.", http.StatusBadRequest)
		return
	}
	if err := h.Manager.Import(data); err != nil {
		templates.Shell(h.view(importErrorMessage(h.Manager.Snapshot().Language))).Render(r.Context(), w)
		return
	}
	templates.Shell(h.view("")).Render(r.Context(), w)
}

// Audio serves the synthesized interface cues as WAV.
func (h *Handler) Audio(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/audio/")
	name = strings.TrimSuffix(name, ".wav")
	data, err := sound.Render(sound.Cue(name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// configFromForm reads the start-screen form. Absent or malformed fields
// stay zero and are ignored by Configure.
func configFromForm(r *http.Request) session.Config {
	return session.Config{
		Language:        locale.Language(r.FormValue("language")),
		ScenarioID:      r.FormValue("scenario"),
		InitialCapacity: formInt(r, "capacity"),
		Decrement:       formInt(r, "decrement"),
		TimerChance:     formInt(r, "timer_chance"),
		GiftChance:      formInt(r, "gift_chance"),
		Difficulty:      game.Difficulty(r.FormValue("difficulty")),
	}
}

func formInt(r *http.Request, key string) int {
	v := r.FormValue(key)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

// flashFor maps expected submission failures to a user-facing message.
// Backend failures already surface through the session's own error field.
func flashFor(err error, lang locale.Language) string {
	if errors.Is(err, command.ErrOverBudget) {
		if lang == locale.Slovak {
			return "Tvoj hlas na toľko slov nestačí."
		}
		return "Your voice cannot carry that many words."
	}
	return ""
}

func importErrorMessage(lang locale.Language) string {
	if lang == locale.Slovak {
		return "Súbor sa nepodarilo načítať."
	}
	return "The save file could not be read."
}
