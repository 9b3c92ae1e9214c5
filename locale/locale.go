// Package locale holds the per-language UI string tables. Pure lookup,
// no behavior beyond the fallback to English for unknown tags.
package locale

// Language is a supported locale tag.
type Language string

const (
	English Language = "en"
	Slovak  Language = "sk"
)

// Strings is the full set of UI text for one language.
type Strings struct {
	Placeholder       string
	VoiceCapacity     string
	ActionRequired    string
	CapacityReached   string
	SystemStable      string
	Processing        string
	Inventory         string
	Characters        string
	Turn              string
	Status            string
	Initiate          string
	Win               string
	Lose              string
	WinMsg            string
	LoseMsg           string
	TryAgain          string
	Configuration     string
	InitialCapacity   string
	EntropyRate       string
	SelectScenario    string
	TimePressure      string
	CharGift          string
	TimerActive       string
	CapacityRestored  string
	TimeOut           string
	DifficultySelect  string
	WaitButton        string
	GoalLabel         string
	PlayerLabel       string
	NarratorLabel     string
	LossEpitaph       string
}

var tables = map[Language]Strings{
	English: {
		Placeholder:      "What do you do?",
		VoiceCapacity:    "Voice Capacity",
		ActionRequired:   "Action Required",
		CapacityReached:  "CAPACITY REACHED",
		SystemStable:     "SYSTEM STABLE",
		Processing:       "Processing...",
		Inventory:        "INVENTORY",
		Characters:       "ENTITIES",
		Turn:             "TURN",
		Status:           "STATUS",
		Initiate:         "[ Initiate Sequence ]",
		Win:              "GOAL ACHIEVED",
		Lose:             "SILENCE HAS FALLEN",
		WinMsg:           "You have escaped the cycle.",
		LoseMsg:          "The void claims another soul.",
		TryAgain:         "TRY AGAIN",
		Configuration:    "CONFIGURATION",
		InitialCapacity:  "Initial Voice Capacity",
		EntropyRate:      "Entropy Rate (Char Loss/Turn)",
		SelectScenario:   "Select Starting Conditions",
		TimePressure:     "Temporal Instability (Time Limit %)",
		CharGift:         "Void Resonance (Recovery %)",
		TimerActive:      "TEMPORAL COLLAPSE IMMINENT",
		CapacityRestored: "CAPACITY RESTORED",
		TimeOut:          "TIME EXPIRED",
		DifficultySelect: "Narrator Personality",
		WaitButton:       "Observe / Silence",
		GoalLabel:        "GOAL",
		PlayerLabel:      "You",
		NarratorLabel:    "Narrator",
		LossEpitaph:      "Your voice fades into nothingness.",
	},
	Slovak: {
		Placeholder:      "Čo urobíš?",
		VoiceCapacity:    "Kapacita Hlasu",
		ActionRequired:   "Vyžaduje sa akcia",
		CapacityReached:  "KAPACITA DOSIAHNUTÁ",
		SystemStable:     "SYSTÉM STABILNÝ",
		Processing:       "Spracúva sa...",
		Inventory:        "INVENTÁR",
		Characters:       "BYTOSTI",
		Turn:             "ŤAH",
		Status:           "STAV",
		Initiate:         "[ Spustiť Sekvenciu ]",
		Win:              "CIEĽ DOSIAHNUTÝ",
		Lose:             "PADLO TICHO",
		WinMsg:           "Unikol si z cyklu.",
		LoseMsg:          "Prázdnota si vzala ďalšiu dušu.",
		TryAgain:         "SKÚSIŤ ZNOVU",
		Configuration:    "KONFIGURÁCIA",
		InitialCapacity:  "Počiatočná Kapacita Hlasu",
		EntropyRate:      "Miera Entropie (Strata Znakov/Ťah)",
		SelectScenario:   "Vyber Počiatočné Podmienky",
		TimePressure:     "Časová Nestabilita (Časový Limit %)",
		CharGift:         "Rezonancia Prázdnoty (Obnova %)",
		TimerActive:      "HROZÍ ČASOVÝ KOLAPS",
		CapacityRestored: "KAPACITA OBNOVENÁ",
		TimeOut:          "ČAS VYPRŠAL",
		DifficultySelect: "Osobnosť Rozprávača",
		WaitButton:       "Pozorovať / Ticho",
		GoalLabel:        "CIEĽ",
		PlayerLabel:      "Ty",
		NarratorLabel:    "Rozprávač",
		LossEpitaph:      "Tvoj hlas zanikol v prázdnote.",
	},
}

// Table returns the string table for lang, falling back to English for
// unknown tags.
func Table(lang Language) Strings {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[English]
}

// Valid reports whether lang is a supported language tag.
func Valid(lang Language) bool {
	_, ok := tables[lang]
	return ok
}
