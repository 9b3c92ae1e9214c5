// Package command validates player input against the voice budget and
// recognizes the few meta-commands that bypass narration.
package command

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"echoes/game"
)

// ErrOverBudget indicates the input exceeds the remaining voice capacity.
var ErrOverBudget = errors.New("input exceeds voice capacity")

// Validate enforces the character budget. The wait sentinel is exempt: the
// waiting affordance is always affordable.
func Validate(text string, capacity int) error {
	if text == game.WaitSentinel {
		return nil
	}
	if capacity < 0 {
		capacity = 0
	}
	if utf8.RuneCountInString(text) > capacity {
		return ErrOverBudget
	}
	return nil
}

// Kind classifies a recognized meta-command.
type Kind int

const (
	None Kind = iota
	Restart
	Wait
)

var aliases = []struct {
	phrase string
	kind   Kind
}{
	{"restart", Restart},
	{"wait", Wait},
	{"observe", Wait},
}

// Recognize reports whether the input is a meta-command rather than a story
// action. Matching tolerates small typos on longer alias words.
func Recognize(text string) Kind {
	if strings.TrimSpace(text) == game.WaitSentinel {
		return Wait
	}
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return None
	}
	for _, a := range aliases {
		dist := levenshtein.ComputeDistance(normalized, a.phrase)
		if dist <= distanceLimit(len(a.phrase)) {
			return a.kind
		}
	}
	return None
}

func distanceLimit(aliasLen int) int {
	if aliasLen >= 5 {
		return 1
	}
	return 0
}
