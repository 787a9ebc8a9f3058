package game

import (
	"fmt"
	"strings"
)

// DiceRoll is the immutable result of rolling a notation
type DiceRoll struct {
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
	Notation string `json:"notation"`
}

// String renders the roll as "1d20+3: [14] = 17"
func (r DiceRoll) String() string {
	faces := make([]string, len(r.Rolls))
	for i, v := range r.Rolls {
		faces[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s: [%s] = %d", r.Notation, strings.Join(faces, ", "), r.Total)
}

// AutomaticDiceRoll is a roll the action analyzer made on a player's behalf
type AutomaticDiceRoll struct {
	Action          string   `json:"action"`
	DiceType        string   `json:"diceType"`
	Modifier        int      `json:"modifier"`
	DifficultyClass *int     `json:"difficultyClass,omitempty"`
	Success         bool     `json:"success"`
	CriticalSuccess bool     `json:"criticalSuccess"`
	CriticalFailure bool     `json:"criticalFailure"`
	Roll            DiceRoll `json:"roll"`
}

// Summary renders the roll for prompts and the action log
func (r *AutomaticDiceRoll) Summary() string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s", r.Action, r.Roll.String())
	if r.DifficultyClass != nil {
		outcome := "failure"
		if r.Success {
			outcome = "success"
		}
		fmt.Fprintf(&b, " vs DC %d, %s", *r.DifficultyClass, outcome)
	}
	b.WriteString(")")
	switch {
	case r.CriticalSuccess:
		b.WriteString(" CRITICAL SUCCESS")
	case r.CriticalFailure:
		b.WriteString(" CRITICAL FAILURE")
	}
	return b.String()
}
