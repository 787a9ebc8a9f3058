package game_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

func TestOrderedMap_KeepsInsertionOrder(t *testing.T) {
	var m game.OrderedMap[int]
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 10)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	assert.True(t, m.Delete("alpha"))
	assert.False(t, m.Delete("alpha"))
	assert.Equal(t, []int{10, 3}, m.Values())
}

func TestOrderedMap_JSONPairs(t *testing.T) {
	var m game.OrderedMap[string]
	m.Set("tavern", "smoky")
	m.Set("crypt", "flooded")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"tavern","value":"smoky"},{"key":"crypt","value":"flooded"}]`, string(data))

	var decoded game.OrderedMap[string]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestOrderedMap_EmptyRoundTrip(t *testing.T) {
	var m game.OrderedMap[string]
	m.Set("a", "b")
	m.Delete("a")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var decoded game.OrderedMap[string]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
	assert.Zero(t, decoded.Len())
}

func TestResolveSessionID(t *testing.T) {
	assert.Equal(t, "session_123", game.ResolveSessionID("123"))
	assert.Equal(t, "session_123", game.ResolveSessionID("session_123"))
	assert.Equal(t, game.SessionIDForChannel("123"), game.ResolveSessionID(" 123 "))
	assert.Empty(t, game.ResolveSessionID(""))

	assert.True(t, game.IsSessionID(" session_123"))
	assert.False(t, game.IsSessionID("123"))
}

func TestSessionStatus_ForwardOnly(t *testing.T) {
	assert.True(t, game.StatusCharacterCreation.CanTransitionTo(game.StatusActive))
	assert.True(t, game.StatusCharacterCreation.CanTransitionTo(game.StatusEnded))
	assert.True(t, game.StatusActive.CanTransitionTo(game.StatusEnded))
	assert.False(t, game.StatusActive.CanTransitionTo(game.StatusCharacterCreation))
	assert.False(t, game.StatusEnded.CanTransitionTo(game.StatusActive))
	assert.False(t, game.StatusActive.CanTransitionTo(game.StatusActive))
}

func TestSession_AllAlivePlayersActed(t *testing.T) {
	s := &game.Session{MaxPlayers: 3}
	s.Players.Set("a", &game.PlayerCharacter{UserID: "a", Status: game.CharacterAlive})
	s.Players.Set("b", &game.PlayerCharacter{UserID: "b", Status: game.CharacterUnconscious})
	s.Players.Set("c", &game.PlayerCharacter{UserID: "c", Status: game.CharacterDead})

	assert.True(t, s.IsFull())
	assert.Equal(t, []string{"a", "b"}, s.WaitingOn())

	s.PendingActions.Set("a", game.PendingAction{ActionText: "I wait"})
	assert.False(t, s.AllAlivePlayersActed(), "unconscious players still need to act")

	s.PendingActions.Set("b", game.PendingAction{ActionText: "I groan"})
	assert.True(t, s.AllAlivePlayersActed())
}

func TestSpellSlot_Normalize(t *testing.T) {
	assert.Equal(t, game.SpellSlot{Total: 2, Used: 2, Available: 0}, game.SpellSlot{Total: 2, Used: 5}.Normalize())
	assert.Equal(t, game.SpellSlot{Total: 2, Used: 0, Available: 2}, game.SpellSlot{Total: 2, Used: -1}.Normalize())
}

func TestAutomaticDiceRoll_Summary(t *testing.T) {
	dc := 15
	roll := &game.AutomaticDiceRoll{
		Action:          "Attack",
		DiceType:        "1d20",
		Modifier:        3,
		DifficultyClass: &dc,
		Success:         true,
		CriticalSuccess: true,
		Roll:            game.DiceRoll{Rolls: []int{20}, Modifier: 3, Total: 23, Notation: "1d20+3"},
	}

	assert.Equal(t, "Attack (1d20+3: [20] = 23 vs DC 15, success) CRITICAL SUCCESS", roll.Summary())
	assert.Empty(t, (*game.AutomaticDiceRoll)(nil).Summary())
}
