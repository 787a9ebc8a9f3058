package testutils

import (
	"time"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// Default identifiers used by fixtures
const (
	TestVoiceChannelID = "vc-test-001"
	TestGuildID        = "guild-test-001"
	TestCreatorID      = "user-creator"
)

// FixtureTime is the timestamp every fixture is stamped with
var FixtureTime = time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)

// CreateTestCharacter creates an alive level 1 fighter owned by userID
func CreateTestCharacter(userID, name string) *game.PlayerCharacter {
	return &game.PlayerCharacter{
		UserID:       userID,
		Username:     userID,
		Name:         name,
		Class:        "Fighter",
		Race:         "Human",
		Background:   "Soldier",
		Stats:        game.AbilityScores{Strength: 16, Dexterity: 12, Constitution: 14, Intelligence: 10, Wisdom: 11, Charisma: 9},
		HitPoints:    12,
		MaxHitPoints: 12,
		ArmorClass:   16,
		Alignment:    "Neutral Good",
		Status:       game.CharacterAlive,
		Skills: map[game.Skill]game.SkillScore{
			game.SkillAthletics: {Proficient: true, Modifier: 5},
		},
		Currency:         game.Currency{Gold: 10},
		Inventory:        []game.Item{{ID: "item_" + userID, Name: "Longsword", Quantity: 1}},
		Level:            1,
		ProficiencyBonus: 2,
		Speed:            30,
		Languages:        []string{"Common"},
		CreatedAt:        FixtureTime,
	}
}

// CreateTestSession creates a session in character creation for TestVoiceChannelID
func CreateTestSession(maxPlayers int) *game.Session {
	return &game.Session{
		SessionID:      game.SessionIDForChannel(TestVoiceChannelID),
		VoiceChannelID: TestVoiceChannelID,
		GuildID:        TestGuildID,
		CreatorID:      TestCreatorID,
		Theme:          "classic fantasy",
		Status:         game.StatusCharacterCreation,
		PartyLevel:     1,
		PartySize:      maxPlayers,
		MaxPlayers:     maxPlayers,
		Language:       "en",
		CreatedAt:      FixtureTime,
		UpdatedAt:      FixtureTime,
	}
}

// CreateActiveTestSession creates a full, active session with one character per user
func CreateActiveTestSession(userIDs ...string) *game.Session {
	s := CreateTestSession(len(userIDs))
	for _, id := range userIDs {
		s.Players.Set(id, CreateTestCharacter(id, "Hero "+id))
	}
	s.Status = game.StatusActive
	return s
}
