package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/redis"
	"github.com/onekill0503/dnd-bot/internal/repositories/session"
	"github.com/onekill0503/dnd-bot/internal/testutils"
)

const testSessionKey = "dnd_session:session_vc-test-001"

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redis.Client
	mr      *miniredis.Miniredis
	cleanup func()
	repo    session.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.mr, s.cleanup = testutils.CreateTestRedis(s.T())
	repo, err := session.NewRedis(&session.RedisConfig{
		Client: s.client,
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func richSession() *game.Session {
	sess := testutils.CreateActiveTestSession("zed", "amy", "kim")
	dc := 15
	sess.PendingActions.Set("kim", game.PendingAction{
		ActionText:  "I attack the goblin",
		DiceSummary: "Attack (1d20+3: [12] = 15 vs DC 15, success)",
		Roll: &game.AutomaticDiceRoll{
			Action:          "Attack",
			DiceType:        "d20",
			Modifier:        3,
			DifficultyClass: &dc,
			Success:         true,
			Roll:            game.DiceRoll{Rolls: []int{12}, Modifier: 3, Total: 15, Notation: "1d20+3"},
		},
		Timestamp: testutils.FixtureTime,
	})
	sess.PendingActions.Set("amy", game.PendingAction{ActionText: "I hide", Timestamp: testutils.FixtureTime})
	sess.PlayerActions.Set("kim", []string{"I attack the goblin"})
	sess.PlayerActions.Set("amy", []string{"I hide"})
	sess.RecentEvents = []string{"The party met at the inn"}
	sess.SessionHistory = []string{"Welcome", "The party met at the inn"}
	sess.NPCInteractions.Set("Innkeeper", []string{"sold ale"})
	sess.NPCInteractions.Set("Barkeep", []string{"told a rumor"})
	sess.QuestProgress.Set("Lost Ring", game.Quest{Status: game.QuestActive, Progress: "asked around"})
	sess.EnvironmentalState.Set("tavern", "smoky")
	sess.EnvironmentalState.Set("crypt", "flooded")
	sess.SessionRound = 4
	return sess
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet_RoundTripPreservesOrder() {
	original := richSession()

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: original})
	s.Require().NoError(err)
	s.True(s.mr.Exists(testSessionKey))

	out, err := s.repo.Get(s.ctx, session.GetInput{ID: original.SessionID})
	s.Require().NoError(err)

	s.Equal(original, out.Session)
	s.Equal([]string{"zed", "amy", "kim"}, out.Session.Players.Keys())
	s.Equal([]string{"kim", "amy"}, out.Session.PendingActions.Keys())
	s.Equal([]string{"tavern", "crypt"}, out.Session.EnvironmentalState.Keys())
	s.Equal(4, out.Session.SessionRound)
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, session.GetInput{ID: "session_missing"})
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonSessionNotFound))
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGet_EmptyID() {
	_, err := s.repo.Get(s.ctx, session.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestSlidingTTL() {
	sess := testutils.CreateTestSession(2)
	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.Require().NoError(err)
	s.Equal(time.Hour, s.mr.TTL(testSessionKey))

	s.mr.FastForward(40 * time.Minute)
	s.Equal(20*time.Minute, s.mr.TTL(testSessionKey))

	_, err = s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.Require().NoError(err)
	s.Equal(time.Hour, s.mr.TTL(testSessionKey))

	s.mr.FastForward(61 * time.Minute)
	_, err = s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.True(errors.HasReason(err, errors.ReasonSessionNotFound))
}

func (s *RedisRepositoryTestSuite) TestTouch() {
	sess := testutils.CreateTestSession(2)
	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.Require().NoError(err)

	s.mr.FastForward(45 * time.Minute)
	_, err = s.repo.Touch(s.ctx, session.TouchInput{ID: sess.SessionID})
	s.Require().NoError(err)
	s.Equal(time.Hour, s.mr.TTL(testSessionKey))

	_, err = s.repo.Touch(s.ctx, session.TouchInput{ID: "session_missing"})
	s.True(errors.HasReason(err, errors.ReasonSessionNotFound))

	_, err = s.repo.Touch(s.ctx, session.TouchInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	sess := testutils.CreateTestSession(2)
	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, session.DeleteInput{ID: sess.SessionID})
	s.Require().NoError(err)
	s.False(s.mr.Exists(testSessionKey))

	// deleting twice is fine
	_, err = s.repo.Delete(s.ctx, session.DeleteInput{ID: sess.SessionID})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestList() {
	first := testutils.CreateTestSession(2)
	second := testutils.CreateTestSession(3)
	second.SessionID = game.SessionIDForChannel("vc-other")
	second.VoiceChannelID = "vc-other"

	for _, sess := range []*game.Session{first, second} {
		_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
		s.Require().NoError(err)
	}
	s.Require().NoError(s.mr.Set("unrelated", "value"))

	out, err := s.repo.List(s.ctx, session.ListInput{})
	s.Require().NoError(err)
	s.Len(out.Sessions, 2)

	ids := []string{out.Sessions[0].SessionID, out.Sessions[1].SessionID}
	s.ElementsMatch([]string{first.SessionID, second.SessionID}, ids)
}

func (s *RedisRepositoryTestSuite) TestCorruptSnapshots() {
	testCases := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{nope"},
		{name: "unknown status", data: `{"sessionId":"session_vc-test-001","status":"paused","maxPlayers":2}`},
		{name: "missing id", data: `{"status":"active","maxPlayers":2}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Require().NoError(s.mr.Set(testSessionKey, tc.data))

			_, err := s.repo.Get(s.ctx, session.GetInput{ID: "session_vc-test-001"})
			s.True(errors.HasReason(err, errors.ReasonPersistenceFailed))

			out, err := s.repo.List(s.ctx, session.ListInput{})
			s.Require().NoError(err)
			s.Empty(out.Sessions)
		})
	}
}

func (s *RedisRepositoryTestSuite) TestSave_Validation() {
	_, err := s.repo.Save(s.ctx, session.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, session.SaveInput{Session: &game.Session{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestStoreUnavailable() {
	s.mr.Close()

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: testutils.CreateTestSession(2)})
	s.True(errors.HasReason(err, errors.ReasonPersistenceFailed))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func TestNewRedis_Validation(t *testing.T) {
	_, err := session.NewRedis(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = session.NewRedis(&session.RedisConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}
