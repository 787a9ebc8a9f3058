package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
	"github.com/onekill0503/dnd-bot/internal/repositories/session"
	sessionmock "github.com/onekill0503/dnd-bot/internal/repositories/session/mock"
	"github.com/onekill0503/dnd-bot/internal/testutils"
)

type CachedRepositoryTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockDurable *sessionmock.MockRepository
	clock       *clock.Fixed
	repo        *session.Cached
	ctx         context.Context
}

func (s *CachedRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDurable = sessionmock.NewMockRepository(s.ctrl)
	s.clock = clock.NewFixed(testutils.FixtureTime)
	s.repo = session.NewCached(&session.CachedConfig{
		Durable: s.mockDurable,
		TTL:     time.Hour,
		Clock:   s.clock,
	})
	s.ctx = context.Background()
}

func (s *CachedRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CachedRepositoryTestSuite) TestGet_LoadsOnceFromDurable() {
	sess := testutils.CreateTestSession(2)
	s.mockDurable.EXPECT().
		Get(s.ctx, session.GetInput{ID: sess.SessionID}).
		Return(&session.GetOutput{Session: sess}, nil).
		Times(1)
	s.mockDurable.EXPECT().
		Touch(s.ctx, session.TouchInput{ID: sess.SessionID}).
		Return(&session.TouchOutput{}, nil).
		Times(1)

	first, err := s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.Require().NoError(err)
	second, err := s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.Require().NoError(err)

	s.Same(first.Session, second.Session)
	s.Equal(1, s.repo.Len())
}

func (s *CachedRepositoryTestSuite) TestGet_MissPropagatesNotFound() {
	s.mockDurable.EXPECT().
		Get(s.ctx, session.GetInput{ID: "session_x"}).
		Return(nil, errors.SessionNotFound("session_x"))

	_, err := s.repo.Get(s.ctx, session.GetInput{ID: "session_x"})
	s.True(errors.HasReason(err, errors.ReasonSessionNotFound))
}

func (s *CachedRepositoryTestSuite) TestSave_KeepsMemoryCopyWhenDurableFails() {
	sess := testutils.CreateTestSession(2)
	s.mockDurable.EXPECT().
		Save(s.ctx, session.SaveInput{Session: sess}).
		Return(nil, errors.PersistenceFailed(errors.Unavailable("redis down")))

	s.mockDurable.EXPECT().
		Touch(s.ctx, session.TouchInput{ID: sess.SessionID}).
		Return(nil, errors.PersistenceFailed(errors.Unavailable("redis down")))

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.True(errors.HasReason(err, errors.ReasonPersistenceFailed))

	out, err := s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.Require().NoError(err)
	s.Same(sess, out.Session)
}

func (s *CachedRepositoryTestSuite) TestDelete_EvictsAndRemovesDurable() {
	sess := testutils.CreateTestSession(2)
	s.mockDurable.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&session.SaveOutput{}, nil)
	s.mockDurable.EXPECT().
		Delete(s.ctx, session.DeleteInput{ID: sess.SessionID}).
		Return(&session.DeleteOutput{}, nil)

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.Require().NoError(err)
	_, err = s.repo.Delete(s.ctx, session.DeleteInput{ID: sess.SessionID})
	s.Require().NoError(err)
	s.Zero(s.repo.Len())
}

func (s *CachedRepositoryTestSuite) TestList_LiveCopyWins() {
	live := testutils.CreateTestSession(2)
	stale := testutils.CreateTestSession(2)
	stale.SessionRound = 99
	other := testutils.CreateTestSession(4)
	other.SessionID = "session_other"

	s.mockDurable.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&session.SaveOutput{}, nil)
	s.mockDurable.EXPECT().
		List(s.ctx, session.ListInput{}).
		Return(&session.ListOutput{Sessions: []*game.Session{stale, other}}, nil)

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: live})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, session.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 2)
	s.Same(live, out.Sessions[0])
	s.Equal("session_other", out.Sessions[1].SessionID)
}

func (s *CachedRepositoryTestSuite) TestGet_IdleSessionIsEvicted() {
	sess := testutils.CreateTestSession(2)
	s.mockDurable.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&session.SaveOutput{}, nil)
	s.mockDurable.EXPECT().
		Touch(s.ctx, session.TouchInput{ID: sess.SessionID}).
		Return(&session.TouchOutput{}, nil)
	s.mockDurable.EXPECT().
		Get(s.ctx, session.GetInput{ID: sess.SessionID}).
		Return(nil, errors.SessionNotFound(sess.SessionID))

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: sess})
	s.Require().NoError(err)

	s.clock.Advance(59 * time.Minute)
	_, err = s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.Require().NoError(err, "a read inside the window keeps the session live")

	s.clock.Advance(61 * time.Minute)
	_, err = s.repo.Get(s.ctx, session.GetInput{ID: sess.SessionID})
	s.True(errors.HasReason(err, errors.ReasonSessionNotFound))
	s.Zero(s.repo.Len())
}

func (s *CachedRepositoryTestSuite) TestEvictIdle() {
	idle := testutils.CreateTestSession(2)
	busy := testutils.CreateTestSession(2)
	busy.SessionID = "session_busy"
	s.mockDurable.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&session.SaveOutput{}, nil).Times(3)
	s.mockDurable.EXPECT().
		List(s.ctx, session.ListInput{}).
		Return(&session.ListOutput{}, nil)

	_, err := s.repo.Save(s.ctx, session.SaveInput{Session: idle})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, session.SaveInput{Session: busy})
	s.Require().NoError(err)

	s.clock.Advance(45 * time.Minute)
	_, err = s.repo.Save(s.ctx, session.SaveInput{Session: busy})
	s.Require().NoError(err)
	s.clock.Advance(30 * time.Minute)

	out, err := s.repo.List(s.ctx, session.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Same(busy, out.Sessions[0])

	s.Equal(1, s.repo.EvictIdle())
	s.Equal(1, s.repo.Len())
	s.Zero(s.repo.EvictIdle())
}

func TestCachedRepositorySuite(t *testing.T) {
	suite.Run(t, new(CachedRepositoryTestSuite))
}

func TestCached_MemoryOnly(t *testing.T) {
	ctx := context.Background()
	repo := session.NewCached(nil)

	_, err := repo.Get(ctx, session.GetInput{ID: "session_nope"})
	assert.True(t, errors.HasReason(err, errors.ReasonSessionNotFound))

	sess := testutils.CreateTestSession(1)
	_, err = repo.Save(ctx, session.SaveInput{Session: sess})
	require.NoError(t, err)

	out, err := repo.List(ctx, session.ListInput{})
	require.NoError(t, err)
	assert.Len(t, out.Sessions, 1)
}

func TestCached_ReadsSlideDurableExpiry(t *testing.T) {
	ctx := context.Background()
	client, mr, cleanup := testutils.CreateTestRedis(t)
	defer cleanup()

	durable, err := session.NewRedis(&session.RedisConfig{Client: client, TTL: time.Hour})
	require.NoError(t, err)
	clk := clock.NewFixed(testutils.FixtureTime)
	repo := session.NewCached(&session.CachedConfig{Durable: durable, TTL: time.Hour, Clock: clk})

	sess := testutils.CreateTestSession(2)
	key := "dnd_session:" + sess.SessionID
	_, err = repo.Save(ctx, session.SaveInput{Session: sess})
	require.NoError(t, err)

	advance := func(d time.Duration) {
		clk.Advance(d)
		mr.FastForward(d)
	}

	advance(50 * time.Minute)
	_, err = repo.Get(ctx, session.GetInput{ID: sess.SessionID})
	require.NoError(t, err)

	advance(20 * time.Minute)
	assert.True(t, mr.Exists(key), "a cached read refreshes the durable TTL")

	advance(3 * time.Hour)
	assert.False(t, mr.Exists(key))
	_, err = repo.Get(ctx, session.GetInput{ID: sess.SessionID})
	assert.True(t, errors.HasReason(err, errors.ReasonSessionNotFound))
	assert.Zero(t, repo.Len())
}
