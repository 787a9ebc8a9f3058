package narrative_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/narrative"
	narrativemock "github.com/onekill0503/dnd-bot/internal/narrative/mock"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
)

type NarratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockSynth *narrativemock.MockSynthesizer
	mockSink  *narrativemock.MockAudioSink
	bus       events.EventBus
	narrator  *narrative.Narrator
	ctx       context.Context
}

func (s *NarratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSynth = narrativemock.NewMockSynthesizer(s.ctrl)
	s.mockSink = narrativemock.NewMockAudioSink(s.ctrl)
	s.bus = events.NewBus()
	s.ctx = context.Background()

	narrator, err := narrative.NewNarrator(&narrative.NarratorConfig{
		Synthesizer: s.mockSynth,
		Sink:        s.mockSink,
		Voice:       "onyx",
	})
	s.Require().NoError(err)
	s.narrator = narrator
	s.narrator.Attach(s.bus)
}

func (s *NarratorTestSuite) TearDownTest() {
	s.Require().NoError(s.narrator.Detach(s.bus))
	s.ctrl.Finish()
}

func (s *NarratorTestSuite) publish(n *game.Narration) {
	s.Require().NoError(s.bus.Publish(s.ctx, events.NewGameEvent(game.EventNarration, n, nil)))
	s.narrator.Wait()
}

func (s *NarratorTestSuite) TestNarrationIsSynthesizedAndPlayed() {
	audio := []byte("mp3")
	s.mockSynth.EXPECT().
		Synthesize(gomock.Any(), "The door creaks open.", "onyx", "fr-FR").
		Return(audio, nil)
	s.mockSink.EXPECT().
		Play(gomock.Any(), "vc-1", audio).
		Return(nil)

	s.publish(&game.Narration{
		SessionID:      "session_vc-1",
		VoiceChannelID: "vc-1",
		Language:       "fr",
		Text:           "The door creaks open.",
	})
}

func (s *NarratorTestSuite) TestSynthesisFailureIsSwallowed() {
	s.mockSynth.EXPECT().
		Synthesize(gomock.Any(), gomock.Any(), gomock.Any(), "en-US").
		Return(nil, errors.Unavailable("tts down"))

	s.publish(&game.Narration{VoiceChannelID: "vc-1", Language: "xx", Text: "Hello"})
}

func (s *NarratorTestSuite) TestEmptyNarrationIsIgnored() {
	s.publish(&game.Narration{VoiceChannelID: "vc-1"})
}

func (s *NarratorTestSuite) TestSpeakReportsSynthesisFailure() {
	s.mockSynth.EXPECT().
		Synthesize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("tts down"))

	err := s.narrator.Speak(s.ctx, &game.Narration{Text: "Hi"})
	s.True(errors.HasReason(err, errors.ReasonSynthesisFailed))
}

func (s *NarratorTestSuite) TestOtherEventsAreIgnored() {
	s.Require().NoError(s.bus.Publish(s.ctx, events.NewGameEvent(game.EventPlayerDied, &game.Session{SessionID: "x"}, nil)))
	s.narrator.Wait()
}

func TestNarratorSuite(t *testing.T) {
	suite.Run(t, new(NarratorTestSuite))
}

func TestNewNarrator_RequiresSynthesizer(t *testing.T) {
	_, err := narrative.NewNarrator(&narrative.NarratorConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFileSink_WritesClipsPerChannel(t *testing.T) {
	dir := t.TempDir()
	clk := clock.NewFixed(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	sink, err := narrative.NewFileSink(dir, clk)
	require.NoError(t, err)

	require.NoError(t, sink.Play(context.Background(), "vc/../1", []byte("one")))
	require.NoError(t, sink.Play(context.Background(), "vc/../1", []byte("two")))

	entries, err := os.ReadDir(filepath.Join(dir, "vc_1"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(dir, "vc_1", "20240102T030405-0001.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestDiscardSink(t *testing.T) {
	assert.NoError(t, narrative.DiscardSink{}.Play(context.Background(), "vc", []byte("x")))
}
