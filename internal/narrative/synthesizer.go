package narrative

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/onekill0503/dnd-bot/internal/errors"
)

// maxSpeechInput is the longest text the speech endpoint accepts
const maxSpeechInput = 4096

// Synthesizer turns text into audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, languageCode string) ([]byte, error)
}

// SpeechConfig configures OpenAI text to speech
type SpeechConfig struct {
	OpenAI OpenAIConfig
	// Model for speech (optional, defaults to gpt-4o-mini-tts)
	Model string
	// Voice used when the caller gives none (optional, defaults to onyx)
	Voice string
}

// Validate validates the config and sets defaults if not provided
func (c *SpeechConfig) Validate() error {
	if err := c.OpenAI.Validate(); err != nil {
		return err
	}
	if c.Model == "" {
		c.Model = openai.SpeechModelGPT4oMiniTTS
	}
	if c.Voice == "" {
		c.Voice = "onyx"
	}
	return nil
}

// OpenAISynthesizer synthesizes mp3 speech
type OpenAISynthesizer struct {
	client openai.Client
	model  string
	voice  string
}

// NewOpenAISynthesizer creates a synthesizer
func NewOpenAISynthesizer(cfg *SpeechConfig) (*OpenAISynthesizer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(cfg.OpenAI.requestOptions()...),
		model:  cfg.Model,
		voice:  cfg.Voice,
	}, nil
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)

// Synthesize renders text as mp3. The language code steers pronunciation on
// models that accept instructions.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, voice, languageCode string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.InvalidArgument("text is required")
	}
	if voice == "" {
		voice = s.voice
	}

	params := openai.AudioSpeechNewParams{
		Model:          s.model,
		Input:          truncateRunes(text, maxSpeechInput),
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if languageCode != "" && s.model != openai.SpeechModelTTS1 && s.model != openai.SpeechModelTTS1HD {
		params.Instructions = openai.String(fmt.Sprintf(
			"Narrate as a dramatic fantasy storyteller. Speak in the language with code %s.", languageCode))
	}

	start := time.Now()
	resp, err := s.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, errors.SynthesisFailed(err)
	}
	defer func() { _ = resp.Body.Close() }()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.SynthesisFailed(err)
	}
	if len(audio) == 0 {
		return nil, errors.SynthesisFailed(nil).WithMeta("detail", "empty audio")
	}

	slog.Debug("Synthesized narration",
		"model", s.model,
		"voice", voice,
		"bytes", len(audio),
		"duration", time.Since(start))

	return audio, nil
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
