package narrative

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

// NarratorConfig holds the dependencies for the narrator
type NarratorConfig struct {
	Synthesizer Synthesizer
	// Sink defaults to DiscardSink
	Sink    AudioSink
	Prompts *PromptBuilder
	// Voice passed to the synthesizer (optional)
	Voice string
	// Timeout bounds one synthesize and play (optional, defaults to 90 seconds)
	Timeout time.Duration
}

// Validate validates the config and sets defaults if not provided
func (c *NarratorConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Synthesizer == nil {
		vb.RequiredField("Synthesizer")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Sink == nil {
		c.Sink = DiscardSink{}
	}
	if c.Prompts == nil {
		c.Prompts = NewPromptBuilder(nil)
	}
	if c.Timeout == 0 {
		c.Timeout = 90 * time.Second
	}
	return nil
}

// Narrator speaks narration events. Speech never blocks the game: each
// event is synthesized in the background and failures are only logged.
type Narrator struct {
	synth   Synthesizer
	sink    AudioSink
	prompts *PromptBuilder
	voice   string
	timeout time.Duration

	wg    sync.WaitGroup
	mu    sync.Mutex
	subID string
}

// NewNarrator creates a narrator
func NewNarrator(cfg *NarratorConfig) (*Narrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Narrator{
		synth:   cfg.Synthesizer,
		sink:    cfg.Sink,
		prompts: cfg.Prompts,
		voice:   cfg.Voice,
		timeout: cfg.Timeout,
	}, nil
}

// Attach subscribes the narrator to narration events on the bus
func (n *Narrator) Attach(bus events.EventBus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subID = bus.SubscribeFunc(game.EventNarration, 0, n.handle)
}

// Detach removes the subscription and waits for in-flight speech
func (n *Narrator) Detach(bus events.EventBus) error {
	n.mu.Lock()
	id := n.subID
	n.subID = ""
	n.mu.Unlock()

	var err error
	if id != "" {
		err = bus.Unsubscribe(id)
	}
	n.Wait()
	return err
}

// Wait blocks until all background narration has finished
func (n *Narrator) Wait() {
	n.wg.Wait()
}

func (n *Narrator) handle(ctx context.Context, e events.Event) error {
	narration, ok := e.Source().(*game.Narration)
	if !ok || narration.Text == "" {
		return nil
	}

	// the publisher's context usually ends with its request
	bg := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.Speak(bg, narration); err != nil {
			slog.Warn("Narration failed",
				"session_id", narration.SessionID,
				"channel_id", narration.VoiceChannelID,
				"error", err)
		}
	}()
	return nil
}

// Speak synthesizes and plays one narration synchronously
func (n *Narrator) Speak(ctx context.Context, narration *game.Narration) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	audio, err := n.synth.Synthesize(ctx, narration.Text, n.voice, n.prompts.SpeechCode(narration.Language))
	if err != nil {
		if errors.HasReason(err, errors.ReasonSynthesisFailed) {
			return err
		}
		return errors.SynthesisFailed(err)
	}

	if err := n.sink.Play(ctx, narration.VoiceChannelID, audio); err != nil {
		return errors.Wrap(err, "failed to play narration")
	}
	return nil
}
