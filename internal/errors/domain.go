package errors

// Reason tags an error with the game rule that produced it
type Reason string

const (
	ReasonSessionNotFound     Reason = "session_not_found"
	ReasonSessionRunning      Reason = "session_running"
	ReasonCharacterNotFound   Reason = "character_not_found"
	ReasonItemNotFound        Reason = "item_not_found"
	ReasonDuplicateCharacter  Reason = "duplicate_character"
	ReasonPartyFull           Reason = "party_full"
	ReasonNotActive           Reason = "not_active"
	ReasonPlayerDead          Reason = "player_dead"
	ReasonAlreadyActed        Reason = "already_acted"
	ReasonNoPendingActions    Reason = "no_pending_actions"
	ReasonRoundInProgress     Reason = "round_in_progress"
	ReasonNoSpellSlots        Reason = "no_spell_slots"
	ReasonForbidden           Reason = "forbidden"
	ReasonInvalidDiceNotation Reason = "invalid_dice_notation"
	ReasonGenerationFailed    Reason = "generation_failed"
	ReasonSynthesisFailed     Reason = "synthesis_failed"
	ReasonPersistenceFailed   Reason = "persistence_failed"
)

type rule struct {
	code Code
	// expected rules are player mistakes, not faults worth an error log
	expected bool
}

var rules = map[Reason]rule{
	ReasonSessionNotFound:     {CodeNotFound, true},
	ReasonSessionRunning:      {CodeAlreadyExists, true},
	ReasonCharacterNotFound:   {CodeNotFound, true},
	ReasonItemNotFound:        {CodeNotFound, true},
	ReasonDuplicateCharacter:  {CodeAlreadyExists, true},
	ReasonPartyFull:           {CodeResourceExhausted, true},
	ReasonNotActive:           {CodeFailedPrecondition, true},
	ReasonPlayerDead:          {CodeFailedPrecondition, true},
	ReasonAlreadyActed:        {CodeFailedPrecondition, true},
	ReasonNoPendingActions:    {CodeFailedPrecondition, true},
	ReasonRoundInProgress:     {CodeAborted, true},
	ReasonNoSpellSlots:        {CodeFailedPrecondition, true},
	ReasonForbidden:           {CodePermissionDenied, true},
	ReasonInvalidDiceNotation: {CodeInvalidArgument, true},
	ReasonGenerationFailed:    {CodeUnavailable, false},
	ReasonSynthesisFailed:     {CodeUnavailable, false},
	ReasonPersistenceFailed:   {CodeInternal, false},
}

func (r Reason) String() string {
	return string(r)
}

// Code is the classification every error with this reason carries
func (r Reason) Code() Code {
	if rl, ok := rules[r]; ok {
		return rl.code
	}
	return CodeInternal
}

// Expected reports whether the reason is a normal rule violation
func (r Reason) Expected() bool {
	return rules[r].expected
}

func violation(reason Reason, format string, args ...any) *Error {
	return Newf(reason.Code(), format, args...).WithReason(reason)
}

func failure(reason Reason, cause error, message string) *Error {
	err := Wrap(cause, message)
	if err == nil {
		err = New(CodeInternal, message)
	}
	return err.WithReason(reason)
}

func SessionNotFound(ref string) *Error {
	return violation(ReasonSessionNotFound, "session %s not found", ref).
		WithMeta("session_ref", ref)
}

// SessionRunning is returned when the voice channel already hosts a live session
func SessionRunning(channelID, sessionID string) *Error {
	return violation(ReasonSessionRunning, "a session is already running in channel %s", channelID).
		WithMeta("session_id", sessionID)
}

func CharacterNotFound(userID string) *Error {
	return violation(ReasonCharacterNotFound, "no character for participant %s", userID).
		WithMeta("user_id", userID)
}

func ItemNotFound(userID, itemID string) *Error {
	return violation(ReasonItemNotFound, "item %s not found", itemID).
		WithMeta("user_id", userID)
}

// DuplicateCharacter is returned when a participant already created a character
func DuplicateCharacter(userID string) *Error {
	return violation(ReasonDuplicateCharacter, "participant %s already has a character", userID).
		WithMeta("user_id", userID)
}

// PartyFull is returned when the session already holds maxPlayers characters
func PartyFull(maxPlayers int) *Error {
	return violation(ReasonPartyFull, "party is full (%d players)", maxPlayers)
}

// NotActive is returned when an operation needs a different session status
func NotActive(status string) *Error {
	return violation(ReasonNotActive, "session is %s", status).
		WithMeta("status", status)
}

func PlayerDead(name string) *Error {
	return violation(ReasonPlayerDead, "%s is dead and cannot act", name)
}

// AlreadyActed is returned on a second action from one participant in a round
func AlreadyActed(userID string) *Error {
	return violation(ReasonAlreadyActed, "participant %s already acted this round", userID).
		WithMeta("user_id", userID)
}

func NoPendingActions() *Error {
	return violation(ReasonNoPendingActions, "no pending actions to resolve")
}

// RoundInProgress is returned while another caller resolves the same round
func RoundInProgress(round int) *Error {
	return violation(ReasonRoundInProgress, "round %d is already being resolved", round)
}

func NoSpellSlots(userID string, level int) *Error {
	return violation(ReasonNoSpellSlots, "no level %d spell slots available", level).
		WithMeta("user_id", userID)
}

// Forbidden is returned when a non-creator attempts a creator-only action
func Forbidden(message string) *Error {
	return violation(ReasonForbidden, "%s", message)
}

func InvalidDiceNotation(notation string) *Error {
	return violation(ReasonInvalidDiceNotation, "invalid dice notation: %q (expected format: NdM+K)", notation)
}

// GenerationFailed wraps a narrative generator failure
func GenerationFailed(cause error) *Error {
	return failure(ReasonGenerationFailed, cause, "narrative generation failed")
}

// SynthesisFailed wraps a speech synthesizer failure
func SynthesisFailed(cause error) *Error {
	return failure(ReasonSynthesisFailed, cause, "speech synthesis failed")
}

// PersistenceFailed wraps a session store failure
func PersistenceFailed(cause error) *Error {
	return failure(ReasonPersistenceFailed, cause, "session persistence failed")
}
