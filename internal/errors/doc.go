// Package errors provides the structured error type used across the dungeon
// master engine.
//
// Every error carries a transport-neutral Code (mapped to an HTTP status by
// the handler layer), a user-facing message, an optional cause and metadata.
// Game rule violations additionally carry a Reason, a stable tag that the
// command layer can switch on without parsing messages. Each reason fixes
// its own Code, so PartyFull is always RESOURCE_EXHAUSTED:
//
//	_, err := svc.TrackPlayerAction(ctx, input)
//	switch errors.GetReason(err) {
//	case errors.ReasonAlreadyActed:
//	    // tell the player to wait for the round to resolve
//	case errors.ReasonPlayerDead:
//	    // dead characters cannot act
//	}
//
// Wrapping keeps both the code and the reason of the innermost Error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save session")
//	}
//
// Validation of configs and inputs goes through the ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Layer guidelines:
//   - Repositories return SessionNotFound / InvalidArgument and wrap storage
//     errors in PersistenceFailed.
//   - Orchestrators return domain errors (DuplicateCharacter, PartyFull, ...)
//     which are expected and never logged as system errors.
//   - Handlers render Code, Reason and Message; internal causes stay in logs.
package errors
