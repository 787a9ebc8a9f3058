package session

import (
	"context"
	stderrors "errors"

	"github.com/onekill0503/dnd-bot/internal/errors"
	redisclient "github.com/onekill0503/dnd-bot/internal/redis"
)

// SweepInput selects what Sweep does with unreadable snapshots
type SweepInput struct {
	// Delete removes the corrupted keys; otherwise they are only reported
	Delete bool
}

// SweepOutput reports the corrupted snapshots found in the store
type SweepOutput struct {
	Checked   int
	Corrupted []string
	Deleted   int
}

// Sweep scans every session snapshot and collects the keys that fail to
// decode. List skips such keys silently; Sweep is how an operator finds them.
func Sweep(ctx context.Context, client redisclient.Client, input SweepInput) (*SweepOutput, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	out := &SweepOutput{}
	iter := client.Scan(ctx, 0, sessionKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if stderrors.Is(err, redisclient.Nil) {
				continue
			}
			return nil, errors.PersistenceFailed(err)
		}
		out.Checked++

		if _, err := decodeSession(data); err != nil {
			out.Corrupted = append(out.Corrupted, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.PersistenceFailed(err)
	}

	if !input.Delete || len(out.Corrupted) == 0 {
		return out, nil
	}

	deleted, err := client.Del(ctx, out.Corrupted...).Result()
	if err != nil {
		return nil, errors.PersistenceFailed(err)
	}
	out.Deleted = int(deleted)
	return out, nil
}
