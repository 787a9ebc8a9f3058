// Package idgen mints identifiers for records stored inside a session
// snapshot, such as inventory entries.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/onekill0503/dnd-bot/internal/pkg/idgen Generator

// PrefixItem tags inventory entry identifiers
const PrefixItem = "item"

type Generator interface {
	Generate() string
}

// Random mints "<prefix>_<uuid>" identifiers
type Random struct {
	prefix string
}

func NewUUID(prefix string) *Random {
	return &Random{prefix: prefix}
}

func (g *Random) Generate() string {
	return join(g.prefix, uuid.NewString())
}

// Sequential mints "<prefix>_1", "<prefix>_2", ... and is safe for
// concurrent use. Tests rely on its predictable output.
type Sequential struct {
	prefix string
	last   atomic.Uint64
}

func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (g *Sequential) Generate() string {
	return join(g.prefix, strconv.FormatUint(g.last.Add(1), 10))
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
