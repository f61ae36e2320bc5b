// Package gameid generates the identifiers used to key lobbies and tables in
// the session registries: UUIDv7 values rendered as 26-character Crockford
// base32 strings, so ids sort roughly by creation time.
package gameid

import (
	"encoding/base32"
	"fmt"
	"time"

	"crypto/rand"
)

// Crockford's base32 alphabet, lowercased, no padding.
var encoding = base32.NewEncoding("0123456789abcdefghjkmnpqrstvwxyz").WithPadding(base32.NoPadding)

// RandSource supplies the random tail of an id. It matches the subset of
// *math/rand/v2.Rand the generator needs, so tests can inject a seeded
// source.
type RandSource interface {
	IntN(n int) int
}

// Generator produces ids, optionally from an injected RandSource.
type Generator struct {
	rand RandSource
}

// NewGenerator returns a generator. A nil RandSource means crypto/rand.
func NewGenerator(rand RandSource) *Generator {
	return &Generator{rand: rand}
}

// New creates an id using crypto/rand.
func New() string {
	return NewGenerator(nil).New()
}

// New creates a 26-character id from a UUIDv7.
func (g *Generator) New() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp up front keeps ids time-ordered.
	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if g.rand != nil {
		for i := 6; i < len(uuid); i++ {
			uuid[i] = byte(g.rand.IntN(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("gameid: failed to read random bytes: " + err.Error())
		}
	}

	// Version 7, variant 10.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encoding.EncodeToString(uuid[:])
}

// Validate checks that an id is well-formed.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be 26 characters, got %d", len(id))
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("id is not valid base32: %w", err)
	}
	return nil
}
