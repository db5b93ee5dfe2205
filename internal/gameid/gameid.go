// Package gameid generates sortable hand identifiers: a UUIDv7 rendered as
// 26 characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of every generated id.
const Length = 26

// RandSource supplies the random half of an id. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	Uint64() uint64
}

// Generator produces hand ids from a clock and an optional random source.
// A nil source falls back to crypto/rand.
type Generator struct {
	clock quartz.Clock
	rnd   RandSource
}

// NewGenerator returns a Generator. A nil clock uses the real clock.
func NewGenerator(clock quartz.Clock, rnd RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rnd: rnd}
}

// Generate returns an id using the real clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new id. Ids from the same generator sort by creation
// time at millisecond resolution.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	// 48-bit millisecond timestamp, then 80 random bits.
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint16(id[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(id[2:6], uint32(ms))

	if g.rnd != nil {
		binary.BigEndian.PutUint64(id[6:14], g.rnd.Uint64())
		binary.BigEndian.PutUint16(id[14:16], uint16(g.rnd.Uint64()))
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10
	return id
}

// encode writes the 128 bits as 26 five-bit groups, left-padded with two
// zero bits so the first character is always 0-7.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[0:8])
	lo := binary.BigEndian.Uint64(id[8:16])

	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Validate reports whether id is a well-formed hand id.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("hand id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", id[0])
	}
	for i, r := range id {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %c at position %d", r, i)
		}
	}
	return nil
}
