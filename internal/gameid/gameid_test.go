package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsValid(t *testing.T) {
	t.Parallel()

	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGeneratorSortsByTime(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	g := NewGenerator(clock, randutil.New(1))

	var ids []string
	for range 10 {
		ids = append(ids, g.Generate())
		clock.Advance(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "%s >= %s", ids[i-1], ids[i])
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(9)).Generate()
	b := NewGenerator(clock, randutil.New(9)).Generate()
	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
}

func TestEncodeKnownValue(t *testing.T) {
	t.Parallel()

	var zero [16]byte
	assert.Equal(t, strings.Repeat("0", Length), encode(zero))

	var one [16]byte
	one[15] = 1
	assert.Equal(t, strings.Repeat("0", Length-1)+"1", encode(one))

	var full [16]byte
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), encode(full))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2x", true},
		{"too long", strings.Repeat("0", 27), true},
		{"first char too big", "8" + strings.Repeat("0", 25), true},
		{"bad character", "0" + strings.Repeat("u", 25), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
