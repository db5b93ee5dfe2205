package game

import (
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenstud/poker"
)

// DefaultMaxAutoSteps bounds how many bot actions run per external call.
const DefaultMaxAutoSteps = 20

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRNG sets the source of every random choice the engine makes.
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets the logger used for street transitions, actions and
// settlements. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeckFactory replaces the deck built for each hand. Tests use it with
// poker.NewStackedDeck to fix the deal.
func WithDeckFactory(f func(*rand.Rand) poker.Drawer) Option {
	return func(e *Engine) {
		e.newDeck = f
	}
}

// WithBotDetector decides which seat ids are played by the engine.
func WithBotDetector(f func(id string) bool) Option {
	return func(e *Engine) {
		e.isBot = f
	}
}

// WithProfiles replaces the personality table bots are drawn from.
func WithProfiles(t ProfileTable) Option {
	return func(e *Engine) {
		if len(t) > 0 {
			e.profiles = t
		}
	}
}

// WithHandIDs sets the function that names each new hand.
func WithHandIDs(f func() string) Option {
	return func(e *Engine) {
		e.handID = f
	}
}

// WithMaxAutoSteps sets the per-call bound on consecutive bot actions.
func WithMaxAutoSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAutoSteps = n
		}
	}
}

// IsBotID is the default bot detector: ids containing "_AI", starting with
// "AI_" or ending in "AI", ignoring case.
func IsBotID(id string) bool {
	u := strings.ToUpper(strings.TrimSpace(id))
	return strings.Contains(u, "_AI") || strings.HasPrefix(u, "AI_") || strings.HasSuffix(u, "AI")
}
