package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Profile is a bot personality: how often it bluffs, bets, raises and folds.
type Profile struct {
	Name            string               `json:"name"`
	Weight          float64              `json:"weight"`
	Bluff           float64              `json:"bluff"`
	BetAggression   float64              `json:"bet_aggression"`
	RaiseAggression float64              `json:"raise_aggression"`
	CallTightness   float64              `json:"call_tightness"`
	SemiBluff       float64              `json:"semi_bluff"`
	StreetWeights   [streetCount]float64 `json:"street_weights"`
}

// StreetWeight returns the aggression multiplier for a street.
func (p *Profile) StreetWeight(st Street) float64 {
	if st < 0 || int(st) >= len(p.StreetWeights) {
		return 1.0
	}
	return p.StreetWeights[st]
}

// Validate checks that every coefficient is a probability-like value.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Weight < 0 {
		return fmt.Errorf("profile %s: weight must not be negative", p.Name)
	}
	coeffs := map[string]float64{
		"bluff":            p.Bluff,
		"bet_aggression":   p.BetAggression,
		"raise_aggression": p.RaiseAggression,
		"call_tightness":   p.CallTightness,
		"semi_bluff":       p.SemiBluff,
	}
	for name, v := range coeffs {
		if v < 0 || v > 1 {
			return fmt.Errorf("profile %s: %s must be within [0, 1], got %v", p.Name, name, v)
		}
	}
	for i, w := range p.StreetWeights {
		if w < 0 {
			return fmt.Errorf("profile %s: street weight %d must not be negative", p.Name, i)
		}
	}
	return nil
}

// The five stock archetypes.
var (
	Nit = Profile{
		Name: "Nit", Weight: 0.20,
		Bluff: 0.02, BetAggression: 0.25, RaiseAggression: 0.15, CallTightness: 0.70, SemiBluff: 0.05,
		StreetWeights: [streetCount]float64{1.0, 0.9, 0.8, 0.7, 0.6},
	}
	TAG = Profile{
		Name: "TAG", Weight: 0.30,
		Bluff: 0.05, BetAggression: 0.45, RaiseAggression: 0.35, CallTightness: 0.45, SemiBluff: 0.15,
		StreetWeights: [streetCount]float64{1.0, 1.0, 0.9, 0.9, 0.8},
	}
	LAG = Profile{
		Name: "LAG", Weight: 0.30,
		Bluff: 0.08, BetAggression: 0.65, RaiseAggression: 0.55, CallTightness: 0.35, SemiBluff: 0.25,
		StreetWeights: [streetCount]float64{1.1, 1.1, 1.0, 0.95, 0.9},
	}
	Maniac = Profile{
		Name: "Maniac", Weight: 0.15,
		Bluff: 0.12, BetAggression: 0.85, RaiseAggression: 0.75, CallTightness: 0.20, SemiBluff: 0.30,
		StreetWeights: [streetCount]float64{1.2, 1.2, 1.1, 1.0, 0.95},
	}
	Balanced = Profile{
		Name: "Balanced", Weight: 0.05,
		Bluff: 0.06, BetAggression: 0.50, RaiseAggression: 0.40, CallTightness: 0.40, SemiBluff: 0.20,
		StreetWeights: [streetCount]float64{1.0, 1.0, 1.0, 1.0, 1.0},
	}
)

// ProfileTable is the weighted set of personalities bots are drawn from.
type ProfileTable []Profile

// DefaultProfiles returns the stock archetypes with their selection weights.
func DefaultProfiles() ProfileTable {
	return ProfileTable{Nit, TAG, LAG, Maniac, Balanced}
}

// Lookup returns the profile with the given name, ignoring case.
func (t ProfileTable) Lookup(name string) (Profile, bool) {
	for _, p := range t {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Profile{}, false
}

// Validate checks every profile and that the weights are usable.
func (t ProfileTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("profile table is empty")
	}
	total := 0.0
	seen := make(map[string]bool, len(t))
	for i := range t {
		if err := t[i].Validate(); err != nil {
			return err
		}
		key := strings.ToLower(t[i].Name)
		if seen[key] {
			return fmt.Errorf("duplicate profile %s", t[i].Name)
		}
		seen[key] = true
		total += t[i].Weight
	}
	if total <= 0 {
		return fmt.Errorf("profile weights sum to zero")
	}
	return nil
}

// Pick draws one profile with probability proportional to its weight. The
// last profile absorbs rounding so a draw always succeeds.
func (t ProfileTable) Pick(rng *rand.Rand) Profile {
	total := 0.0
	for _, p := range t {
		total += p.Weight
	}
	r := rng.Float64() * total
	acc := 0.0
	for _, p := range t {
		acc += p.Weight
		if r < acc {
			return p
		}
	}
	return t[len(t)-1]
}
