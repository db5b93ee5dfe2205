package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/sevenstud/internal/game"
)

// HandResult is one seat's outcome in one hand.
type HandResult struct {
	Net            int         // Chips won minus chips put in
	Ante           int         // Ante of the hand, the unit results are reported in
	Seed           int64       // Table seed, for replay
	Position       int         // Seat index, 0 leads the deal
	WentToShowdown bool        // Hand was decided at showdown
	Won            bool        // Seat took at least part of the pot
	FinalPotSize   int         // Pot settled, in chips
	StreetReached  game.Street // Last street played
}

// NetAntes returns the result measured in antes.
func (r HandResult) NetAntes() float64 {
	if r.Ante <= 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Ante)
}

// PositionStats tracks results for one seat position.
type PositionStats struct {
	Hands int
	Sum   float64
	Sum2  float64
}

// Statistics accumulates hand results, in antes per hand.
type Statistics struct {
	Hands  int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Every result, for median and percentiles

	Wins            int
	ShowdownWins    int
	NonShowdownWins int
	ShowdownNet     float64 // Net from hands that reached showdown, wins and losses
	NonShowdownNet  float64 // Net from hands decided by folds
	AllNet          float64 // Total for the ledger check

	PositionResults [game.MaxSeats]PositionStats
	StreetsReached  map[game.Street]int

	MaxPotChips int
}

// Mean returns the average result in antes per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of hands the seat won outright or split.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := result.NetAntes()
	s.Hands++
	s.Sum += net
	s.Sum2 += net * net
	s.Values = append(s.Values, net)

	if result.Won {
		s.Wins++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net

	if pos := result.Position; pos >= 0 && pos < len(s.PositionResults) {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].Sum += net
		s.PositionResults[pos].Sum2 += net * net
	}

	if s.StreetsReached == nil {
		s.StreetsReached = make(map[game.Street]int)
	}
	s.StreetsReached[result.StreetReached]++

	s.MaxPotChips = max(s.MaxPotChips, result.FinalPotSize)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownNet += other.ShowdownNet
	s.NonShowdownNet += other.NonShowdownNet
	s.AllNet += other.AllNet
	for i, ps := range other.PositionResults {
		s.PositionResults[i].Hands += ps.Hands
		s.PositionResults[i].Sum += ps.Sum
		s.PositionResults[i].Sum2 += ps.Sum2
	}
	if len(other.StreetsReached) > 0 && s.StreetsReached == nil {
		s.StreetsReached = make(map[game.Street]int)
	}
	for st, n := range other.StreetsReached {
		s.StreetsReached[st] += n
	}
	s.MaxPotChips = max(s.MaxPotChips, other.MaxPotChips)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a seat position.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= len(s.PositionResults) {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.Sum / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.ShowdownWins+s.NonShowdownWins != s.Wins || s.Wins > s.Hands {
		return fmt.Errorf("wins (%d showdown + %d other) inconsistent with %d wins in %d hands",
			s.ShowdownWins, s.NonShowdownWins, s.Wins, s.Hands)
	}
	totalPositionHands := 0
	for _, ps := range s.PositionResults {
		totalPositionHands += ps.Hands
	}
	if totalPositionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)",
			totalPositionHands, s.Hands)
	}
	return nil
}
