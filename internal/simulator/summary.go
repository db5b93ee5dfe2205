package simulator

import (
	"fmt"
	"io"

	"github.com/lox/sevenstud/internal/game"
)

// WriteSummary prints a report of r to w.
func WriteSummary(w io.Writer, r *Result) {
	fmt.Fprintf(w, "\n=== SIMULATION (seed %d) ===\n", r.Seed)
	fmt.Fprintf(w, "Hands played: %d\n", r.Hands)
	if r.Hands > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%), uncontested: %d (%.1f%%)\n",
			r.Showdowns, pct(r.Showdowns, r.Hands), r.Uncontested, pct(r.Uncontested, r.Hands))
		fmt.Fprintf(w, "Average pot: %.1f chips\n", float64(r.Chips)/float64(r.Hands))
	}

	fmt.Fprintf(w, "\n=== PROFILES (antes/hand) ===\n")
	fmt.Fprintf(w, "%-10s %7s %7s %8s %18s %6s\n", "profile", "seats", "win%", "mean", "95% CI", "sd")
	for _, name := range r.ProfileNames() {
		st := r.Profiles[name]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%-10s %7d %6.1f%% %8.3f [%7.3f, %7.3f] %6.2f\n",
			name, st.Hands, st.WinRate()*100, st.Mean(), low, high, st.StdDev())
	}

	fmt.Fprintf(w, "\n=== STREETS REACHED ===\n")
	counts := make(map[game.Street]int)
	for _, st := range r.Profiles {
		for street, n := range st.StreetsReached {
			counts[street] += n
		}
	}
	seats := 0
	for _, n := range counts {
		seats += n
	}
	for street := game.ThirdStreet; street <= game.Showdown; street++ {
		if n := counts[street]; n > 0 {
			// Each hand is counted once per seat.
			fmt.Fprintf(w, "%-9s %6.1f%%\n", street, pct(n, seats))
		}
	}
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}

// ProfileReport is one personality's line in a Report.
type ProfileReport struct {
	Profile         string  `json:"profile"`
	Seats           int     `json:"seats"`
	WinRate         float64 `json:"win_rate"`
	Mean            float64 `json:"mean_antes"`
	StdDev          float64 `json:"std_dev"`
	CILow           float64 `json:"ci95_low"`
	CIHigh          float64 `json:"ci95_high"`
	Median          float64 `json:"median_antes"`
	ShowdownWins    int     `json:"showdown_wins"`
	NonShowdownWins int     `json:"non_showdown_wins"`
}

// Report is the machine-readable form of a Result.
type Report struct {
	Seed        int64           `json:"seed"`
	Hands       int             `json:"hands"`
	Showdowns   int             `json:"showdowns"`
	Uncontested int             `json:"uncontested"`
	Chips       int             `json:"chips"`
	Profiles    []ProfileReport `json:"profiles"`
}

// Report summarizes r, profiles sorted by name.
func (r *Result) Report() Report {
	rep := Report{
		Seed:        r.Seed,
		Hands:       r.Hands,
		Showdowns:   r.Showdowns,
		Uncontested: r.Uncontested,
		Chips:       r.Chips,
	}
	for _, name := range r.ProfileNames() {
		st := r.Profiles[name]
		low, high := st.ConfidenceInterval95()
		rep.Profiles = append(rep.Profiles, ProfileReport{
			Profile:         name,
			Seats:           st.Hands,
			WinRate:         st.WinRate(),
			Mean:            st.Mean(),
			StdDev:          st.StdDev(),
			CILow:           low,
			CIHigh:          high,
			Median:          st.Median(),
			ShowdownWins:    st.ShowdownWins,
			NonShowdownWins: st.NonShowdownWins,
		})
	}
	return rep
}
