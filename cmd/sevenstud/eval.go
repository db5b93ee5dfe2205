package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/sevenstud/internal/display"
	"github.com/lox/sevenstud/poker"
)

// EvalCmd scores hands of five to seven cards and names the best.
type EvalCmd struct {
	Hands []string `arg:"" required:"" help:"Hands of 5-7 cards, each quoted, e.g. 'As Ad Kh Kc Qs Jd 5h'"`
}

func (c *EvalCmd) Run(_ *Globals) error {
	return evaluate(os.Stdout, display.New(os.Stdout), c.Hands)
}

type scoredHand struct {
	cards []poker.Card
	best  []poker.Card
	score poker.HandScore
}

func evaluate(w io.Writer, r *display.Renderer, hands []string) error {
	seen := make(map[poker.Card]int)
	scored := make([]scoredHand, 0, len(hands))
	for i, raw := range hands {
		cards, err := poker.ParseCards(raw)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		for _, c := range cards {
			if prev, dup := seen[c]; dup {
				return fmt.Errorf("hand %d: %s already used by hand %d", i+1, c, prev)
			}
			seen[c] = i + 1
		}
		score, best, err := poker.BestOfSeven(cards)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		scored = append(scored, scoredHand{cards: cards, best: best, score: score})
	}

	var winners []int
	for i, h := range scored {
		desc, err := poker.Describe(h.best)
		if err != nil {
			desc = h.score.String()
		}
		fmt.Fprintf(w, "%d. %s  best %s  %s\n", i+1, r.Cards(h.cards), r.Cards(h.best), desc)

		if len(winners) == 0 {
			winners = []int{i}
			continue
		}
		switch cmp := h.score.Compare(scored[winners[0]].score); {
		case cmp > 0:
			winners = []int{i}
		case cmp == 0:
			winners = append(winners, i)
		}
	}

	if len(scored) > 1 {
		names := make([]string, len(winners))
		for i, idx := range winners {
			names[i] = fmt.Sprint(idx + 1)
		}
		label := "Winner"
		if len(winners) > 1 {
			label = "Split"
		}
		fmt.Fprintln(w, r.Styles().Winner.Render(fmt.Sprintf("%s: hand %s", label, strings.Join(names, ", "))))
	}
	return nil
}
