// Package game implements fixed-limit seven-card stud for a single table.
//
// The main types are State, the plain-data record of one hand, and Engine,
// which owns the randomness and configuration used to drive it. An Engine
// mutates a State only through Start and the seat actions; bots seated at
// the table act automatically after every accepted call until the turn
// reaches a human seat or the hand ends.
//
// # Basic Usage
//
//	eng := game.NewEngine(game.WithRNG(randutil.New(42)))
//	s := game.NewState()
//	if err := eng.Start(s, []string{"alice", "bob_AI"}, 10); err != nil {
//	    return err
//	}
//	// alice holds the turn if her up card leads
//	if err := eng.Call(s, "alice"); err != nil {
//	    // errors.Is(err, game.ErrIllegalAction)
//	}
//	if !s.InProgress {
//	    fmt.Println(s.Winners, s.Payouts)
//	}
//
// # Streets
//
// A hand runs third through seventh street. Third street deals two concealed
// and one exposed card to every seat; fourth to sixth deal one exposed card;
// seventh deals one concealed card. The seat with the best exposed showing
// leads each street. Bets are one fixed unit, max(10, ante) on third and
// fourth street and double that from fifth street on, and at most three
// increases of the standing bet are allowed per street.
//
// # Determinism
//
// Every random choice (the deck, bot profiles, bot decisions and hand ids)
// flows from the *rand.Rand given to WithRNG, and the deck can be replaced
// with WithDeckFactory, so a seeded engine replays a hand exactly.
//
// An Engine and the State it drives are not safe for concurrent use; callers
// serialize access per table.
package game
