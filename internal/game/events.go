package game

// EventKind classifies an entry in a hand's event log.
type EventKind string

const (
	EventHandStart   EventKind = "hand_start"
	EventAnte        EventKind = "ante"
	EventStreet      EventKind = "street"
	EventAction      EventKind = "action"
	EventShowdown    EventKind = "showdown"
	EventUncontested EventKind = "uncontested"
)

// Event is one entry in the append-only hand log.
type Event struct {
	Seq    int       `json:"seq"`
	Kind   EventKind `json:"kind"`
	Street Street    `json:"street"`
	Seat   string    `json:"seat,omitempty"`
	Action Action    `json:"action,omitempty"`
	Amount int       `json:"amount,omitempty"`
	Pot    int       `json:"pot"`
}

func (s *State) logEvent(kind EventKind, seat string, a Action, amount int) {
	s.Log = append(s.Log, Event{
		Seq:    len(s.Log) + 1,
		Kind:   kind,
		Street: s.Stage,
		Seat:   seat,
		Action: a,
		Amount: amount,
		Pot:    s.Pot,
	})
}

// EventsSince returns the log entries with a sequence number above seq.
func (s *State) EventsSince(seq int) []Event {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(s.Log) {
		return nil
	}
	return append([]Event(nil), s.Log[seq:]...)
}
