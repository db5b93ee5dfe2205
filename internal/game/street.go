package game

import "fmt"

// Street is one betting round of a stud hand.
type Street int

const (
	ThirdStreet Street = iota
	FourthStreet
	FifthStreet
	SixthStreet
	SeventhStreet
	// Showdown marks a finished hand.
	Showdown
)

// streetCount is the number of betting streets.
const streetCount = 5

var streetNames = [...]string{"third", "fourth", "fifth", "sixth", "seventh", "showdown"}

func (s Street) String() string {
	if s < 0 || int(s) >= len(streetNames) {
		return fmt.Sprintf("Street(%d)", int(s))
	}
	return streetNames[s]
}

// Multiplier is the bet unit multiplier: 1 on third and fourth street, 2
// afterwards.
func (s Street) Multiplier() int {
	if s >= FifthStreet {
		return 2
	}
	return 1
}

// Deals reports whether a card is dealt at the start of the street.
// Third street's cards come from the initial deal.
func (s Street) Deals() bool {
	return s >= FourthStreet && s <= SeventhStreet
}

// FaceUp reports whether the card dealt on this street is exposed.
func (s Street) FaceUp() bool {
	return s >= FourthStreet && s <= SixthStreet
}

// MarshalText encodes the street by name.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name.
func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}
