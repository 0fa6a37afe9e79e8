package geom

import "fmt"

// Direction is one of the eight compass points used to anchor labels and
// resize handles around a rect.
type Direction int

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

var directionNames = [...]string{"n", "ne", "e", "se", "s", "sw", "w", "nw"}

// Directions lists all directions clockwise from north.
func Directions() []Direction {
	return []Direction{N, NE, E, SE, S, SW, W, NW}
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses the lower-case short form ("n", "se", ...).
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidArgument, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(directionNames) {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidArgument, int(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
