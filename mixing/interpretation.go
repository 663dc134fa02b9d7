// SPDX-License-Identifier: EPL-2.0

package mixing

import "fmt"

// Interpretation controls how channels are matched when counts differ.
type Interpretation int

const (
	// Speakers applies the standard layout rules where one exists.
	Speakers Interpretation = iota
	// Discrete maps channels by index only.
	Discrete
)

func (i Interpretation) String() string {
	switch i {
	case Speakers:
		return "speakers"
	case Discrete:
		return "discrete"
	}
	return fmt.Sprintf("Interpretation(%d)", int(i))
}

func (i Interpretation) Valid() bool {
	return i == Speakers || i == Discrete
}

// ParseInterpretation accepts "speakers" or "discrete".
func ParseInterpretation(s string) (Interpretation, error) {
	switch s {
	case "speakers":
		return Speakers, nil
	case "discrete":
		return Discrete, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInterpretation, s)
}
