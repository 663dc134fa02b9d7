// SPDX-License-Identifier: EPL-2.0

package automation

// ArithmeticSeries yields Value, Value+Step, Value+2·Step, ...
type ArithmeticSeries struct {
	Value float64
	Step  float64
}

// Next advances the series and returns the new term.
func (s *ArithmeticSeries) Next() float64 {
	s.Value += s.Step
	return s.Value
}

// GeometricSeries yields Value, Value·Ratio, Value·Ratio², ...
type GeometricSeries struct {
	Value float64
	Ratio float64
}

// Next advances the series and returns the new term.
func (s *GeometricSeries) Next() float64 {
	s.Value *= s.Ratio
	return s.Value
}

// clipToward bounds v so it never passes target in the direction of travel.
func clipToward(v, target float64, rising bool) float64 {
	if rising {
		return min(v, target)
	}
	return max(v, target)
}
