// SPDX-License-Identifier: EPL-2.0

// Package automation holds the numeric core of parameter automation.
//
// Each curve shape is a Generator that writes one block of control values per
// call and keeps its position in an explicit series (ArithmeticSeries for
// linear ramps, GeometricSeries for exponential ramps and decays). Generators
// are built either for ARate, where every sample is recomputed, or KRate,
// where one value is held across the whole block.
//
// Ramps clip toward their target so rounding never carries a value past it.
package automation
