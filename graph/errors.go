// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"errors"

	"github.com/ik5/audgraph/mixing"
)

var (
	ErrInvalidSampleRate   = errors.New("invalid sample rate")
	ErrInvalidBlockSize    = errors.New("invalid block size")
	ErrInvalidChannelCount = errors.New("invalid channel count")
	ErrInvalidCountMode    = errors.New("invalid channel count mode")
	ErrOutputOutOfBounds   = errors.New("output out of bounds")
	ErrInputOutOfBounds    = errors.New("input out of bounds")
	ErrForeignNode         = errors.New("node belongs to another graph")
	ErrKilled              = errors.New("killed")
	ErrNonPositiveValue    = errors.New("exponential ramp needs values > 0")
	ErrNotImplemented      = errors.New("not implemented")
	ErrInvalidTime         = errors.New("invalid time")
	ErrInvalidTimeConstant = errors.New("time constant must not be negative")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrEmptyCurve          = errors.New("value curve is empty")
	ErrNoBuffer            = errors.New("no buffer to play")
	ErrSampleRateMismatch  = errors.New("sample rate does not match the graph")
)

// ErrInvalidInterpretation is the mixing error, re-exported for callers that
// only import graph.
var ErrInvalidInterpretation = mixing.ErrInvalidInterpretation
