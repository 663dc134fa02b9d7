// SPDX-License-Identifier: EPL-2.0

package audgraph

import "errors"

var (
	ErrRunning       = errors.New("context is already rendering")
	ErrClosed        = errors.New("context is closed")
	ErrInvalidFrames = errors.New("number of frames must be positive")
	ErrInvalidTime   = errors.New("time must be a non-negative number")
)
