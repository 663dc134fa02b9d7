// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat     = errors.New("unknown audio format")
	ErrPartialFrame      = errors.New("sample count must be multiple of channels")
	ErrInvalidChannels   = errors.New("invalid number of channels")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)
