// SPDX-License-Identifier: EPL-2.0

package block

import "errors"

var (
	ErrInvalidSampleRate  = errors.New("invalid sample rate")
	ErrInvalidLength      = errors.New("invalid length")
	ErrInvalidChannels    = errors.New("invalid number of channels")
	ErrRaggedChannels     = errors.New("channels have different lengths")
	ErrSampleRateMismatch = errors.New("sample rate does not match")
	ErrChannelMismatch    = errors.New("number of channels does not match")
	ErrOutOfRange         = errors.New("block does not fit at offset")
)
