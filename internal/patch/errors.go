// SPDX-License-Identifier: EPL-2.0

package patch

import "errors"

var (
	ErrDuplicateID     = errors.New("duplicate node id")
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrUnknownNode     = errors.New("unknown node")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrUnknownOp       = errors.New("unknown automation op")
	ErrNoSource        = errors.New("buffer source needs a file or a tone")
	ErrBadDuration     = errors.New("duration must be positive")
)
