// SPDX-License-Identifier: EPL-2.0

package sink

import "errors"

var (
	ErrClosed        = errors.New("sink is closed")
	ErrInvalidLayout = errors.New("block does not match sink layout")
)
