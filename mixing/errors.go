// SPDX-License-Identifier: EPL-2.0

package mixing

import "errors"

var (
	ErrInvalidInterpretation = errors.New("invalid channel interpretation")
)
