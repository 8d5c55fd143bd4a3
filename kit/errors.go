// SPDX-License-Identifier: EPL-2.0

package kit

import "errors"

var (
	ErrNoDescriptor      = errors.New("kit has no " + DescriptorName)
	ErrInvalidDescriptor = errors.New("invalid kit descriptor")
	ErrNoKits            = errors.New("no drum kits found")
)
