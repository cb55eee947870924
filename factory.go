// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lpvm

import (
	"github.com/luxfi/log"
)

// Factory creates new Contract instances.
type Factory interface {
	// New creates a new contract instance with the given logger.
	New(log.Logger) (Contract, error)
}
