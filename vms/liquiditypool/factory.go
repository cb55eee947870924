// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package liquiditypool

import (
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/vms/liquiditypool/config"
	"github.com/luxfi/lpvm/vms/liquiditypool/metrics"
)

var _ lpvm.Factory = (*Factory)(nil)

// Factory creates liquidity pool contracts.
type Factory struct {
	Config  config.Config
	Metrics metrics.Metrics
}

func (f *Factory) New(logger log.Logger) (lpvm.Contract, error) {
	if err := f.Config.Verify(); err != nil {
		return nil, err
	}
	m := f.Metrics
	if m == nil {
		m = metrics.NewNoOp()
	}
	return New(f.Config, logger, m), nil
}
