// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"time"

	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/co"
	"github.com/fuelcell/generator/log"
)

var logger = log.WithContext("pkg", "solo")

type Options struct {
	OnDemand      bool
	BlockInterval uint64 // seconds
}

// Sealer seals the pending block.
type Sealer interface {
	Seal() (*chain.Header, error)
}

// Solo seals blocks on a fixed interval, aligned to the wall clock.
type Solo struct {
	sealer  Sealer
	options Options
	tick    time.Duration
	now     func() time.Time
}

// New returns Solo instance
func New(sealer Sealer, options Options) *Solo {
	return &Solo{
		sealer:  sealer,
		options: options,
		tick:    time.Second,
		now:     time.Now,
	}
}

// Run seals blocks until ctx is done. In on-demand mode blocks are sealed by the
// executor itself and Run only waits.
func (s *Solo) Run(ctx context.Context) error {
	goes := &co.Goes{}

	defer func() {
		<-ctx.Done()
		goes.Wait()
	}()

	if s.options.OnDemand {
		logger.Info("sealing blocks on demand")
		return nil
	}

	logger.Info("prepared to seal blocks", "interval", s.options.BlockInterval)
	goes.GoCtx(ctx, s.loop)
	return nil
}

func (s *Solo) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval sealing service......")
			return
		case <-ticker.C:
			if left := uint64(s.now().Unix()) % s.options.BlockInterval; left != 0 {
				continue
			}
			h, err := s.sealer.Seal()
			if err != nil {
				logger.Error("failed to seal block", "err", err)
				continue
			}
			logger.Debug("sealed block", "number", h.Number, "calls", h.Calls, "events", h.Events)
		}
	}
}
