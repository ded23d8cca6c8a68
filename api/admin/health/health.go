// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"time"

	"github.com/fuelcell/generator/chain"
)

type BestBlock struct {
	Number    uint32    `json:"number"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

type Status struct {
	Healthy   bool       `json:"healthy"`
	OnDemand  bool       `json:"onDemand"`
	BestBlock *BestBlock `json:"bestBlock"`
}

const delayBuffer = 5 * time.Second

// Health reports whether blocks keep being sealed.
type Health struct {
	repo          *chain.Repository
	blockInterval time.Duration
	onDemand      bool
	now           func() time.Time
}

func New(repo *chain.Repository, blockInterval time.Duration, onDemand bool) *Health {
	return &Health{
		repo:          repo,
		blockInterval: blockInterval,
		onDemand:      onDemand,
		now:           time.Now,
	}
}

// Status is healthy when the best block is at most one interval plus a buffer old.
// A node sealing on demand is always healthy.
func (h *Health) Status() *Status {
	best := h.repo.BestBlock()
	ts := time.Unix(int64(best.Timestamp), 0)

	return &Status{
		Healthy:  h.onDemand || h.now().Sub(ts) <= h.blockInterval+delayBuffer,
		OnDemand: h.onDemand,
		BestBlock: &BestBlock{
			Number:    best.Number,
			ID:        best.ID().String(),
			Timestamp: ts,
		},
	}
}
