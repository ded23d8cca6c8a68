// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/logdb"
)

// FilteredEvent is a stored contract event.
type FilteredEvent struct {
	BlockNumber uint32                `json:"blockNumber"`
	Index       uint32                `json:"index"`
	Name        string                `json:"name"`
	Owner       gen.Address           `json:"owner"`
	TokenID     *gen.TokenID          `json:"tokenId,omitempty"`
	Amount      *math.HexOrDecimal256 `json:"amount,omitempty"`
}

func convertEvent(e *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		BlockNumber: e.BlockNumber,
		Index:       e.Index,
		Name:        e.Name,
		Owner:       e.Owner,
		TokenID:     e.TokenID,
	}
	if e.Amount != nil {
		fe.Amount = (*math.HexOrDecimal256)(e.Amount)
	}
	return fe
}
