// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/runtime"
)

// Event is an event emitted by an executed call.
type Event struct {
	Name    string                `json:"name"`
	Owner   gen.Address           `json:"owner"`
	TokenID *gen.TokenID          `json:"tokenId,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount,omitempty"`
}

// Receipt is the response of a state changing request.
type Receipt struct {
	BlockNumber uint32   `json:"blockNumber"`
	Events      []*Event `json:"events"`
	Sealed      bool     `json:"sealed"`
	SealError   string   `json:"sealError,omitempty"` // the call took effect, sealing its block failed
}

func convertReceipt(r *runtime.Receipt) *Receipt {
	events := make([]*Event, 0, len(r.Events))
	for _, ev := range r.Events {
		e := &Event{
			Name:    ev.Name,
			Owner:   ev.Owner,
			TokenID: ev.TokenID,
		}
		if ev.Amount != nil {
			e.Amount = (*math.HexOrDecimal256)(ev.Amount)
		}
		events = append(events, e)
	}
	receipt := &Receipt{
		BlockNumber: r.BlockNumber,
		Events:      events,
		Sealed:      r.Sealed != nil,
	}
	if r.SealErr != nil {
		receipt.SealError = r.SealErr.Error()
	}
	return receipt
}

// Executor runs calls, implemented by runtime.Executor.
type Executor interface {
	Execute(caller gen.Address, call runtime.Call) *runtime.Receipt
}

// Execute runs call on behalf of caller and responds with its receipt. Rejections
// are mapped by RevertError.
func Execute(w http.ResponseWriter, exec Executor, caller gen.Address, call runtime.Call) error {
	r := exec.Execute(caller, call)
	if r.Err != nil {
		return RevertError(r.Err)
	}
	return WriteJSON(w, convertReceipt(r))
}
