// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/fuelcell/generator/chain"
)

// Block is the json form of a block header.
type Block struct {
	Number      uint32 `json:"number"`
	ID          string `json:"id"`
	ParentID    string `json:"parentID"`
	Timestamp   uint64 `json:"timestamp"`
	StateDigest string `json:"stateDigest"`
	Calls       uint32 `json:"calls"`
	Events      uint32 `json:"events"`
}

func convertBlock(h *chain.Header) *Block {
	return &Block{
		Number:      h.Number,
		ID:          h.ID().String(),
		ParentID:    h.ParentID.String(),
		Timestamp:   h.Timestamp,
		StateDigest: h.StateDigest.String(),
		Calls:       h.Calls,
		Events:      h.Events,
	}
}
