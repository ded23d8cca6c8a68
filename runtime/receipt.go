// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/gen"
)

// Event names.
const (
	EventStaked         = "Staked"
	EventUnstaked       = "Unstaked"
	EventClaimed        = "Claimed"
	EventClaimedAll     = "ClaimedAll"
	EventFuelMinted     = "FuelMinted"
	EventApproval       = "Approval"
	EventApprovalForAll = "ApprovalForAll"
	EventFuelTransfer   = "FuelTransfer"
	EventMinterAdded    = "MinterAdded"
	EventMinterRemoved  = "MinterRemoved"
	EventEnergyTransfer = "EnergyTransfer"
)

// Event is emitted by a successful call.
type Event struct {
	Name    string
	Owner   gen.Address
	TokenID *gen.TokenID
	Amount  *big.Int
}

func newEvent(name string, owner gen.Address, id *gen.TokenID, amount *big.Int) *Event {
	ev := &Event{Name: name, Owner: owner, Amount: amount}
	if id != nil {
		v := *id
		ev.TokenID = &v
	}
	return ev
}

// Receipt is the outcome of one executed call.
type Receipt struct {
	Call        string
	BlockNumber uint32 // block the call executed in
	Events      []*Event
	Reverted    bool          // rejected by a contract, no state change kept
	Err         error         // the rejection, or an infrastructure failure
	Sealed      *chain.Header // set when the block was sealed right after the call
	SealErr     error         // failure of that sealing, the call itself stands
}

func newReceipt(call string, blockNum uint32, events []*Event, err error) *Receipt {
	return &Receipt{
		Call:        call,
		BlockNumber: blockNum,
		Events:      events,
		Reverted:    reverts.IsRevertErr(err),
		Err:         err,
	}
}
