// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/fuelcell/generator/gen"
)

// Event is a contract event stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32
	Name        string
	Owner       gen.Address
	TokenID     *gen.TokenID // nil for events not bound to a single token
	Amount      *big.Int     // nil when the event carries no amount
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range. To below From means open ended.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter selects events. Nil fields match everything.
type EventFilter struct {
	Owner   *gen.Address
	TokenID *gen.TokenID
	Name    string
	Range   *Range
	Options *Options
	Order   Order //default asc
}
