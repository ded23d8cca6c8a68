// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"math/big"

	"github.com/fuelcell/generator/gen"
)

// StakeRecord is the custody record of one staked token.
type StakeRecord struct {
	Owner       gen.Address
	LastSettled uint32
}

// Custody moves tokens between owners and the custody address of the generator.
type Custody interface {
	TransferToCustody(id gen.TokenID, from gen.Address) error
	TransferFromCustody(id gen.TokenID, to gen.Address) error
	CurrentHolder(id gen.TokenID) (gen.Address, error)
}

// Minter credits reward to an address. It may decline when the generator has not
// been granted minting rights.
type Minter interface {
	Mint(to gen.Address, amount *big.Int) error
}

// TimeSource returns the number of the block operations execute in.
type TimeSource interface {
	BlockNumber() uint32
}

// TimeSourceFunc adapts a function to TimeSource.
type TimeSourceFunc func() uint32

func (f TimeSourceFunc) BlockNumber() uint32 { return f() }
