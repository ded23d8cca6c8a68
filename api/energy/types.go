// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package energy

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/fuelcell/generator/gen"
)

type AddMinterRequest struct {
	Caller gen.Address `json:"caller"`
	Minter gen.Address `json:"minter"`
}

type RemoveMinterRequest struct {
	Caller gen.Address `json:"caller"`
}

type TransferRequest struct {
	Caller gen.Address           `json:"caller"`
	To     gen.Address           `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Balance struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Supply struct {
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Minter struct {
	Minter bool `json:"minter"`
}
