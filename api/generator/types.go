// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/fuelcell/generator/gen"
)

// StakeRequest is the body of stake, unstake and claim.
type StakeRequest struct {
	Caller  gen.Address `json:"caller"`
	TokenID gen.TokenID `json:"tokenId"`
}

// ClaimAllRequest is the body of claim-all.
type ClaimAllRequest struct {
	Caller gen.Address `json:"caller"`
}

type Summary struct {
	Address     gen.Address           `json:"address"`
	RewardRate  *math.HexOrDecimal256 `json:"rewardRate"`
	TotalStaked uint64                `json:"totalStaked"`
}

type Staker struct {
	Staked bool         `json:"staked"`
	Staker *gen.Address `json:"staker"`
}

type Held struct {
	Held bool `json:"held"`
}

// Owner sums up the stake of one owner.
type Owner struct {
	Total   uint64                `json:"total"`
	Tokens  []gen.TokenID         `json:"tokens"`
	Pending *math.HexOrDecimal256 `json:"pending"`
}

type Pending struct {
	Pending *math.HexOrDecimal256 `json:"pending"`
}
