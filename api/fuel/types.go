// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fuel

import "github.com/fuelcell/generator/gen"

type MintRequest struct {
	Caller gen.Address `json:"caller"`
	To     gen.Address `json:"to"`
}

type ApproveRequest struct {
	Caller  gen.Address `json:"caller"`
	To      gen.Address `json:"to"`
	TokenID gen.TokenID `json:"tokenId"`
}

type ApproveAllRequest struct {
	Caller   gen.Address `json:"caller"`
	Operator gen.Address `json:"operator"`
	Approved bool        `json:"approved"`
}

type TransferRequest struct {
	Caller  gen.Address `json:"caller"`
	From    gen.Address `json:"from"`
	To      gen.Address `json:"to"`
	TokenID gen.TokenID `json:"tokenId"`
}

type Owner struct {
	Owner gen.Address `json:"owner"`
}

type Approved struct {
	Approved gen.Address `json:"approved"`
}

type Balance struct {
	Balance uint64 `json:"balance"`
}
