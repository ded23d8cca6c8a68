// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/fuelcell/generator/builtin/solidity"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/state"
)

// Keys of governed parameters.
var (
	KeyRewardRate = gen.BytesToBytes32([]byte("reward-rate"))
)

// Params binder of `Params` contract.
type Params struct {
	values *solidity.Mapping[gen.Bytes32, *big.Int]
}

func New(addr gen.Address, state *state.State) *Params {
	sctx := solidity.NewContext(addr, state)
	return &Params{solidity.NewMapping[gen.Bytes32, *big.Int](sctx, gen.Bytes32{})}
}

// Get native way to get param. An unset param reads as zero.
func (p *Params) Get(key gen.Bytes32) (*big.Int, error) {
	v, err := p.values.Get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return new(big.Int), nil
	}
	return v, nil
}

// IsSet reports whether key has been set, zero included.
func (p *Params) IsSet(key gen.Bytes32) (bool, error) {
	return p.values.Exists(key)
}

// Set native way to set param.
func (p *Params) Set(key gen.Bytes32, value *big.Int) error {
	return p.values.Set(key, value)
}
