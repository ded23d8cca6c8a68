// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/fuelcell/generator/builtin/energy"
	"github.com/fuelcell/generator/builtin/fuel"
	"github.com/fuelcell/generator/builtin/generator"
	"github.com/fuelcell/generator/builtin/params"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/state"
)

// Builtin contracts binding.
var (
	Params    = &paramsContract{newContract("Params")}
	Fuel      = &fuelContract{newContract("Fuel")}
	Energy    = &energyContract{newContract("Energy")}
	Generator = &generatorContract{newContract("Generator")}
)

// IsBuiltin reports whether addr belongs to one of the builtin contracts.
func IsBuiltin(addr gen.Address) bool {
	switch addr {
	case Params.Address, Fuel.Address, Energy.Address, Generator.Address:
		return true
	}
	return false
}

type (
	paramsContract    struct{ *contract }
	fuelContract      struct{ *contract }
	energyContract    struct{ *contract }
	generatorContract struct{ *contract }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (f *fuelContract) WithState(state *state.State) *fuel.Fuel {
	return fuel.New(f.Address, state)
}

func (e *energyContract) WithState(state *state.State) *energy.Energy {
	return energy.New(e.Address, state)
}

// WithState binds the generator to the fuel custody and energy minting of the same state.
// The reward rate is read from params, falling back to the default rate when unset.
func (g *generatorContract) WithState(state *state.State, clock generator.TimeSource) (*generator.Generator, error) {
	rate, err := RewardRate(state)
	if err != nil {
		return nil, err
	}
	return generator.New(
		g.Address,
		state,
		Fuel.WithState(state).Custody(g.Address),
		Energy.WithState(state).Minter(g.Address),
		clock,
		rate,
	), nil
}

// RewardRate returns the reward rate in effect for the given state.
func RewardRate(state *state.State) (*big.Int, error) {
	p := Params.WithState(state)
	set, err := p.IsSet(params.KeyRewardRate)
	if err != nil {
		return nil, err
	}
	if !set {
		return new(big.Int).SetUint64(gen.DefaultRewardRate), nil
	}
	return p.Get(params.KeyRewardRate)
}

// Contracts is the set of builtin contracts bound to one state.
type Contracts struct {
	Params    *params.Params
	Fuel      *fuel.Fuel
	Energy    *energy.Energy
	Generator *generator.Generator
}

// New binds all builtin contracts to state.
func New(state *state.State, clock generator.TimeSource) (*Contracts, error) {
	g, err := Generator.WithState(state, clock)
	if err != nil {
		return nil, err
	}
	return &Contracts{
		Params:    Params.WithState(state),
		Fuel:      Fuel.WithState(state),
		Energy:    Energy.WithState(state),
		Generator: g,
	}, nil
}
