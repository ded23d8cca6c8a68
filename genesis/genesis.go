// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/state"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis to build genesis block.
type Genesis struct {
	builder *Builder
	id      gen.Bytes32
	name    string
}

// Build build the genesis block.
func (g *Genesis) Build() (*chain.Header, *state.Stage, error) {
	return g.builder.Build()
}

// ID returns genesis block ID.
func (g *Genesis) ID() gen.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Setup opens the chain on store. A fresh store receives the genesis block and
// its state in one batch.
func (g *Genesis) Setup(store kv.Store) (*chain.Repository, error) {
	header, stage, err := g.Build()
	if err != nil {
		return nil, err
	}
	repo, err := chain.NewRepository(store, header, func(w kv.Putter) error {
		logger.Info("writing genesis state", "name", g.name, "slots", stage.Len())
		return state.CommitTo(w, stage)
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}
