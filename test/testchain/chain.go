// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"fmt"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/genesis"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/logdb"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/runtime"
	"github.com/fuelcell/generator/state"
)

// Chain is an in-memory generator node: a leveldb store, a log db, the
// repository set up from genesis and an executor over them.
type Chain struct {
	store   kv.StoreCloser
	genesis *genesis.Genesis
	repo    *chain.Repository
	stater  *state.Stater
	logDB   *logdb.LogDB
	exec    *runtime.Executor
}

// New creates a Chain from the given genesis.
func New(gene *genesis.Genesis, onDemand bool) (*Chain, error) {
	store, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	repo, err := gene.Setup(store)
	if err != nil {
		return nil, fmt.Errorf("unable to set up genesis: %w", err)
	}

	logDB, err := logdb.NewMem()
	if err != nil {
		return nil, err
	}

	stater := state.NewStater(store)
	exec, err := runtime.New(repo, stater, runtime.Options{LogDB: logDB, OnDemand: onDemand})
	if err != nil {
		return nil, err
	}
	return &Chain{
		store:   store,
		genesis: gene,
		repo:    repo,
		stater:  stater,
		logDB:   logDB,
		exec:    exec,
	}, nil
}

// NewDefault creates a devnet Chain sealing on demand.
func NewDefault() (*Chain, error) {
	return New(genesis.NewDevnet(), true)
}

func (c *Chain) Genesis() *genesis.Genesis   { return c.genesis }
func (c *Chain) Repo() *chain.Repository     { return c.repo }
func (c *Chain) Stater() *state.Stater       { return c.stater }
func (c *Chain) LogDB() *logdb.LogDB         { return c.logDB }
func (c *Chain) Executor() *runtime.Executor { return c.exec }
func (c *Chain) Database() kv.Store          { return c.store }

// Contracts runs fn against the pending state, discarding its writes.
func (c *Chain) Contracts(fn func(*builtin.Contracts) error) error {
	return c.exec.View(fn)
}

// MintBlock seals the pending block.
func (c *Chain) MintBlock() error {
	_, err := c.exec.Seal()
	return err
}

// Close releases the databases.
func (c *Chain) Close() error {
	if err := c.logDB.Close(); err != nil {
		return err
	}
	return c.store.Close()
}
