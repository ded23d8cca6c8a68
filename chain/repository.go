// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain persists sealed block headers and serves the current block height.
package chain

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/co"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/log"
)

const (
	hdrStoreName  = kv.Bucket("chain.hdr.")   // for block headers
	propStoreName = kv.Bucket("chain.props.") // for property-named blocks such as best block
)

var (
	logger = log.WithContext("pkg", "chain")

	bestBlockKey = []byte("best-block-number")
)

// Repository stores block headers.
//
// It's thread-safe.
type Repository struct {
	store     kv.Store
	hdrStore  kv.Store
	propStore kv.Store

	genesis *Header
	best    atomic.Pointer[Header]
	tick    co.Signal
}

// NewRepository create an instance of repository. The genesis header is saved on
// first use, along with whatever setup writes, and must match the stored one afterwards.
func NewRepository(store kv.Store, genesis *Header, setup func(w kv.Putter) error) (*Repository, error) {
	if genesis.Number != 0 {
		return nil, errors.New("genesis number != 0")
	}

	repo := &Repository{
		store:     store,
		hdrStore:  hdrStoreName.NewStore(store),
		propStore: propStoreName.NewStore(store),
		genesis:   genesis,
	}

	val, err := repo.propStore.Get(bestBlockKey)
	if err != nil {
		if !repo.propStore.IsNotFound(err) {
			return nil, err
		}
		if err := repo.write(genesis, setup); err != nil {
			return nil, errors.Wrap(err, "save genesis")
		}
		repo.best.Store(genesis)
		return repo, nil
	}

	existing, err := repo.GetHeader(0)
	if err != nil {
		return nil, errors.Wrap(err, "get existing genesis")
	}
	if existing.ID() != genesis.ID() {
		return nil, errors.New("genesis mismatch")
	}

	var bestNum uint32
	if err := rlp.DecodeBytes(val, &bestNum); err != nil {
		return nil, errors.Wrap(err, "decode best block number")
	}
	best, err := repo.GetHeader(bestNum)
	if err != nil {
		return nil, errors.Wrap(err, "get best block")
	}
	repo.best.Store(best)
	logger.Debug("loaded chain", "best", best.Number)
	return repo, nil
}

// GenesisBlock returns genesis block header.
func (r *Repository) GenesisBlock() *Header {
	return r.genesis
}

// BestBlock returns the latest sealed block header.
func (r *Repository) BestBlock() *Header {
	return r.best.Load()
}

// BestNumber returns the number of the latest sealed block.
func (r *Repository) BestNumber() uint32 {
	return r.BestBlock().Number
}

// GetHeader returns the header of the sealed block num.
func (r *Repository) GetHeader(num uint32) (*Header, error) {
	data, err := r.hdrStore.Get(numberKey(num))
	if err != nil {
		return nil, err
	}
	var h Header
	if err := rlp.DecodeBytes(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// IsNotFound returns if an error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return r.hdrStore.IsNotFound(err)
}

// AddBlock appends h on top of the best block. extra writes other data into the
// same batch, keyed on the root store.
func (r *Repository) AddBlock(h *Header, extra func(w kv.Putter) error) error {
	best := r.BestBlock()
	if h.Number != best.Number+1 {
		return errors.Errorf("block number %d does not follow best %d", h.Number, best.Number)
	}
	if h.ParentID != best.ID() {
		return errors.New("parent mismatch")
	}

	if err := r.write(h, extra); err != nil {
		return err
	}
	r.best.Store(h)
	r.tick.Broadcast()
	return nil
}

func (r *Repository) write(h *Header, extra func(w kv.Putter) error) error {
	batch := r.store.NewBatch()
	if extra != nil {
		if err := extra(batch); err != nil {
			return err
		}
	}

	data, err := rlp.EncodeToBytes(h)
	if err != nil {
		return err
	}
	if err := hdrStoreName.NewPutter(batch).Put(numberKey(h.Number), data); err != nil {
		return err
	}
	num, err := rlp.EncodeToBytes(h.Number)
	if err != nil {
		return err
	}
	if err := propStoreName.NewPutter(batch).Put(bestBlockKey, num); err != nil {
		return err
	}
	return batch.Write()
}

// NewTicker create a signal Waiter to receive event that the best block changed.
func (r *Repository) NewTicker() co.Waiter {
	return r.tick.NewWaiter()
}
