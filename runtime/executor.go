// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes calls against the builtin contracts, one at a time, and
// seals their state changes into blocks.
package runtime

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/builtin/generator"
	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/logdb"
	"github.com/fuelcell/generator/state"
)

var logger = log.WithContext("pkg", "runtime")

// Options of the executor.
type Options struct {
	LogDB    *logdb.LogDB // optional, receives the events of sealed blocks
	OnDemand bool         // seal a block after every successful call
}

// Executor serializes all calls. Calls execute in the pending block, on top of
// the best block, until it is sealed.
type Executor struct {
	mu      sync.Mutex
	repo    *chain.Repository
	stater  *state.Stater
	opts    Options
	now     func() time.Time
	pending *pendingBlock
}

type pendingBlock struct {
	number    uint32
	state     *state.State
	contracts *builtin.Contracts
	calls     uint32
	events    []*Event
}

// New create an executor over the repository and the state store it was set up with.
func New(repo *chain.Repository, stater *state.Stater, opts Options) (*Executor, error) {
	e := &Executor{
		repo:   repo,
		stater: stater,
		opts:   opts,
		now:    time.Now,
	}
	if err := e.resetPending(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Executor) resetPending() error {
	p, err := e.newPending(e.repo.BestNumber() + 1)
	if err != nil {
		return err
	}
	e.pending = p
	return nil
}

// newPending opens block number on top of the committed state. State is read
// lazily, so it may be opened before its parent is committed.
func (e *Executor) newPending(number uint32) (*pendingBlock, error) {
	st := e.stater.NewState()
	contracts, err := builtin.New(st, generator.TimeSourceFunc(func() uint32 { return number }))
	if err != nil {
		return nil, errors.Wrap(err, "bind builtin contracts")
	}
	return &pendingBlock{
		number:    number,
		state:     st,
		contracts: contracts,
	}, nil
}

// OnDemand returns whether every successful call is sealed into its own block.
func (e *Executor) OnDemand() bool {
	return e.opts.OnDemand
}

// PendingNumber returns the number of the block calls currently execute in.
func (e *Executor) PendingNumber() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.number
}

// Execute runs call on behalf of caller. A failed call leaves no trace in state.
// Builtin contracts act only from within other calls and are rejected as callers.
func (e *Executor) Execute(caller gen.Address, call Call) *Receipt {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	p := e.pending
	logger.Debug("executing call", "call", call.Name(), "caller", caller, "block", p.number)

	var (
		events []*Event
		err    error
	)
	if builtin.IsBuiltin(caller) {
		err = reverts.NewAuthorizationError("caller %v is a builtin contract", caller)
	} else {
		checkpoint := p.state.NewCheckpoint()
		if events, err = call.execute(p.contracts, caller); err != nil {
			p.state.RevertTo(checkpoint)
			events = nil
		}
	}
	observeCall(call.Name(), err, time.Since(start))

	receipt := newReceipt(call.Name(), p.number, events, err)
	p.calls++
	if err != nil {
		logger.Info("call failed", "call", call.Name(), "caller", caller, "reverted", receipt.Reverted, "err", err)
		return receipt
	}
	p.events = append(p.events, events...)

	if e.opts.OnDemand {
		// the call took effect either way, a sealing failure is reported on its own
		receipt.Sealed, receipt.SealErr = e.seal()
		if receipt.SealErr != nil {
			logger.Warn("failed to seal block", "number", p.number, "err", receipt.SealErr)
		}
	}
	return receipt
}

// View runs fn against the pending state. Whatever fn writes is discarded.
func (e *Executor) View(fn func(c *builtin.Contracts) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	checkpoint := e.pending.state.NewCheckpoint()
	defer e.pending.state.RevertTo(checkpoint)
	return fn(e.pending.contracts)
}

// Seal commits the pending block and opens the next one. When only the event logs
// fail to be written the block is sealed anyway, and both header and error are returned.
func (e *Executor) Seal() (*chain.Header, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seal()
}

func (e *Executor) seal() (*chain.Header, error) {
	p := e.pending
	best := e.repo.BestBlock()
	stage := p.state.Stage()

	timestamp := uint64(e.now().Unix())
	if timestamp <= best.Timestamp {
		timestamp = best.Timestamp + 1
	}
	header := &chain.Header{
		Number:      p.number,
		Timestamp:   timestamp,
		ParentID:    best.ID(),
		StateDigest: stage.Digest(best.StateDigest),
		Calls:       p.calls,
		Events:      uint32(len(p.events)),
	}

	next, err := e.newPending(p.number + 1)
	if err != nil {
		return nil, err
	}
	if err := e.repo.AddBlock(header, func(w kv.Putter) error {
		return state.CommitTo(w, stage)
	}); err != nil {
		return nil, errors.Wrap(err, "add block")
	}
	e.pending = next
	metricSealedBlocks().Add(1)

	if err := e.writeLogs(header.Number, p.events); err != nil {
		return header, err
	}

	logger.Debug("sealed block", "number", header.Number, "id", header.ID(), "calls", header.Calls, "events", header.Events)
	return header, nil
}

func (e *Executor) writeLogs(blockNum uint32, events []*Event) error {
	if e.opts.LogDB == nil || len(events) == 0 {
		return nil
	}
	batch := e.opts.LogDB.Prepare(blockNum)
	for _, ev := range events {
		batch.Insert(ev.Name, ev.Owner, ev.TokenID, ev.Amount)
	}
	if err := batch.Commit(); err != nil {
		return errors.Wrap(err, "write logs")
	}
	return nil
}
