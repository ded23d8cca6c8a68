// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package generator implements the staking engine: fuel tokens are locked into the
// custody of the generator and accrue energy for every block they stay there.
package generator

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/builtin/solidity"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/state"
)

var logger = log.WithContext("pkg", "generator")

func SetLogger(l log.Logger) {
	logger = l
}

const msgNotStaker = "generator: caller is not the staker of the token"

// Generator implements the native methods of the generator contract.
// It does not lock: callers must serialize mutations, and collaborators may call
// back into it while an operation is in progress.
type Generator struct {
	addr    gen.Address
	state   *state.State
	custody Custody
	minter  Minter
	clock   TimeSource
	rate    *big.Int

	ledger *ledger
	index  *ownerIndex
}

// New create a new instance. The generator holds staked tokens at addr.
func New(
	addr gen.Address,
	state *state.State,
	custody Custody,
	minter Minter,
	clock TimeSource,
	rate *big.Int,
) *Generator {
	sctx := solidity.NewContext(addr, state)
	return &Generator{
		addr:    addr,
		state:   state,
		custody: custody,
		minter:  minter,
		clock:   clock,
		rate:    new(big.Int).Set(rate),
		ledger:  newLedger(sctx),
		index:   newOwnerIndex(sctx),
	}
}

// Address returns the custody address.
func (g *Generator) Address() gen.Address {
	return g.addr
}

//
// Getters - no state change
//

// RewardRate returns the energy accrued per block by one staked token.
func (g *Generator) RewardRate() *big.Int {
	return new(big.Int).Set(g.rate)
}

// TotalStaked returns the number of tokens in custody.
func (g *Generator) TotalStaked() (uint64, error) {
	return g.ledger.count()
}

// TotalStakedBy returns the number of tokens staked by owner.
func (g *Generator) TotalStakedBy(owner gen.Address) (uint64, error) {
	return g.index.Count(owner)
}

// StakerOf returns the owner of a staked token. ok is false when the token is not staked.
func (g *Generator) StakerOf(id gen.TokenID) (owner gen.Address, ok bool, err error) {
	rec, err := g.ledger.get(id)
	if err != nil || rec == nil {
		return gen.Address{}, false, err
	}
	return rec.Owner, true, nil
}

// Record returns the stake record of a token, nil when not staked.
func (g *Generator) Record(id gen.TokenID) (*StakeRecord, error) {
	return g.ledger.get(id)
}

// IsHeldByEngine reports whether the custody address currently holds the token.
func (g *Generator) IsHeldByEngine(id gen.TokenID) (bool, error) {
	holder, err := g.custody.CurrentHolder(id)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return false, nil
		}
		return false, err
	}
	return holder == g.addr, nil
}

// PendingRewardOf returns the unclaimed reward of a token staked by owner, zero if the
// token is not staked or was staked by somebody else.
func (g *Generator) PendingRewardOf(owner gen.Address, id gen.TokenID) (*big.Int, error) {
	rec, err := g.ledger.get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Owner != owner {
		return new(big.Int), nil
	}
	return accrued(rec, g.clock.BlockNumber(), g.rate), nil
}

// AllPendingRewardsOf returns the unclaimed reward over every token staked by owner.
func (g *Generator) AllPendingRewardsOf(owner gen.Address) (*big.Int, error) {
	now := g.clock.BlockNumber()
	total := new(big.Int)
	err := g.index.Iter(owner, func(id gen.TokenID) error {
		rec, err := g.ledger.get(id)
		if err != nil {
			return err
		}
		total.Add(total, accrued(rec, now, g.rate))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

// TokensOf lists the tokens staked by owner, oldest stake first.
func (g *Generator) TokensOf(owner gen.Address) ([]gen.TokenID, error) {
	var ids []gen.TokenID
	err := g.index.Iter(owner, func(id gen.TokenID) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

//
// Operations
//

// Stake moves the token of caller into custody and starts its accrual.
func (g *Generator) Stake(caller gen.Address, id gen.TokenID) error {
	logger.Debug("stake", "tokenID", id, "caller", caller)

	err := g.atomic(func() error {
		rec, err := g.ledger.get(id)
		if err != nil {
			return err
		}
		if rec != nil {
			return reverts.NewStateError("generator: token already staked")
		}

		if err := g.ledger.insert(id, &StakeRecord{Owner: caller, LastSettled: g.clock.BlockNumber()}); err != nil {
			return err
		}
		if err := g.index.Add(caller, id); err != nil {
			return err
		}

		if err := g.custody.TransferToCustody(id, caller); err != nil {
			return reverts.WrapCollaborator(err)
		}
		return g.requireHolder(id, g.addr)
	})
	observeOperation("stake", err)
	if err != nil {
		logger.Info("stake failed", "tokenID", id, "caller", caller, "error", err)
		return err
	}

	g.observeCustody()
	logger.Info("staked fuel", "tokenID", id, "owner", caller)
	return nil
}

// Unstake pays out the pending reward of the token and returns it to caller.
// It returns the amount paid.
func (g *Generator) Unstake(caller gen.Address, id gen.TokenID) (*big.Int, error) {
	logger.Debug("unstake", "tokenID", id, "caller", caller)

	var paid *big.Int
	err := g.atomic(func() error {
		rec, err := g.ownedRecord(caller, id)
		if err != nil {
			return err
		}
		paid = accrued(rec, g.clock.BlockNumber(), g.rate)

		if err := g.ledger.delete(id); err != nil {
			return err
		}
		if err := g.index.Remove(caller, id); err != nil {
			return err
		}

		if err := g.mint(caller, paid); err != nil {
			return err
		}
		if err := g.custody.TransferFromCustody(id, caller); err != nil {
			return reverts.WrapCollaborator(err)
		}
		return g.requireHolder(id, caller)
	})
	observeOperation("unstake", err)
	if err != nil {
		logger.Info("unstake failed", "tokenID", id, "caller", caller, "error", err)
		return nil, err
	}

	g.observeCustody()
	logger.Info("unstaked fuel", "tokenID", id, "owner", caller, "paid", paid)
	return paid, nil
}

// Claim pays out the pending reward of one token and restarts its accrual.
// It returns the amount paid.
func (g *Generator) Claim(caller gen.Address, id gen.TokenID) (*big.Int, error) {
	logger.Debug("claim", "tokenID", id, "caller", caller)

	var paid *big.Int
	err := g.atomic(func() error {
		rec, err := g.ownedRecord(caller, id)
		if err != nil {
			return err
		}
		now := g.clock.BlockNumber()
		paid = accrued(rec, now, g.rate)

		rec.LastSettled = now
		if err := g.ledger.update(id, rec); err != nil {
			return err
		}
		return g.mint(caller, paid)
	})
	observeOperation("claim", err)
	if err != nil {
		logger.Info("claim failed", "tokenID", id, "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("claimed reward", "tokenID", id, "owner", caller, "paid", paid)
	return paid, nil
}

// ClaimAll pays out the pending reward of every token staked by caller with a
// single mint. It returns the amount paid.
func (g *Generator) ClaimAll(caller gen.Address) (*big.Int, error) {
	logger.Debug("claim all", "caller", caller)

	paid := new(big.Int)
	var tokens int
	err := g.atomic(func() error {
		now := g.clock.BlockNumber()
		if err := g.index.Iter(caller, func(id gen.TokenID) error {
			rec, err := g.ledger.get(id)
			if err != nil {
				return err
			}
			if rec == nil {
				return errors.Errorf("indexed token %d has no stake record", id)
			}
			paid.Add(paid, accrued(rec, now, g.rate))
			rec.LastSettled = now
			tokens++
			return g.ledger.update(id, rec)
		}); err != nil {
			return err
		}
		return g.mint(caller, paid)
	})
	observeOperation("claim_all", err)
	if err != nil {
		logger.Info("claim all failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("claimed all rewards", "owner", caller, "tokens", tokens, "paid", paid)
	return paid, nil
}

// atomic runs fn inside a state checkpoint and reverts everything fn wrote,
// including writes of collaborators sharing the state, when it fails.
func (g *Generator) atomic(fn func() error) error {
	checkpoint := g.state.NewCheckpoint()
	if err := fn(); err != nil {
		g.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// ownedRecord returns the record of id if caller staked it. Absent and foreign
// records are rejected alike.
func (g *Generator) ownedRecord(caller gen.Address, id gen.TokenID) (*StakeRecord, error) {
	rec, err := g.ledger.get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Owner != caller {
		return nil, reverts.NewAuthorizationError(msgNotStaker)
	}
	return rec, nil
}

// mint credits a positive amount through the minter. Nothing is minted for zero.
func (g *Generator) mint(to gen.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := g.minter.Mint(to, amount); err != nil {
		return reverts.WrapCollaborator(err)
	}
	observeReward(amount)
	return nil
}

// requireHolder checks the custody side after a transfer.
func (g *Generator) requireHolder(id gen.TokenID, want gen.Address) error {
	holder, err := g.custody.CurrentHolder(id)
	if err != nil {
		return reverts.WrapCollaborator(err)
	}
	if holder != want {
		return reverts.WrapCollaborator(errors.Errorf("custody: token %d held by %v after transfer", id, holder))
	}
	return nil
}
