// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/gen"
)

// Call is a state changing invocation of a builtin contract.
type Call interface {
	Name() string
	execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error)
}

type (
	StakeCall struct{ TokenID gen.TokenID }

	UnstakeCall struct{ TokenID gen.TokenID }

	ClaimCall struct{ TokenID gen.TokenID }

	ClaimAllCall struct{}

	// MintFuelCall mints the next fuel token to To. Admin only.
	MintFuelCall struct{ To gen.Address }

	ApproveCall struct {
		To      gen.Address
		TokenID gen.TokenID
	}

	SetApprovalForAllCall struct {
		Operator gen.Address
		Approved bool
	}

	TransferFuelCall struct {
		From    gen.Address
		To      gen.Address
		TokenID gen.TokenID
	}

	AddMinterCall struct{ Minter gen.Address }

	RemoveMinterCall struct{ Minter gen.Address }

	TransferEnergyCall struct {
		To     gen.Address
		Amount *big.Int
	}
)

func (StakeCall) Name() string             { return "stake" }
func (UnstakeCall) Name() string           { return "unstake" }
func (ClaimCall) Name() string             { return "claim" }
func (ClaimAllCall) Name() string          { return "claimAll" }
func (MintFuelCall) Name() string          { return "mintFuel" }
func (ApproveCall) Name() string           { return "approve" }
func (SetApprovalForAllCall) Name() string { return "setApprovalForAll" }
func (TransferFuelCall) Name() string      { return "transferFuel" }
func (AddMinterCall) Name() string         { return "addMinter" }
func (RemoveMinterCall) Name() string      { return "removeMinter" }
func (TransferEnergyCall) Name() string    { return "transferEnergy" }

func (s StakeCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := c.Generator.Stake(caller, s.TokenID); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventStaked, caller, &s.TokenID, nil)}, nil
}

func (u UnstakeCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	paid, err := c.Generator.Unstake(caller, u.TokenID)
	if err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventUnstaked, caller, &u.TokenID, paid)}, nil
}

func (cl ClaimCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	paid, err := c.Generator.Claim(caller, cl.TokenID)
	if err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventClaimed, caller, &cl.TokenID, paid)}, nil
}

func (ClaimAllCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	paid, err := c.Generator.ClaimAll(caller)
	if err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventClaimedAll, caller, nil, paid)}, nil
}

// checkFuelRecipient keeps tokens from landing on a builtin contract. The generator
// takes custody only through Stake, which records the stake alongside.
func checkFuelRecipient(to gen.Address) error {
	if builtin.IsBuiltin(to) {
		return reverts.NewAuthorizationError("fuel: builtin contract %v cannot receive tokens", to)
	}
	return nil
}

func (m MintFuelCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := checkFuelRecipient(m.To); err != nil {
		return nil, err
	}
	id, err := c.Fuel.Mint(caller, m.To)
	if err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventFuelMinted, m.To, &id, nil)}, nil
}

func (a ApproveCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := c.Fuel.Approve(caller, a.To, a.TokenID); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventApproval, caller, &a.TokenID, nil)}, nil
}

func (s SetApprovalForAllCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := c.Fuel.SetApprovalForAll(caller, s.Operator, s.Approved); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventApprovalForAll, caller, nil, nil)}, nil
}

func (t TransferFuelCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := checkFuelRecipient(t.To); err != nil {
		return nil, err
	}
	if err := c.Fuel.TransferFrom(caller, t.From, t.To, t.TokenID); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventFuelTransfer, t.From, &t.TokenID, nil)}, nil
}

func (a AddMinterCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := c.Energy.AddMinter(caller, a.Minter); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventMinterAdded, a.Minter, nil, nil)}, nil
}

func (r RemoveMinterCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if err := c.Energy.RemoveMinter(caller, r.Minter); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventMinterRemoved, r.Minter, nil, nil)}, nil
}

func (t TransferEnergyCall) execute(c *builtin.Contracts, caller gen.Address) ([]*Event, error) {
	if t.Amount == nil {
		return nil, reverts.NewStateError("energy: amount required")
	}
	if err := c.Energy.Transfer(caller, t.To, t.Amount); err != nil {
		return nil, err
	}
	return []*Event{newEvent(EventEnergyTransfer, caller, nil, new(big.Int).Set(t.Amount))}, nil
}
