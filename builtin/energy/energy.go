// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package energy implements the fungible energy token paid out as staking reward.
package energy

import (
	"math/big"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/builtin/solidity"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/state"
)

var (
	logger = log.WithContext("pkg", "energy")

	slotAdmin    = gen.Blake2b([]byte("energy-admin"))
	slotSupply   = gen.Blake2b([]byte("energy-total-supply"))
	slotBalances = gen.Blake2b([]byte("energy-balances"))
	slotMinters  = gen.Blake2b([]byte("energy-minters"))
)

// Energy implements the energy token contract.
type Energy struct {
	addr gen.Address

	admin    *solidity.Address
	supply   *solidity.Uint256
	balances *solidity.Mapping[gen.Address, *big.Int]
	minters  *solidity.Mapping[gen.Address, bool]
}

// New create a new instance.
func New(addr gen.Address, state *state.State) *Energy {
	sctx := solidity.NewContext(addr, state)
	return &Energy{
		addr:     addr,
		admin:    solidity.NewAddress(sctx, slotAdmin),
		supply:   solidity.NewUint256(sctx, slotSupply),
		balances: solidity.NewMapping[gen.Address, *big.Int](sctx, slotBalances),
		minters:  solidity.NewMapping[gen.Address, bool](sctx, slotMinters),
	}
}

func (e *Energy) Address() gen.Address {
	return e.addr
}

// Admin returns the address managing the minter list.
func (e *Energy) Admin() (gen.Address, error) {
	return e.admin.Get()
}

// Initialize sets the admin and credits it with the initial supply. The admin
// becomes the first minter.
func (e *Energy) Initialize(admin gen.Address, initialSupply *big.Int) error {
	e.admin.Set(&admin)
	if err := e.minters.Set(admin, true); err != nil {
		return err
	}
	return e.credit(admin, initialSupply)
}

// TotalSupply returns the amount of energy in existence.
func (e *Energy) TotalSupply() (*big.Int, error) {
	return e.supply.Get()
}

func (e *Energy) BalanceOf(addr gen.Address) (*big.Int, error) {
	bal, err := e.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

// Transfer moves amount from from to to.
func (e *Energy) Transfer(from, to gen.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.NewStateError("energy: negative amount")
	}
	if to.IsZero() {
		return reverts.NewStateError("energy: transfer to the zero address")
	}
	bal, err := e.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.NewStateError("energy: transfer amount exceeds balance")
	}
	if err := e.setBalance(from, bal.Sub(bal, amount)); err != nil {
		return err
	}
	toBal, err := e.BalanceOf(to)
	if err != nil {
		return err
	}
	return e.setBalance(to, toBal.Add(toBal, amount))
}

func (e *Energy) IsMinter(addr gen.Address) (bool, error) {
	return e.minters.Get(addr)
}

// AddMinter grants minting rights to minter. Only the admin can manage minters.
func (e *Energy) AddMinter(caller, minter gen.Address) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if minter.IsZero() {
		return reverts.NewStateError("energy: minter is the zero address")
	}
	logger.Info("minter added", "minter", minter)
	return e.minters.Set(minter, true)
}

// RemoveMinter revokes minting rights.
func (e *Energy) RemoveMinter(caller, minter gen.Address) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.minters.Delete(minter)
	logger.Info("minter removed", "minter", minter)
	return nil
}

// Mint creates amount for to. The operator must be a minter.
func (e *Energy) Mint(operator, to gen.Address, amount *big.Int) error {
	ok, err := e.IsMinter(operator)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.NewAuthorizationError("energy: caller is not a minter")
	}
	if to.IsZero() {
		return reverts.NewStateError("energy: mint to the zero address")
	}
	if amount.Sign() < 0 {
		return reverts.NewStateError("energy: negative amount")
	}
	return e.credit(to, amount)
}

func (e *Energy) credit(to gen.Address, amount *big.Int) error {
	bal, err := e.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := e.setBalance(to, bal.Add(bal, amount)); err != nil {
		return err
	}
	return e.supply.Add(amount)
}

func (e *Energy) setBalance(addr gen.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		e.balances.Delete(addr)
		return nil
	}
	return e.balances.Set(addr, bal)
}

func (e *Energy) requireAdmin(caller gen.Address) error {
	admin, err := e.admin.Get()
	if err != nil {
		return err
	}
	if admin.IsZero() || caller != admin {
		return reverts.NewAuthorizationError("energy: caller is not the admin")
	}
	return nil
}
