// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fuel implements the non-fungible fuel token that is staked into the generator.
package fuel

import (
	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/builtin/solidity"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/state"
)

var (
	logger = log.WithContext("pkg", "fuel")

	slotAdmin     = gen.Blake2b([]byte("fuel-admin"))
	slotNextID    = gen.Blake2b([]byte("fuel-next-id"))
	slotOwners    = gen.Blake2b([]byte("fuel-owners"))
	slotBalances  = gen.Blake2b([]byte("fuel-balances"))
	slotApprovals = gen.Blake2b([]byte("fuel-approvals"))
	slotOperators = gen.Blake2b([]byte("fuel-operators"))
)

// operatorKey keys the operator approval of one owner.
type operatorKey struct {
	owner    gen.Address
	operator gen.Address
}

func (k operatorKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.operator.Bytes()...)
}

// Fuel implements the fuel token contract.
type Fuel struct {
	addr gen.Address

	admin     *solidity.Address
	nextID    *solidity.Raw[uint64]
	owners    *solidity.Mapping[gen.TokenID, gen.Address]
	balances  *solidity.Mapping[gen.Address, uint64]
	approvals *solidity.Mapping[gen.TokenID, gen.Address]
	operators *solidity.Mapping[operatorKey, bool]
}

// New create a new instance.
func New(addr gen.Address, state *state.State) *Fuel {
	sctx := solidity.NewContext(addr, state)
	return &Fuel{
		addr:      addr,
		admin:     solidity.NewAddress(sctx, slotAdmin),
		nextID:    solidity.NewRaw[uint64](sctx, slotNextID),
		owners:    solidity.NewMapping[gen.TokenID, gen.Address](sctx, slotOwners),
		balances:  solidity.NewMapping[gen.Address, uint64](sctx, slotBalances),
		approvals: solidity.NewMapping[gen.TokenID, gen.Address](sctx, slotApprovals),
		operators: solidity.NewMapping[operatorKey, bool](sctx, slotOperators),
	}
}

func (f *Fuel) Address() gen.Address {
	return f.addr
}

// Admin returns the address allowed to mint.
func (f *Fuel) Admin() (gen.Address, error) {
	return f.admin.Get()
}

// SetAdmin sets the address allowed to mint. Used at genesis.
func (f *Fuel) SetAdmin(admin gen.Address) {
	f.admin.Set(&admin)
}

// TotalSupply returns the number of minted tokens, which is also the next token id.
func (f *Fuel) TotalSupply() (uint64, error) {
	return f.nextID.Get()
}

// Mint creates the next token for to. Only the admin can mint.
func (f *Fuel) Mint(operator, to gen.Address) (gen.TokenID, error) {
	admin, err := f.admin.Get()
	if err != nil {
		return 0, err
	}
	if admin.IsZero() || operator != admin {
		return 0, reverts.NewAuthorizationError("fuel: caller is not the admin")
	}
	if to.IsZero() {
		return 0, reverts.NewStateError("fuel: mint to the zero address")
	}

	next, err := f.nextID.Get()
	if err != nil {
		return 0, err
	}
	id := gen.TokenID(next)
	if err := f.owners.Insert(id, to); err != nil {
		return 0, err
	}
	if err := f.addBalance(to, 1); err != nil {
		return 0, err
	}
	if err := f.nextID.Set(next + 1); err != nil {
		return 0, err
	}

	logger.Debug("minted fuel", "tokenID", id, "to", to)
	return id, nil
}

// Exists reports whether the token has been minted.
func (f *Fuel) Exists(id gen.TokenID) (bool, error) {
	return f.owners.Exists(id)
}

// OwnerOf returns the owner of a minted token.
func (f *Fuel) OwnerOf(id gen.TokenID) (gen.Address, error) {
	owner, err := f.owners.Get(id)
	if err != nil {
		return gen.Address{}, err
	}
	if owner.IsZero() {
		return gen.Address{}, reverts.NewStateError("fuel: invalid token ID")
	}
	return owner, nil
}

// BalanceOf returns the number of tokens held by owner.
func (f *Fuel) BalanceOf(owner gen.Address) (uint64, error) {
	return f.balances.Get(owner)
}

// Approve grants to the right to transfer one token. The caller must be the owner
// or an operator of the owner.
func (f *Fuel) Approve(caller, to gen.Address, id gen.TokenID) error {
	owner, err := f.OwnerOf(id)
	if err != nil {
		return err
	}
	if to == owner {
		return reverts.NewStateError("fuel: approval to current owner")
	}
	if caller != owner {
		approved, err := f.IsApprovedForAll(owner, caller)
		if err != nil {
			return err
		}
		if !approved {
			return reverts.NewAuthorizationError("fuel: approve caller is not token owner or approved for all")
		}
	}
	return f.approvals.Set(id, to)
}

// GetApproved returns the single token approval of id, zero when there is none.
func (f *Fuel) GetApproved(id gen.TokenID) (gen.Address, error) {
	if _, err := f.OwnerOf(id); err != nil {
		return gen.Address{}, err
	}
	return f.approvals.Get(id)
}

// SetApprovalForAll grants or revokes operator rights over all tokens of caller.
func (f *Fuel) SetApprovalForAll(caller, operator gen.Address, approved bool) error {
	if caller == operator {
		return reverts.NewStateError("fuel: approve to caller")
	}
	key := operatorKey{caller, operator}
	if !approved {
		f.operators.Delete(key)
		return nil
	}
	return f.operators.Set(key, true)
}

func (f *Fuel) IsApprovedForAll(owner, operator gen.Address) (bool, error) {
	return f.operators.Get(operatorKey{owner, operator})
}

// TransferFrom moves token id from from to to on behalf of operator.
func (f *Fuel) TransferFrom(operator, from, to gen.Address, id gen.TokenID) error {
	owner, err := f.OwnerOf(id)
	if err != nil {
		return err
	}
	ok, err := f.isApprovedOrOwner(operator, owner, id)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.NewAuthorizationError("fuel: caller is not token owner or approved")
	}
	if owner != from {
		return reverts.NewStateError("fuel: transfer from incorrect owner")
	}
	if to.IsZero() {
		return reverts.NewStateError("fuel: transfer to the zero address")
	}

	f.approvals.Delete(id)
	if err := f.subBalance(from, 1); err != nil {
		return err
	}
	if err := f.addBalance(to, 1); err != nil {
		return err
	}
	if err := f.owners.Set(id, to); err != nil {
		return err
	}

	logger.Debug("transferred fuel", "tokenID", id, "from", from, "to", to, "operator", operator)
	return nil
}

func (f *Fuel) isApprovedOrOwner(spender, owner gen.Address, id gen.TokenID) (bool, error) {
	if spender == owner {
		return true, nil
	}
	approved, err := f.approvals.Get(id)
	if err != nil {
		return false, err
	}
	if approved == spender {
		return true, nil
	}
	return f.IsApprovedForAll(owner, spender)
}

func (f *Fuel) addBalance(addr gen.Address, n uint64) error {
	bal, err := f.balances.Get(addr)
	if err != nil {
		return err
	}
	return f.balances.Set(addr, bal+n)
}

func (f *Fuel) subBalance(addr gen.Address, n uint64) error {
	bal, err := f.balances.Get(addr)
	if err != nil {
		return err
	}
	if bal < n {
		return reverts.NewStateError("fuel: balance underflow")
	}
	if bal == n {
		f.balances.Delete(addr)
		return nil
	}
	return f.balances.Set(addr, bal-n)
}
