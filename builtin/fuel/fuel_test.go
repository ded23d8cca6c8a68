// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fuel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/state"
	"github.com/fuelcell/generator/test/datagen"
)

func newFuel(t *testing.T) (*Fuel, gen.Address) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := New(gen.BytesToAddress([]byte("fuel")), state.New(db))
	admin := datagen.RandAddress()
	f.SetAdmin(admin)
	return f, admin
}

func TestMint(t *testing.T) {
	f, admin := newFuel(t)
	holder := datagen.RandAddress()

	_, err := f.Mint(holder, holder)
	assert.True(t, reverts.IsAuthorization(err))

	_, err = f.Mint(admin, gen.Address{})
	assert.True(t, reverts.IsState(err))

	for want := range 3 {
		id, err := f.Mint(admin, holder)
		require.NoError(t, err)
		assert.Equal(t, gen.TokenID(want), id)
	}

	balance, err := f.BalanceOf(holder)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), balance)

	supply, err := f.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), supply)

	owner, err := f.OwnerOf(2)
	require.NoError(t, err)
	assert.Equal(t, holder, owner)

	_, err = f.OwnerOf(3)
	assert.True(t, reverts.IsState(err))
}

func TestTransferFrom(t *testing.T) {
	f, admin := newFuel(t)
	owner := datagen.RandAddress()
	spender := datagen.RandAddress()
	receiver := datagen.RandAddress()

	id, err := f.Mint(admin, owner)
	require.NoError(t, err)

	// not approved
	err = f.TransferFrom(spender, owner, receiver, id)
	assert.True(t, reverts.IsAuthorization(err))

	// single token approval
	require.NoError(t, f.Approve(owner, spender, id))
	approved, err := f.GetApproved(id)
	require.NoError(t, err)
	assert.Equal(t, spender, approved)

	// wrong from
	err = f.TransferFrom(spender, receiver, spender, id)
	assert.True(t, reverts.IsState(err))

	require.NoError(t, f.TransferFrom(spender, owner, receiver, id))
	holder, err := f.OwnerOf(id)
	require.NoError(t, err)
	assert.Equal(t, receiver, holder)

	// approval is cleared by the transfer
	approved, err = f.GetApproved(id)
	require.NoError(t, err)
	assert.True(t, approved.IsZero())

	ownerBalance, err := f.BalanceOf(owner)
	require.NoError(t, err)
	receiverBalance, err := f.BalanceOf(receiver)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ownerBalance)
	assert.Equal(t, uint64(1), receiverBalance)
}

func TestApprovalForAll(t *testing.T) {
	f, admin := newFuel(t)
	owner := datagen.RandAddress()
	operator := datagen.RandAddress()

	id, err := f.Mint(admin, owner)
	require.NoError(t, err)

	assert.True(t, reverts.IsState(f.SetApprovalForAll(owner, owner, true)))

	require.NoError(t, f.SetApprovalForAll(owner, operator, true))
	ok, err := f.IsApprovedForAll(owner, operator)
	require.NoError(t, err)
	assert.True(t, ok)

	// an operator may approve on behalf of the owner
	other := datagen.RandAddress()
	require.NoError(t, f.Approve(operator, other, id))
	assert.True(t, reverts.IsAuthorization(f.Approve(other, operator, id)))
	assert.True(t, reverts.IsState(f.Approve(owner, owner, id)))

	require.NoError(t, f.SetApprovalForAll(owner, operator, false))
	ok, err = f.IsApprovedForAll(owner, operator)
	require.NoError(t, err)
	assert.False(t, ok)
	// revoked operator cannot transfer
	assert.True(t, reverts.IsAuthorization(f.TransferFrom(operator, owner, operator, id)))
}

func TestCustody(t *testing.T) {
	f, admin := newFuel(t)
	owner := datagen.RandAddress()
	engine := datagen.RandAddress()
	custody := f.Custody(engine)

	id, err := f.Mint(admin, owner)
	require.NoError(t, err)

	err = custody.TransferToCustody(id, owner)
	assert.True(t, reverts.IsAuthorization(err))

	require.NoError(t, f.SetApprovalForAll(owner, engine, true))
	require.NoError(t, custody.TransferToCustody(id, owner))

	holder, err := custody.CurrentHolder(id)
	require.NoError(t, err)
	assert.Equal(t, engine, holder)

	require.NoError(t, custody.TransferFromCustody(id, owner))
	holder, err = custody.CurrentHolder(id)
	require.NoError(t, err)
	assert.Equal(t, owner, holder)
}
