// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/builtin/energy"
	"github.com/fuelcell/generator/builtin/fuel"
	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/state"
	"github.com/fuelcell/generator/test/datagen"
)

type testClock struct {
	number uint32
}

func (c *testClock) BlockNumber() uint32 { return c.number }

func (c *testClock) advance(n uint32) { c.number += n }

// hookMinter counts mints and runs a one shot hook before forwarding each mint.
type hookMinter struct {
	Minter
	calls int
	hook  func()
}

func (m *hookMinter) Mint(to gen.Address, amount *big.Int) error {
	m.calls++
	if hook := m.hook; hook != nil {
		m.hook = nil
		hook()
	}
	return m.Minter.Mint(to, amount)
}

type testEnv struct {
	t      *testing.T
	state  *state.State
	fuel   *fuel.Fuel
	energy *energy.Energy
	gen    *Generator
	clock  *testClock
	minter *hookMinter
	admin  gen.Address
}

var (
	fuelAddr      = gen.BytesToAddress([]byte("fuel"))
	energyAddr    = gen.BytesToAddress([]byte("energy"))
	generatorAddr = gen.BytesToAddress([]byte("generator"))
)

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	admin := datagen.RandAddress()

	f := fuel.New(fuelAddr, st)
	f.SetAdmin(admin)
	e := energy.New(energyAddr, st)
	require.NoError(t, e.Initialize(admin, gen.InitialEnergySupply))

	clock := &testClock{number: 1}
	minter := &hookMinter{Minter: e.Minter(generatorAddr)}
	g := New(generatorAddr, st, f.Custody(generatorAddr), minter, clock, new(big.Int).SetUint64(gen.DefaultRewardRate))

	return &testEnv{t: t, state: st, fuel: f, energy: e, gen: g, clock: clock, minter: minter, admin: admin}
}

// newLoader mints n fuel tokens to a fresh address that approved the generator.
func (e *testEnv) newLoader(n int) (gen.Address, []gen.TokenID) {
	loader := datagen.RandAddress()
	ids := make([]gen.TokenID, 0, n)
	for range n {
		id, err := e.fuel.Mint(e.admin, loader)
		require.NoError(e.t, err)
		ids = append(ids, id)
	}
	require.NoError(e.t, e.fuel.SetApprovalForAll(loader, generatorAddr, true))
	return loader, ids
}

func (e *testEnv) authorize() {
	require.NoError(e.t, e.energy.AddMinter(e.admin, generatorAddr))
}

func (e *testEnv) balance(addr gen.Address) *big.Int {
	bal, err := e.energy.BalanceOf(addr)
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) pending(owner gen.Address, id gen.TokenID) *big.Int {
	p, err := e.gen.PendingRewardOf(owner, id)
	require.NoError(e.t, err)
	return p
}

func (e *testEnv) holder(id gen.TokenID) gen.Address {
	owner, err := e.fuel.OwnerOf(id)
	require.NoError(e.t, err)
	return owner
}

func (e *testEnv) record(id gen.TokenID) *StakeRecord {
	rec, err := e.gen.Record(id)
	require.NoError(e.t, err)
	return rec
}

// checkInvariants verifies custody and conservation over the given tokens.
func (e *testEnv) checkInvariants(owners []gen.Address, ids []gen.TokenID) {
	perOwner := make(map[gen.Address]uint64)
	var staked uint64
	for _, id := range ids {
		rec := e.record(id)
		held, err := e.gen.IsHeldByEngine(id)
		require.NoError(e.t, err)
		assert.Equal(e.t, rec != nil, held, "custody invariant for token %d", id)
		if rec != nil {
			perOwner[rec.Owner]++
			staked++
		}
	}
	for _, owner := range owners {
		total, err := e.gen.TotalStakedBy(owner)
		require.NoError(e.t, err)
		assert.Equal(e.t, perOwner[owner], total)

		tokens, err := e.gen.TokensOf(owner)
		require.NoError(e.t, err)
		assert.Len(e.t, tokens, int(total))
		for _, id := range tokens {
			staker, ok, err := e.gen.StakerOf(id)
			require.NoError(e.t, err)
			assert.True(e.t, ok)
			assert.Equal(e.t, owner, staker)
		}
	}
	total, err := e.gen.TotalStaked()
	require.NoError(e.t, err)
	assert.Equal(e.t, staked, total)
}

func TestStake(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)

	require.NoError(t, env.gen.Stake(loader, ids[0]))

	assert.Equal(t, generatorAddr, env.holder(ids[0]))
	balance, err := env.fuel.BalanceOf(loader)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	total, err := env.gen.TotalStakedBy(loader)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	staker, ok, err := env.gen.StakerOf(ids[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, loader, staker)

	held, err := env.gen.IsHeldByEngine(ids[0])
	require.NoError(t, err)
	assert.True(t, held)

	assert.Equal(t, &StakeRecord{Owner: loader, LastSettled: env.clock.number}, env.record(ids[0]))
}

func TestStake_DoubleStake(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))

	env.clock.advance(3)
	err := env.gen.Stake(loader, ids[0])
	assert.True(t, reverts.IsState(err))

	// the original record is untouched
	assert.Equal(t, uint32(1), env.record(ids[0]).LastSettled)
	total, err := env.gen.TotalStakedBy(loader)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestStake_CustodyDeclined(t *testing.T) {
	env := newTestEnv(t)
	loader := datagen.RandAddress()
	id, err := env.fuel.Mint(env.admin, loader)
	require.NoError(t, err)

	// no approval granted to the generator
	err = env.gen.Stake(loader, id)
	require.Error(t, err)
	assert.True(t, reverts.IsCollaborator(err))
	assert.Equal(t, "fuel: caller is not token owner or approved", err.Error())

	assert.Nil(t, env.record(id))
	assert.Equal(t, loader, env.holder(id))
	env.checkInvariants([]gen.Address{loader}, []gen.TokenID{id})
}

func TestStake_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	thief := datagen.RandAddress()

	err := env.gen.Stake(thief, ids[0])
	assert.True(t, reverts.IsCollaborator(err))
	assert.Equal(t, loader, env.holder(ids[0]))
	env.checkInvariants([]gen.Address{loader, thief}, ids)
}

func TestRewardScenario(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)

	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)
	assert.Equal(t, big.NewInt(10), env.pending(loader, ids[0]))

	paid, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), paid)
	assert.Equal(t, big.NewInt(10), env.balance(loader))
	assert.Equal(t, 0, env.pending(loader, ids[0]).Sign())

	env.clock.advance(1)
	assert.Equal(t, big.NewInt(5), env.pending(loader, ids[0]))
}

func TestAccrualMonotonic(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))

	last := new(big.Int)
	for range 10 {
		env.clock.advance(uint32(datagen.RandIntN(5)))
		p := env.pending(loader, ids[0])
		assert.True(t, p.Cmp(last) >= 0)
		last = p
	}

	_, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 0, env.pending(loader, ids[0]).Sign())
}

func TestNoDoublePay(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(4)

	first, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	second, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(20), first)
	assert.Equal(t, 0, second.Sign())
	assert.Equal(t, 1, env.minter.calls)
	assert.Equal(t, big.NewInt(20), env.balance(loader))
}

func TestClaim_ZeroPendingWithoutMinter(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))

	// nothing accrued yet, no mint needed
	paid, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 0, paid.Sign())
	assert.Equal(t, 0, env.minter.calls)
}

func TestClaim_NotStaker(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(2)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)

	_, err := env.gen.Claim(datagen.RandAddress(), ids[0])
	assert.True(t, reverts.IsAuthorization(err))

	// never staked is rejected the same way
	_, err2 := env.gen.Claim(loader, ids[1])
	assert.True(t, reverts.IsAuthorization(err2))
	assert.Equal(t, err.Error(), err2.Error())

	assert.Equal(t, big.NewInt(10), env.pending(loader, ids[0]))
}

func TestClaim_MintDeclined(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(3)

	_, err := env.gen.Claim(loader, ids[0])
	require.Error(t, err)
	assert.True(t, reverts.IsCollaborator(err))
	assert.Equal(t, "energy: caller is not a minter", err.Error())

	// settlement time did not move, the reward is preserved
	assert.Equal(t, uint32(1), env.record(ids[0]).LastSettled)
	assert.Equal(t, big.NewInt(15), env.pending(loader, ids[0]))

	env.authorize()
	paid, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), paid)
	assert.Equal(t, big.NewInt(15), env.balance(loader))
}

func TestUnstake(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(6)

	paid, err := env.gen.Unstake(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), paid)
	assert.Equal(t, big.NewInt(30), env.balance(loader))

	assert.Equal(t, loader, env.holder(ids[0]))
	assert.Equal(t, 0, env.pending(loader, ids[0]).Sign())
	_, ok, err := env.gen.StakerOf(ids[0])
	require.NoError(t, err)
	assert.False(t, ok)
	held, err := env.gen.IsHeldByEngine(ids[0])
	require.NoError(t, err)
	assert.False(t, held)
	env.checkInvariants([]gen.Address{loader}, ids)

	// can be staked again
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	assert.Equal(t, env.clock.number, env.record(ids[0]).LastSettled)
}

func TestUnstake_NonOwner(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)

	other := datagen.RandAddress()
	_, err := env.gen.Unstake(other, ids[0])
	assert.True(t, reverts.IsAuthorization(err))

	assert.Equal(t, generatorAddr, env.holder(ids[0]))
	assert.Equal(t, &StakeRecord{Owner: loader, LastSettled: 1}, env.record(ids[0]))
	assert.Equal(t, 0, env.balance(other).Sign())
	assert.Equal(t, big.NewInt(10), env.pending(loader, ids[0]))
	env.checkInvariants([]gen.Address{loader, other}, ids)
}

func TestUnstake_MintDeclined(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)

	_, err := env.gen.Unstake(loader, ids[0])
	assert.True(t, reverts.IsCollaborator(err))

	// nothing of the unstake survives
	assert.Equal(t, generatorAddr, env.holder(ids[0]))
	assert.NotNil(t, env.record(ids[0]))
	tokens, err := env.gen.TokensOf(loader)
	require.NoError(t, err)
	assert.Equal(t, ids, tokens)
	env.checkInvariants([]gen.Address{loader}, ids)
}

func TestClaimAll(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(3)

	require.NoError(t, env.gen.Stake(loader, ids[0])) // block 1
	env.clock.advance(1)
	require.NoError(t, env.gen.Stake(loader, ids[1])) // block 2
	env.clock.advance(2)
	require.NoError(t, env.gen.Stake(loader, ids[2])) // block 4
	env.clock.advance(1)

	// (4 + 3 + 1) * 5
	all, err := env.gen.AllPendingRewardsOf(loader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), all)

	paid, err := env.gen.ClaimAll(loader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), paid)
	assert.Equal(t, 1, env.minter.calls)
	assert.Equal(t, big.NewInt(40), env.balance(loader))

	for _, id := range ids {
		assert.Equal(t, env.clock.number, env.record(id).LastSettled)
	}

	env.clock.advance(1)
	all, err = env.gen.AllPendingRewardsOf(loader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), all)
}

func TestClaimAll_NothingStaked(t *testing.T) {
	env := newTestEnv(t)

	paid, err := env.gen.ClaimAll(datagen.RandAddress())
	require.NoError(t, err)
	assert.Equal(t, 0, paid.Sign())
	assert.Equal(t, 0, env.minter.calls)
}

func TestClaimAll_MintDeclined(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(2)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	require.NoError(t, env.gen.Stake(loader, ids[1]))
	env.clock.advance(2)

	_, err := env.gen.ClaimAll(loader)
	assert.True(t, reverts.IsCollaborator(err))
	for _, id := range ids {
		assert.Equal(t, uint32(1), env.record(id).LastSettled)
	}
	all, err := env.gen.AllPendingRewardsOf(loader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), all)
}

func TestReentrantClaimDuringMint(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)

	var nested *big.Int
	env.minter.hook = func() {
		var err error
		nested, err = env.gen.Claim(loader, ids[0])
		require.NoError(t, err)
	}

	paid, err := env.gen.Claim(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), paid)
	// the nested claim observed the advanced settlement time
	assert.Equal(t, 0, nested.Sign())
	assert.Equal(t, big.NewInt(10), env.balance(loader))
}

func TestReentrantUnstakeDuringUnstake(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(2)

	var nestedErr error
	env.minter.hook = func() {
		_, nestedErr = env.gen.Unstake(loader, ids[0])
	}

	paid, err := env.gen.Unstake(loader, ids[0])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), paid)
	assert.True(t, reverts.IsAuthorization(nestedErr))
	assert.Equal(t, big.NewInt(10), env.balance(loader))
	assert.Equal(t, loader, env.holder(ids[0]))
}

func TestReentrantClaimAllDuringClaimAll(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()
	loader, ids := env.newLoader(2)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	require.NoError(t, env.gen.Stake(loader, ids[1]))
	env.clock.advance(3)

	var nested *big.Int
	env.minter.hook = func() {
		var err error
		nested, err = env.gen.ClaimAll(loader)
		require.NoError(t, err)
	}

	paid, err := env.gen.ClaimAll(loader)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), paid)
	assert.Equal(t, 0, nested.Sign())
	assert.Equal(t, big.NewInt(30), env.balance(loader))
}

func TestPendingRewardOf_ForeignOwner(t *testing.T) {
	env := newTestEnv(t)
	loader, ids := env.newLoader(1)
	require.NoError(t, env.gen.Stake(loader, ids[0]))
	env.clock.advance(5)

	assert.Equal(t, 0, env.pending(datagen.RandAddress(), ids[0]).Sign())
	assert.Equal(t, 0, env.pending(loader, datagen.RandTokenID()).Sign())
}

func TestIsHeldByEngine_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	held, err := env.gen.IsHeldByEngine(42)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestRewardRate(t *testing.T) {
	env := newTestEnv(t)
	rate := env.gen.RewardRate()
	assert.Equal(t, big.NewInt(5), rate)

	// returned value is a copy
	rate.SetInt64(100)
	assert.Equal(t, big.NewInt(5), env.gen.RewardRate())
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	env := newTestEnv(t)
	env.authorize()

	var owners []gen.Address
	var all []gen.TokenID
	tokens := make(map[gen.TokenID]gen.Address)
	for range 3 {
		owner, ids := env.newLoader(4)
		owners = append(owners, owner)
		all = append(all, ids...)
		for _, id := range ids {
			tokens[id] = owner
		}
	}

	for range 200 {
		id := all[datagen.RandIntN(len(all))]
		owner := tokens[id]
		switch datagen.RandIntN(4) {
		case 0:
			env.gen.Stake(owner, id) //nolint:errcheck
		case 1:
			env.gen.Unstake(owner, id) //nolint:errcheck
		case 2:
			env.gen.Claim(owner, id) //nolint:errcheck
		case 3:
			// a wrong caller never changes anything
			env.gen.Unstake(owners[datagen.RandIntN(len(owners))], id) //nolint:errcheck
		}
		env.clock.advance(uint32(datagen.RandIntN(2)))
		env.checkInvariants(owners, all)
	}
}
