// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/builtin/generator"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/genesis"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/state"
)

var zeroClock = generator.TimeSourceFunc(func() uint32 { return 0 })

const testConfig = `
launchTime: 1700000000
admin: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
rewardRate: 7
authorizeGenerator: true
accounts:
  - address: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
    energy: 0x3e8
    fuel: 2
  - address: "0x733b7269443c70de16bbf9b0615307884bcc5636"
    energy: 25
`

func TestDevnet(t *testing.T) {
	g := genesis.NewDevnet()
	assert.Equal(t, "devnet", g.Name())

	header, stage, err := g.Build()
	require.NoError(t, err)
	assert.Equal(t, g.ID(), header.ID())
	assert.Equal(t, uint32(0), header.Number)
	assert.NotZero(t, stage.Len())

	// deterministic
	assert.Equal(t, g.ID(), genesis.NewDevnet().ID())
	assert.Len(t, genesis.DevAccounts(), 10)
}

func TestSetup(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	g := genesis.NewDevnet()
	repo, err := g.Setup(store)
	require.NoError(t, err)
	assert.Equal(t, g.ID(), repo.GenesisBlock().ID())

	st := state.NewStater(store).NewState()
	c, err := builtin.New(st, zeroClock)
	require.NoError(t, err)

	admin := genesis.DevAccounts()[0].Address
	fuelAdmin, err := c.Fuel.Admin()
	require.NoError(t, err)
	assert.Equal(t, admin, fuelAdmin)

	ok, err := c.Energy.IsMinter(builtin.Generator.Address)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, acc := range genesis.DevAccounts() {
		n, err := c.Fuel.BalanceOf(acc.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), n)
	}
	assert.Equal(t, gen.DefaultRewardRate, c.Generator.RewardRate().Uint64())

	// reopening keeps the committed state
	_, err = g.Setup(store)
	assert.NoError(t, err)
}

func TestCustomNet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	cfg, err := genesis.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), cfg.LaunchTime)
	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, int64(1000), cfg.Accounts[0].Energy.Big().Int64())

	g, err := genesis.NewCustomNet(cfg)
	require.NoError(t, err)

	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()
	_, err = g.Setup(store)
	require.NoError(t, err)

	c, err := builtin.New(state.NewStater(store).NewState(), zeroClock)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.Generator.RewardRate().Int64())

	first := gen.MustParseAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
	second := gen.MustParseAddress("0x733b7269443c70de16bbf9b0615307884bcc5636")

	n, err := c.Fuel.BalanceOf(first)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
	owner, err := c.Fuel.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, first, owner)

	bal, err := c.Energy.BalanceOf(second)
	require.NoError(t, err)
	assert.Equal(t, int64(25), bal.Int64())

	admin := gen.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	bal, err = c.Energy.BalanceOf(admin)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Cmp(gen.InitialEnergySupply))

	supply, err := c.Energy.TotalSupply()
	require.NoError(t, err)
	want := new(big.Int).Add(gen.InitialEnergySupply, big.NewInt(1025))
	assert.Equal(t, 0, supply.Cmp(want))
}

func TestParseConfigErrors(t *testing.T) {
	_, err := genesis.ParseConfig([]byte("launchTime: 1\nunknown: 2\n"))
	assert.Error(t, err)

	_, err = genesis.ParseConfig([]byte("launchTime: 1\nrewardRate: [1]\n"))
	assert.Error(t, err)

	cfg, err := genesis.ParseConfig([]byte("launchTime: 1\nadmin: nope\n"))
	require.NoError(t, err)
	_, err = genesis.NewCustomNet(cfg)
	assert.Error(t, err)

	cfg, err = genesis.ParseConfig([]byte("admin: \"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed\"\n"))
	require.NoError(t, err)
	_, err = genesis.NewCustomNet(cfg)
	assert.EqualError(t, err, "launch time must be set")
}
