// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/fuelcell/generator/genesis"
)

func newContext(t *testing.T, genesisPath string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(genesisFlag.Name, "", "")
	require.NoError(t, set.Set(genesisFlag.Name, genesisPath))
	return cli.NewContext(nil, set, nil)
}

func TestReadIntFromUInt64Flag(t *testing.T) {
	v, err := readIntFromUInt64Flag(3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = readIntFromUInt64Flag(math.MaxUint64)
	assert.Error(t, err)
}

func TestLoadGenesis(t *testing.T) {
	gene, err := loadGenesis(newContext(t, ""))
	require.NoError(t, err)
	assert.Equal(t, genesis.NewDevnet().ID(), gene.ID())

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`launchTime: 1700000000
admin: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
rewardRate: 7
`), 0600))

	gene, err = loadGenesis(newContext(t, path))
	require.NoError(t, err)
	assert.Equal(t, "customnet", gene.Name())

	_, err = loadGenesis(newContext(t, filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestInstanceDatabases(t *testing.T) {
	_, err := makeInstanceDir("", genesis.NewDevnet())
	assert.Error(t, err)

	dir, err := makeInstanceDir(t.TempDir(), genesis.NewDevnet())
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	store, err := openMainDB(dir, 16)
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	logDB, err := openLogDB(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs.db"), logDB.Path())
	require.NoError(t, logDB.Close())
}
