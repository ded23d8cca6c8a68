// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/logdb"
	"github.com/fuelcell/generator/test/datagen"
)

func newTestServer(t *testing.T, limit uint64) (*httptest.Server, *logdb.LogDB) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := mux.NewRouter()
	New(db, limit).Mount(router, "/logs")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, db
}

func get(t *testing.T, ts *httptest.Server, path string) (int, []*FilteredEvent) {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return res.StatusCode, nil
	}
	var events []*FilteredEvent
	require.NoError(t, json.NewDecoder(res.Body).Decode(&events))
	return res.StatusCode, events
}

func TestFilterGenerator(t *testing.T) {
	ts, db := newTestServer(t, 10)

	alice := datagen.RandAddress()
	bob := datagen.RandAddress()
	id1, id2 := gen.TokenID(1), gen.TokenID(2)

	require.NoError(t, db.Prepare(1).
		Insert("Staked", alice, &id1, nil).
		Insert("Staked", bob, &id2, nil).
		Commit())
	require.NoError(t, db.Prepare(3).
		Insert("Unstaked", alice, &id1, big.NewInt(10)).
		Commit())

	code, events := get(t, ts, "/logs/generator")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, events, 3)

	code, events = get(t, ts, "/logs/generator?owner="+alice.String()+"&order=desc")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, events, 2)
	assert.Equal(t, "Unstaked", events[0].Name)
	assert.Equal(t, uint32(3), events[0].BlockNumber)
	assert.Equal(t, "10", (*big.Int)(events[0].Amount).String())
	assert.Nil(t, events[1].Amount)

	code, events = get(t, ts, "/logs/generator?token=2")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, events, 1)
	assert.Equal(t, bob, events[0].Owner)
	assert.Equal(t, uint32(1), events[0].Index)

	code, events = get(t, ts, "/logs/generator?from=2")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, events, 1)
	assert.Equal(t, "Unstaked", events[0].Name)

	code, events = get(t, ts, "/logs/generator?from=0&to=1&limit=1&offset=1")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, events, 1)
	assert.Equal(t, bob, events[0].Owner)

	code, events = get(t, ts, "/logs/generator?name=Staked")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, events, 2)
}

func TestFilterGeneratorBadRequest(t *testing.T) {
	ts, _ := newTestServer(t, 10)

	for _, path := range []string{
		"/logs/generator?owner=0xzz",
		"/logs/generator?token=abc",
		"/logs/generator?from=5&to=1",
		"/logs/generator?order=up",
		"/logs/generator?limit=-1",
	} {
		code, _ := get(t, ts, path)
		assert.Equal(t, http.StatusBadRequest, code, path)
	}
}

func TestFilterGeneratorLimit(t *testing.T) {
	ts, db := newTestServer(t, 2)

	owner := datagen.RandAddress()
	batch := db.Prepare(1)
	for i := range 3 {
		id := gen.TokenID(i)
		batch.Insert("Staked", owner, &id, nil)
	}
	require.NoError(t, batch.Commit())

	code, _ := get(t, ts, "/logs/generator?limit=3")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = get(t, ts, "/logs/generator")
	assert.Equal(t, http.StatusForbidden, code)

	code, events := get(t, ts, "/logs/generator?limit=2")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, events, 2)
}
