// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/test/testchain"
)

func newTestServer(t *testing.T, h *Health) *httptest.Server {
	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/health")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func TestHealth(t *testing.T) {
	thorChain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer thorChain.Close()

	best := thorChain.Repo().BestBlock()
	bestTime := time.Unix(int64(best.Timestamp), 0)

	h := New(thorChain.Repo(), 10*time.Second, false)
	ts := newTestServer(t, h)

	h.now = func() time.Time { return bestTime.Add(12 * time.Second) }
	body, code := httpGet(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	var status Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.True(t, status.Healthy)
	assert.Equal(t, best.Number, status.BestBlock.Number)
	assert.Equal(t, best.ID().String(), status.BestBlock.ID)

	h.now = func() time.Time { return bestTime.Add(time.Minute) }
	body, code = httpGet(t, ts.URL+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.False(t, status.Healthy)
}

func TestHealthOnDemand(t *testing.T) {
	thorChain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer thorChain.Close()

	h := New(thorChain.Repo(), 10*time.Second, true)
	h.now = func() time.Time { return time.Unix(int64(thorChain.Repo().BestBlock().Timestamp), 0).Add(time.Hour) }

	status := h.Status()
	assert.True(t, status.Healthy)
	assert.True(t, status.OnDemand)
}
