// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/api"
	"github.com/tetu-io/myrd-contracts/test/testchain"
)

func TestStartAdminServer(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	var apiLogs atomic.Bool

	srv, err := StartAdminServer("localhost:0", &level, &apiLogs)
	require.NoError(t, err)
	defer srv.Close()

	res, err := http.Get(srv.URL() + "/loglevel")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		CurrentLevel string `json:"currentLevel"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "warn", body.CurrentLevel)
}

func TestStartAPIServer(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	srv, err := StartAPIServer("localhost:0", chain.Runtime(), time.Second, api.Options{})
	require.NoError(t, err)

	res, err := http.Get(srv.URL() + "/xmyrd")
	require.NoError(t, err)
	data, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(data), "totalSupply")

	require.NoError(t, srv.Close())
	_, err = http.Get(srv.URL() + "/xmyrd")
	assert.Error(t, err)
}

func TestStartServer_BadAddr(t *testing.T) {
	_, err := StartMetricsServer("256.0.0.1:bad")
	assert.Error(t, err)
}
