// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/log"
)

func TestRequestLogging(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		start          bool
		body           string
		expectedStatus int
		expected       bool
	}{
		{"enable", http.MethodPost, false, `{"enabled":true}`, http.StatusOK, true},
		{"disable", http.MethodPost, true, `{"enabled":false}`, http.StatusOK, false},
		{"unchanged", http.MethodPost, true, `{"enabled":true}`, http.StatusOK, true},
		{"get", http.MethodGet, true, "", http.StatusOK, true},
		{"unknown field", http.MethodPost, true, `{"on":false}`, http.StatusBadRequest, true},
		{"malformed", http.MethodPost, false, `{`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enabled atomic.Bool
			enabled.Store(tt.start)

			req := httptest.NewRequest(tt.method, "/admin/apilogs", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			New(new(slog.LevelVar), &enabled).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expected, enabled.Load())
			if tt.expectedStatus == http.StatusOK {
				var resp RequestLogging
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expected, resp.Enabled)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	var level slog.LevelVar
	level.Set(log.LevelInfo)
	handler := New(&level, new(atomic.Bool))

	body, err := json.Marshal(map[string]string{"level": "debug"})
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/loglevel", bytes.NewReader(body)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, log.LevelDebug, level.Level())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/admin/apilogs", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
