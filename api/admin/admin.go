// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tetu-io/myrd-contracts/api/admin/loglevel"
	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/log"
)

// RequestLogging is the body of both requests and responses on /admin/apilogs.
type RequestLogging struct {
	Enabled bool `json:"enabled"`
}

// New returns the admin router: log verbosity and request logging toggles.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	mountRequestLogging(sub, apiLogs)

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}

// mountRequestLogging exposes the switch read by the API request logger.
func mountRequestLogging(root *mux.Router, enabled *atomic.Bool) {
	current := func(w http.ResponseWriter) error {
		return utils.WriteJSON(w, RequestLogging{Enabled: enabled.Load()})
	}

	root.Path("/apilogs").
		Methods(http.MethodGet).
		Name("get-request-logging").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
			return current(w)
		}))

	root.Path("/apilogs").
		Methods(http.MethodPost).
		Name("post-request-logging").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			var req RequestLogging
			if err := utils.ParseJSON(r.Body, &req); err != nil {
				return utils.BadRequest(err)
			}
			if prev := enabled.Swap(req.Enabled); prev != req.Enabled {
				log.Info("request logging switched", "pkg", "admin", "enabled", req.Enabled)
			}
			return current(w)
		}))
}
