// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"
	"time"

	"github.com/tetu-io/myrd-contracts/api"
	"github.com/tetu-io/myrd-contracts/api/utils"
)

// StartAPIServer serves the REST API on addr. Requests running longer than
// timeout are answered with 503.
func StartAPIServer(addr string, rt utils.Runtime, timeout time.Duration, opts api.Options) (*Server, error) {
	var handler http.Handler = api.New(rt, opts)
	if timeout > 0 {
		handler = http.TimeoutHandler(handler, timeout, "request timeout")
	}
	return start("API", addr, "", handler)
}
