// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"context"
	"net/http"

	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/runtime"
)

// Runtime is the part of the runtime the handlers use.
type Runtime interface {
	Execute(ctx context.Context, method string, caller myrd.Address, fn runtime.Transition) (*runtime.Receipt, error)
	View(caller myrd.Address, fn runtime.Transition) error
}

// Transact executes fn as a transition of caller and responds with its receipt.
// A reverted transition is still a 200 response, with reverted set in the receipt.
func Transact(w http.ResponseWriter, req *http.Request, rt Runtime, method string, caller myrd.Address, fn runtime.Transition) error {
	receipt, err := rt.Execute(req.Context(), method, caller, fn)
	if err != nil {
		return err
	}
	return WriteJSON(w, receipt)
}
