// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/tetu-io/myrd-contracts/metrics"
)

const (
	outcomeOK     = "ok"
	outcomeRevert = "revert"
	outcomeError  = "error"
)

var (
	metricTransitionCount    = metrics.LazyLoadCounterVec("transition_count", []string{"method", "outcome"})
	metricTransitionDuration = metrics.LazyLoadHistogramVec(
		"transition_duration_ms", []string{"method"}, []int64{0, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
	)
)

func observe(method, outcome string, start time.Time) {
	metricTransitionCount().AddWithLabel(1, map[string]string{"method": method, "outcome": outcome})
	metricTransitionDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": method})
}
