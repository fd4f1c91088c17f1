// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	Counter("c").Add(1)
	CounterVec("cv", []string{"l"}).AddWithLabel(1, map[string]string{"nonsense": "ok"})
	GaugeVec("gv", []string{"l"}).SetWithLabel(1, nil)
	HistogramVec("hv", []string{"l"}, nil).ObserveWithLabels(1, nil)

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("prom_count").Add(2)
	Counter("prom_count").Add(3)

	cv := CounterVec("prom_count_vec", []string{"outcome"})
	cv.AddWithLabel(1, map[string]string{"outcome": "ok"})
	cv.AddWithLabel(4, map[string]string{"outcome": "revert"})

	g := Gauge("prom_gauge")
	g.Set(10)
	g.Add(-3)

	GaugeVec("prom_gauge_vec", []string{"k"}).SetWithLabel(7, map[string]string{"k": "a"})
	HistogramVec("prom_hist", []string{"k"}, BucketHTTPReqs).ObserveWithLabels(20, map[string]string{"k": "a"})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	assert.Equal(t, float64(5), byName["myrd_prom_count"].Metric[0].GetCounter().GetValue())

	vec := byName["myrd_prom_count_vec"]
	require.Len(t, vec.Metric, 2)
	assert.Equal(t, float64(5), vec.Metric[0].GetCounter().GetValue()+vec.Metric[1].GetCounter().GetValue())

	assert.Equal(t, float64(7), byName["myrd_prom_gauge"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(7), byName["myrd_prom_gauge_vec"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(20), byName["myrd_prom_hist"].Metric[0].GetHistogram().GetSampleSum())
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	lazyCounter := LazyLoadCounter("lazy_counter")
	lazyCounterVec := LazyLoadCounterVec("lazy_counter_vec", nil)
	lazyGauge := LazyLoadGauge("lazy_gauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazy_gauge_vec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazy_hist_vec", nil, nil)

	InitializePrometheusMetrics()

	assert.IsType(t, &promCountMeter{}, lazyCounter())
	assert.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	assert.IsType(t, &promGaugeMeter{}, lazyGauge())
	assert.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	assert.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
