// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/metrics"
)

var (
	metricCallDuration = metrics.LazyLoadHistogramVec(
		"runtime_call_duration_ms", []string{"call", "result"}, metrics.BucketHTTPReqs,
	)
	metricSealedBlocks = metrics.LazyLoadCounter("runtime_sealed_blocks_count")
)

func observeCall(name string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
		if kind, ok := reverts.KindOf(err); ok {
			result = kind.String()
		}
	}
	metricCallDuration().ObserveWithLabels(elapsed.Milliseconds(), map[string]string{"call": name, "result": result})
}
