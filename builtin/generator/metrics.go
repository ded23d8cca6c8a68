// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"math/big"

	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/metrics"
)

var (
	metricOperations = metrics.LazyLoadCounterVec("generator_operations_count", []string{"op", "result"})
	metricRewards    = metrics.LazyLoadCounter("generator_rewards_minted_count")
	metricCustody    = metrics.LazyLoadGauge("generator_tokens_in_custody")
)

func observeOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if kind, ok := reverts.KindOf(err); ok {
			result = kind.String()
		}
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": result})
}

func observeReward(amount *big.Int) {
	if amount.IsInt64() {
		metricRewards().Add(amount.Int64())
	}
}

func (g *Generator) observeCustody() {
	if total, err := g.ledger.count(); err == nil {
		metricCustody().Set(int64(total))
	}
}
