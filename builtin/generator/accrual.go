// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"math/big"
)

// accrued returns the reward a record has earned between its last settlement and now.
// A nil record earns nothing.
func accrued(rec *StakeRecord, now uint32, rate *big.Int) *big.Int {
	if rec == nil || now <= rec.LastSettled {
		return new(big.Int)
	}
	elapsed := new(big.Int).SetUint64(uint64(now - rec.LastSettled))
	return elapsed.Mul(elapsed, rate)
}
