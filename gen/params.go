// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gen

import "math/big"

// constants
const (
	BlockInterval uint64 = 10 // time interval between two consecutive blocks, in seconds.

	// DefaultRewardRate energy granted per staked fuel per block.
	DefaultRewardRate uint64 = 5
)

// InitialEnergySupply minted to the admin at genesis, 100 energy with 18 decimals.
var InitialEnergySupply = new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
