// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package energy

import (
	"math/big"

	"github.com/fuelcell/generator/gen"
)

// Minter mints energy acting as a fixed operator.
type Minter struct {
	energy   *Energy
	operator gen.Address
}

// Minter binds minting to operator. Mint fails unless operator has been added as minter.
func (e *Energy) Minter(operator gen.Address) *Minter {
	return &Minter{energy: e, operator: operator}
}

func (m *Minter) Mint(to gen.Address, amount *big.Int) error {
	return m.energy.Mint(m.operator, to, amount)
}
