// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fuel

import "github.com/fuelcell/generator/gen"

// Custody moves fuel in and out of the custody of one holder, acting as that holder.
type Custody struct {
	fuel   *Fuel
	holder gen.Address
}

// Custody binds the token to the custody address holder.
func (f *Fuel) Custody(holder gen.Address) *Custody {
	return &Custody{fuel: f, holder: holder}
}

// TransferToCustody pulls the token from its owner. The holder must be approved for
// the token or be an operator of from.
func (c *Custody) TransferToCustody(id gen.TokenID, from gen.Address) error {
	return c.fuel.TransferFrom(c.holder, from, c.holder, id)
}

func (c *Custody) TransferFromCustody(id gen.TokenID, to gen.Address) error {
	return c.fuel.TransferFrom(c.holder, c.holder, to, id)
}

func (c *Custody) CurrentHolder(id gen.TokenID) (gen.Address, error) {
	return c.fuel.OwnerOf(id)
}
