// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/fuelcell/generator/gen"
)

func RandomHash() gen.Bytes32 {
	var b32 gen.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() gen.Address {
	var addr gen.Address

	rand.Read(addr[:])
	return addr
}

func RandAddresses(n int) []gen.Address {
	addrs := make([]gen.Address, n)
	for i := range addrs {
		addrs[i] = RandAddress()
	}
	return addrs
}
