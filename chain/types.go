// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fuelcell/generator/gen"
)

// Header is the header of a sealed block.
type Header struct {
	Number      uint32
	Timestamp   uint64
	ParentID    gen.Bytes32
	StateDigest gen.Bytes32 // digest of the state changes chained on the parent digest
	Calls       uint32      // number of executed calls
	Events      uint32      // number of emitted events
}

// ID returns the blake2b hash of the rlp encoded header.
func (h *Header) ID() gen.Bytes32 {
	data, _ := rlp.EncodeToBytes(h)
	return gen.Blake2b(data)
}

func numberKey(num uint32) []byte {
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], num)
	return key[:]
}
