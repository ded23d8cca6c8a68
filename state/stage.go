// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/kv"
)

// Stage abstracts changes on the storage.
type Stage struct {
	keys    []storageKey
	changes map[storageKey]rlp.RawValue
}

func newStage(keys []storageKey, changes map[storageKey]rlp.RawValue) *Stage {
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) < 0
	})
	return &Stage{keys, changes}
}

// Len returns the count of changed storage slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Digest computes the digest of the changes chained on parent.
func (s *Stage) Digest(parent gen.Bytes32) gen.Bytes32 {
	return gen.Blake2bFn(func(w io.Writer) {
		w.Write(parent[:])
		for _, k := range s.keys {
			w.Write(k.Bytes())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes into the batch. Empty values delete the slot.
// The batch is not written.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, k := range s.keys {
		v := s.changes[k]
		if len(v) == 0 {
			if err := putter.Delete(k.Bytes()); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := putter.Put(k.Bytes(), v); err != nil {
			return &Error{err}
		}
	}
	return nil
}
