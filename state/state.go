// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr gen.Address
	key  gen.Bytes32
}

// Bytes returns the key layout used in the backing store.
func (k storageKey) Bytes() []byte {
	return append(append(make([]byte, 0, gen.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages the storage of built-in contracts.
type State struct {
	src kv.Getter              // committed storage
	sm  *stackedmap.StackedMap // keeps revisions of storage
}

// New create state object.
func New(src kv.Getter) *State {
	state := State{src: src}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.sourceGetter(key)
	})
	return &state
}

// sourceGetter implements stackedmap.MapGetter.
func (s *State) sourceGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		raw, err := s.src.Get(k.Bytes())
		if err != nil {
			if s.src.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(raw), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr gen.Address, key gen.Bytes32) (gen.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return gen.Bytes32{}, err
	}
	if len(raw) == 0 {
		return gen.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return gen.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return gen.Blake2b(raw), nil
	}
	return gen.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr gen.Address, key, value gen.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr gen.Address, key gen.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr gen.Address, key gen.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr gen.Address, key gen.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr gen.Address, key gen.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to compute digest or commit all changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k, v any) bool {
		key, ok := k.(storageKey)
		if !ok {
			return true
		}
		if _, seen := changes[key]; !seen {
			order = append(order, key)
		}
		changes[key] = v.(rlp.RawValue)
		return true
	})
	return newStage(order, changes)
}
