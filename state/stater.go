// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/fuelcell/generator/kv"
)

const storageBucket = kv.Bucket("s.")

// Stater is the state creator.
type Stater struct {
	store kv.Store
}

// NewStater create a new stater. States live in their own bucket of store.
func NewStater(store kv.Store) *Stater {
	return &Stater{storageBucket.NewStore(store)}
}

// CommitTo writes the stage through w, which puts into the store the stater was
// created with. Used to commit state along with other data in one batch.
func CommitTo(w kv.Putter, stage *Stage) error {
	return stage.Commit(storageBucket.NewPutter(w))
}

// NewState create a new state object over the committed storage.
func (s *Stater) NewState() *State {
	return New(s.store)
}

// Commit writes the stage atomically.
func (s *Stater) Commit(stage *Stage) error {
	batch := s.store.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}
