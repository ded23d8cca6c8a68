// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/builtin/solidity"
	"github.com/fuelcell/generator/gen"
)

var (
	slotOwnerLists = gen.Blake2b([]byte("generator-owner-lists"))
	slotOwnerLinks = gen.Blake2b([]byte("generator-owner-links"))
)

// ownerList is the head of the token list of one owner. Head and Tail are only
// meaningful while Count is non zero.
type ownerList struct {
	Head  uint64
	Tail  uint64
	Count uint64
}

// link chains a staked token to its neighbours in the list of its owner.
type link struct {
	Prev    uint64
	Next    uint64
	HasPrev bool
	HasNext bool
}

// ownerIndex maps every owner to the tokens it has staked, in staking order.
// A token belongs to at most one list, so links are keyed by token alone.
type ownerIndex struct {
	lists *solidity.Mapping[gen.Address, *ownerList]
	links *solidity.Mapping[gen.TokenID, *link]
}

func newOwnerIndex(sctx *solidity.Context) *ownerIndex {
	return &ownerIndex{
		lists: solidity.NewMapping[gen.Address, *ownerList](sctx, slotOwnerLists),
		links: solidity.NewMapping[gen.TokenID, *link](sctx, slotOwnerLinks),
	}
}

func (x *ownerIndex) list(owner gen.Address) (*ownerList, error) {
	l, err := x.lists.Get(owner)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = &ownerList{}
	}
	return l, nil
}

// Add appends id to the end of the list of owner.
func (x *ownerIndex) Add(owner gen.Address, id gen.TokenID) error {
	l, err := x.list(owner)
	if err != nil {
		return err
	}

	entry := &link{}
	if l.Count == 0 {
		// the list is currently empty, set this entry to head & tail
		l.Head = uint64(id)
	} else {
		tail, err := x.links.Get(gen.TokenID(l.Tail))
		if err != nil {
			return err
		}
		if tail == nil {
			return errors.Errorf("owner index: missing tail link %d", l.Tail)
		}
		tail.Next, tail.HasNext = uint64(id), true
		if err := x.links.Set(gen.TokenID(l.Tail), tail); err != nil {
			return err
		}
		entry.Prev, entry.HasPrev = l.Tail, true
	}
	if err := x.links.Insert(id, entry); err != nil {
		return errors.Wrapf(err, "owner index: token %d", id)
	}

	l.Tail = uint64(id)
	l.Count++
	return x.lists.Set(owner, l)
}

// Remove unlinks id from the list of owner, reconnecting its neighbours.
func (x *ownerIndex) Remove(owner gen.Address, id gen.TokenID) error {
	entry, err := x.links.Get(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.Errorf("owner index: token %d not indexed", id)
	}
	l, err := x.list(owner)
	if err != nil {
		return err
	}
	if l.Count == 0 {
		return errors.Errorf("owner index: token %d not in list of %v", id, owner)
	}

	if entry.HasPrev {
		if err := x.relink(gen.TokenID(entry.Prev), func(prev *link) {
			prev.Next, prev.HasNext = entry.Next, entry.HasNext
		}); err != nil {
			return err
		}
	} else {
		l.Head = entry.Next
	}
	if entry.HasNext {
		if err := x.relink(gen.TokenID(entry.Next), func(next *link) {
			next.Prev, next.HasPrev = entry.Prev, entry.HasPrev
		}); err != nil {
			return err
		}
	} else {
		l.Tail = entry.Prev
	}
	x.links.Delete(id)

	l.Count--
	if l.Count == 0 {
		x.lists.Delete(owner)
		return nil
	}
	return x.lists.Set(owner, l)
}

func (x *ownerIndex) relink(id gen.TokenID, fn func(*link)) error {
	entry, err := x.links.Get(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.Errorf("owner index: missing link %d", id)
	}
	fn(entry)
	return x.links.Set(id, entry)
}

// Count returns the number of tokens indexed for owner.
func (x *ownerIndex) Count(owner gen.Address) (uint64, error) {
	l, err := x.list(owner)
	if err != nil {
		return 0, err
	}
	return l.Count, nil
}

// Iter calls fn for every token of owner from the oldest to the newest stake.
// fn must not modify the list of owner.
func (x *ownerIndex) Iter(owner gen.Address, fn func(gen.TokenID) error) error {
	l, err := x.list(owner)
	if err != nil {
		return err
	}
	if l.Count == 0 {
		return nil
	}

	cur := gen.TokenID(l.Head)
	for range l.Count {
		if err := fn(cur); err != nil {
			return err
		}
		entry, err := x.links.Get(cur)
		if err != nil {
			return err
		}
		if entry == nil {
			return errors.Errorf("owner index: missing link %d", cur)
		}
		if !entry.HasNext {
			break
		}
		cur = gen.TokenID(entry.Next)
	}
	return nil
}
