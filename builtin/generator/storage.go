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
	slotRecords     = gen.Blake2b([]byte("generator-records"))
	slotTotalStaked = gen.Blake2b([]byte("generator-total-staked"))
)

// ledger holds the stake record of every token in custody.
type ledger struct {
	records *solidity.Mapping[gen.TokenID, *StakeRecord]
	total   *solidity.Raw[uint64]
}

func newLedger(sctx *solidity.Context) *ledger {
	return &ledger{
		records: solidity.NewMapping[gen.TokenID, *StakeRecord](sctx, slotRecords),
		total:   solidity.NewRaw[uint64](sctx, slotTotalStaked),
	}
}

// get returns nil when the token has no record.
func (l *ledger) get(id gen.TokenID) (*StakeRecord, error) {
	rec, err := l.records.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get stake record")
	}
	return rec, nil
}

func (l *ledger) insert(id gen.TokenID, rec *StakeRecord) error {
	if err := l.records.Insert(id, rec); err != nil {
		return errors.Wrap(err, "insert stake record")
	}
	return l.adjustTotal(1)
}

func (l *ledger) update(id gen.TokenID, rec *StakeRecord) error {
	if err := l.records.Update(id, rec); err != nil {
		return errors.Wrap(err, "update stake record")
	}
	return nil
}

func (l *ledger) delete(id gen.TokenID) error {
	l.records.Delete(id)
	return l.adjustTotal(-1)
}

func (l *ledger) count() (uint64, error) {
	return l.total.Get()
}

func (l *ledger) adjustTotal(delta int) error {
	total, err := l.total.Get()
	if err != nil {
		return err
	}
	if delta < 0 && total == 0 {
		return errors.New("total staked underflow")
	}
	return l.total.Set(uint64(int64(total) + int64(delta)))
}
