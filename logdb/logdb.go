// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/gen"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// every connection of ":memory:" opens a distinct database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the linked sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewestBlockNumber returns the number of the newest block which has events written.
func (db *LogDB) NewestBlockNumber() (uint32, bool, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, false, err
	}
	if !seq.Valid {
		return 0, false, nil
	}
	return sequence(seq.Int64).BlockNumber(), true, nil
}

// Prepare starts a batch collecting events of the given block.
func (db *LogDB) Prepare(blockNum uint32) *BlockBatch {
	return &BlockBatch{
		db:       db.db,
		blockNum: blockNum,
	}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, name, owner, tokenID, amount FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		args = append(args, newSequence(filter.Range.From, 0))
		stmt += " AND seq >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, newSequence(filter.Range.To, math.MaxInt32))
			stmt += " AND seq <= ?"
		}
	}
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ?"
	}
	if filter.TokenID != nil {
		args = append(args, filter.TokenID.Bytes())
		stmt += " AND tokenID = ?"
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			name    string
			owner   []byte
			tokenID []byte
			amount  sql.NullString
		)
		if err := rows.Scan(
			&seq,
			&name,
			&owner,
			&tokenID,
			&amount,
		); err != nil {
			return nil, err
		}
		event := &Event{
			BlockNumber: sequence(seq).BlockNumber(),
			Index:       sequence(seq).Index(),
			Name:        name,
			Owner:       gen.BytesToAddress(owner),
		}
		if len(tokenID) > 0 {
			id := gen.TokenID(binary.BigEndian.Uint64(tokenID))
			event.TokenID = &id
		}
		if amount.Valid {
			v, ok := new(big.Int).SetString(amount.String, 10)
			if !ok {
				return nil, errors.Errorf("invalid amount %q", amount.String)
			}
			event.Amount = v
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// BlockBatch collects the events of one block and writes them in a single transaction.
type BlockBatch struct {
	db       *sql.DB
	blockNum uint32
	events   []*Event
}

// Insert appends an event, indexed in insertion order.
func (bb *BlockBatch) Insert(name string, owner gen.Address, tokenID *gen.TokenID, amount *big.Int) *BlockBatch {
	ev := &Event{
		BlockNumber: bb.blockNum,
		Index:       uint32(len(bb.events)),
		Name:        name,
		Owner:       owner,
	}
	if tokenID != nil {
		id := *tokenID
		ev.TokenID = &id
	}
	if amount != nil {
		ev.Amount = new(big.Int).Set(amount)
	}
	bb.events = append(bb.events, ev)
	return bb
}

// Len returns the count of collected events.
func (bb *BlockBatch) Len() int {
	return len(bb.events)
}

func (bb *BlockBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := bb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Commit writes the collected events. Events previously written for the same
// block are replaced.
func (bb *BlockBatch) Commit() error {
	err := bb.execInTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM event WHERE seq BETWEEN ? AND ?",
			newSequence(bb.blockNum, 0),
			newSequence(bb.blockNum, math.MaxInt32),
		); err != nil {
			return err
		}
		for _, event := range bb.events {
			var (
				tokenID []byte
				amount  sql.NullString
			)
			if event.TokenID != nil {
				tokenID = event.TokenID.Bytes()
			}
			if event.Amount != nil {
				amount = sql.NullString{String: event.Amount.String(), Valid: true}
			}
			if _, err := tx.Exec("INSERT INTO event(seq, blockNumber, eventIndex, name, owner, tokenID, amount) VALUES (?, ?, ?, ?, ?, ?, ?)",
				newSequence(event.BlockNumber, event.Index),
				event.BlockNumber,
				event.Index,
				event.Name,
				event.Owner.Bytes(),
				tokenID,
				amount,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "commit events of block %d", bb.blockNum)
	}
	metricWrittenEvents().Add(int64(len(bb.events)))
	return nil
}
