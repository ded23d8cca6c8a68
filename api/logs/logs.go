// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/api/utils"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/logdb"
)

type Logs struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Logs {
	return &Logs{
		db,
		logsLimit,
	}
}

func parseUint(q url.Values, key string, bits int) (uint64, bool, error) {
	s := q.Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, false, utils.BadRequest(errors.WithMessage(err, key))
	}
	return v, true, nil
}

func (l *Logs) parseFilter(q url.Values) (*logdb.EventFilter, error) {
	filter := &logdb.EventFilter{Name: q.Get("name")}

	if s := q.Get("owner"); s != "" {
		owner, err := gen.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "owner"))
		}
		filter.Owner = &owner
	}
	if s := q.Get("token"); s != "" {
		id, err := gen.ParseTokenID(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "token"))
		}
		filter.TokenID = &id
	}

	from, hasFrom, err := parseUint(q, "from", 32)
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseUint(q, "to", 32)
	if err != nil {
		return nil, err
	}
	if hasFrom || hasTo {
		if !hasTo {
			to = math.MaxUint32
		}
		if to < from {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
		filter.Range = &logdb.Range{From: uint32(from), To: uint32(to)}
	}

	switch order := logdb.Order(q.Get("order")); order {
	case "", logdb.ASC:
		filter.Order = logdb.ASC
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unsupported value %q", order))
	}

	offset, _, err := parseUint(q, "offset", 63)
	if err != nil {
		return nil, err
	}
	limit, hasLimit, err := parseUint(q, "limit", 64)
	if err != nil {
		return nil, err
	}
	if limit > l.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", l.limit))
	}
	if !hasLimit {
		// one extra row detects results larger than the cap
		limit = l.limit + 1
	}
	filter.Options = &logdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (l *Logs) handleFilterGenerator(w http.ResponseWriter, req *http.Request) error {
	filter, err := l.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	events, err := l.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	if len(events) > int(l.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}

	fes := make([]*FilteredEvent, len(events))
	for i, e := range events {
		fes[i] = convertEvent(e)
	}
	return utils.WriteJSON(w, fes)
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/generator").
		Methods(http.MethodGet).
		Name("GET /logs/generator").
		HandlerFunc(utils.WrapHandlerFunc(l.handleFilterGenerator))
}
