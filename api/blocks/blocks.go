// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/api/utils"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/log"
)

var logger = log.WithContext("pkg", "blocks")

// Sealer seals the pending block on request.
type Sealer interface {
	OnDemand() bool
	Seal() (*chain.Header, error)
}

type Blocks struct {
	repo   *chain.Repository
	sealer Sealer
}

func New(repo *chain.Repository, sealer Sealer) *Blocks {
	return &Blocks{
		repo,
		sealer,
	}
}

func (b *Blocks) handleGetBest(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, convertBlock(b.repo.BestBlock()))
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	num, err := strconv.ParseUint(mux.Vars(req)["number"], 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "number"))
	}
	h, err := b.repo.GetHeader(uint32(num))
	if err != nil {
		if b.repo.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, convertBlock(h))
}

func (b *Blocks) handleSeal(w http.ResponseWriter, _ *http.Request) error {
	if !b.sealer.OnDemand() {
		return utils.Forbidden(errors.New("blocks are sealed on interval"))
	}
	h, err := b.sealer.Seal()
	if err != nil {
		if h == nil {
			return err
		}
		// sealed, only its event logs are missing
		logger.Warn("sealed block without logs", "number", h.Number, "err", err)
	}
	return utils.WriteJSON(w, convertBlock(h))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/best").
		Methods(http.MethodGet).
		Name("GET /blocks/best").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBest))
	sub.Path("/{number:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /blocks/{number}").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /blocks").
		HandlerFunc(utils.WrapHandlerFunc(b.handleSeal))
}
