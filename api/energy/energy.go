// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package energy

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/api/utils"
	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/runtime"
)

// Executor runs calls and queries against the pending block.
type Executor interface {
	utils.Executor
	View(fn func(c *builtin.Contracts) error) error
}

type Energy struct {
	exec Executor
}

func New(exec Executor) *Energy {
	return &Energy{exec}
}

func (e *Energy) handleAddMinter(w http.ResponseWriter, r *http.Request) error {
	var req AddMinterRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Caller.IsZero() || req.Minter.IsZero() {
		return utils.BadRequest(errors.New("body: caller and minter required"))
	}
	return utils.Execute(w, e.exec, req.Caller, runtime.AddMinterCall{Minter: req.Minter})
}

func (e *Energy) handleRemoveMinter(w http.ResponseWriter, r *http.Request) error {
	minter, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	var req RemoveMinterRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Caller.IsZero() {
		return utils.BadRequest(errors.New("body: caller required"))
	}
	return utils.Execute(w, e.exec, req.Caller, runtime.RemoveMinterCall{Minter: minter})
}

func (e *Energy) handleTransfer(w http.ResponseWriter, r *http.Request) error {
	var req TransferRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Caller.IsZero() {
		return utils.BadRequest(errors.New("body: caller required"))
	}
	if req.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	return utils.Execute(w, e.exec, req.Caller, runtime.TransferEnergyCall{To: req.To, Amount: (*big.Int)(req.Amount)})
}

func (e *Energy) handleGetBalance(w http.ResponseWriter, r *http.Request) error {
	addr, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	var bal *big.Int
	if err := e.exec.View(func(c *builtin.Contracts) (err error) {
		bal, err = c.Energy.BalanceOf(addr)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{(*math.HexOrDecimal256)(bal)})
}

func (e *Energy) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	var supply *big.Int
	if err := e.exec.View(func(c *builtin.Contracts) (err error) {
		supply, err = c.Energy.TotalSupply()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Supply{(*math.HexOrDecimal256)(supply)})
}

func (e *Energy) handleGetMinter(w http.ResponseWriter, r *http.Request) error {
	addr, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	var resp Minter
	if err := e.exec.View(func(c *builtin.Contracts) (err error) {
		resp.Minter, err = c.Energy.IsMinter(addr)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (e *Energy) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/minters").
		Methods(http.MethodPost).
		Name("POST /energy/minters").
		HandlerFunc(utils.WrapHandlerFunc(e.handleAddMinter))
	sub.Path("/minters/{address}").
		Methods(http.MethodDelete).
		Name("DELETE /energy/minters/{address}").
		HandlerFunc(utils.WrapHandlerFunc(e.handleRemoveMinter))
	sub.Path("/minters/{address}").
		Methods(http.MethodGet).
		Name("GET /energy/minters/{address}").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetMinter))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("POST /energy/transfer").
		HandlerFunc(utils.WrapHandlerFunc(e.handleTransfer))
	sub.Path("/supply").
		Methods(http.MethodGet).
		Name("GET /energy/supply").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetSupply))
	sub.Path("/{address}/balance").
		Methods(http.MethodGet).
		Name("GET /energy/{address}/balance").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetBalance))
}
