// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fuel

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/api/utils"
	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/builtin/reverts"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/runtime"
)

// Executor runs calls and queries against the pending block.
type Executor interface {
	utils.Executor
	View(fn func(c *builtin.Contracts) error) error
}

type Fuel struct {
	exec Executor
}

func New(exec Executor) *Fuel {
	return &Fuel{exec}
}

func parseBody(r *http.Request, v any, caller *gen.Address) error {
	if err := utils.ParseJSON(r.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if caller.IsZero() {
		return utils.BadRequest(errors.New("body: caller required"))
	}
	return nil
}

func (f *Fuel) handleMint(w http.ResponseWriter, r *http.Request) error {
	var req MintRequest
	if err := parseBody(r, &req, &req.Caller); err != nil {
		return err
	}
	return utils.Execute(w, f.exec, req.Caller, runtime.MintFuelCall{To: req.To})
}

func (f *Fuel) handleApprove(w http.ResponseWriter, r *http.Request) error {
	var req ApproveRequest
	if err := parseBody(r, &req, &req.Caller); err != nil {
		return err
	}
	return utils.Execute(w, f.exec, req.Caller, runtime.ApproveCall{To: req.To, TokenID: req.TokenID})
}

func (f *Fuel) handleApproveAll(w http.ResponseWriter, r *http.Request) error {
	var req ApproveAllRequest
	if err := parseBody(r, &req, &req.Caller); err != nil {
		return err
	}
	return utils.Execute(w, f.exec, req.Caller, runtime.SetApprovalForAllCall{Operator: req.Operator, Approved: req.Approved})
}

func (f *Fuel) handleTransfer(w http.ResponseWriter, r *http.Request) error {
	var req TransferRequest
	if err := parseBody(r, &req, &req.Caller); err != nil {
		return err
	}
	return utils.Execute(w, f.exec, req.Caller, runtime.TransferFuelCall{From: req.From, To: req.To, TokenID: req.TokenID})
}

// view runs fn, unminted tokens respond 404.
func (f *Fuel) view(fn func(c *builtin.Contracts) error) error {
	err := f.exec.View(fn)
	if reverts.IsState(err) {
		return utils.NotFound(err)
	}
	return err
}

func (f *Fuel) handleGetOwner(w http.ResponseWriter, r *http.Request) error {
	id, err := utils.TokenIDVar(r, "id")
	if err != nil {
		return err
	}
	var resp Owner
	if err := f.view(func(c *builtin.Contracts) (err error) {
		resp.Owner, err = c.Fuel.OwnerOf(id)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Fuel) handleGetApproved(w http.ResponseWriter, r *http.Request) error {
	id, err := utils.TokenIDVar(r, "id")
	if err != nil {
		return err
	}
	var resp Approved
	if err := f.view(func(c *builtin.Contracts) (err error) {
		resp.Approved, err = c.Fuel.GetApproved(id)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Fuel) handleGetBalance(w http.ResponseWriter, r *http.Request) error {
	owner, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	var resp Balance
	if err := f.view(func(c *builtin.Contracts) (err error) {
		resp.Balance, err = c.Fuel.BalanceOf(owner)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Fuel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("POST /fuel/mint").
		HandlerFunc(utils.WrapHandlerFunc(f.handleMint))
	sub.Path("/approve").
		Methods(http.MethodPost).
		Name("POST /fuel/approve").
		HandlerFunc(utils.WrapHandlerFunc(f.handleApprove))
	sub.Path("/approve-all").
		Methods(http.MethodPost).
		Name("POST /fuel/approve-all").
		HandlerFunc(utils.WrapHandlerFunc(f.handleApproveAll))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("POST /fuel/transfer").
		HandlerFunc(utils.WrapHandlerFunc(f.handleTransfer))
	sub.Path("/{id:[0-9]+}/owner").
		Methods(http.MethodGet).
		Name("GET /fuel/{id}/owner").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetOwner))
	sub.Path("/{id:[0-9]+}/approved").
		Methods(http.MethodGet).
		Name("GET /fuel/{id}/approved").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetApproved))
	sub.Path("/owners/{address}/balance").
		Methods(http.MethodGet).
		Name("GET /fuel/owners/{address}/balance").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetBalance))
}
