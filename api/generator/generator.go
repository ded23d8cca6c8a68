// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package generator

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/api/utils"
	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/runtime"
)

// Executor runs calls and queries against the pending block.
type Executor interface {
	utils.Executor
	View(fn func(c *builtin.Contracts) error) error
}

type Generator struct {
	exec Executor
}

func New(exec Executor) *Generator {
	return &Generator{exec}
}

func parseStake(r *http.Request) (*StakeRequest, error) {
	var req StakeRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Caller.IsZero() {
		return nil, utils.BadRequest(errors.New("body: caller required"))
	}
	return &req, nil
}

func (g *Generator) handleStake(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStake(r)
	if err != nil {
		return err
	}
	return utils.Execute(w, g.exec, req.Caller, runtime.StakeCall{TokenID: req.TokenID})
}

func (g *Generator) handleUnstake(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStake(r)
	if err != nil {
		return err
	}
	return utils.Execute(w, g.exec, req.Caller, runtime.UnstakeCall{TokenID: req.TokenID})
}

func (g *Generator) handleClaim(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStake(r)
	if err != nil {
		return err
	}
	return utils.Execute(w, g.exec, req.Caller, runtime.ClaimCall{TokenID: req.TokenID})
}

func (g *Generator) handleClaimAll(w http.ResponseWriter, r *http.Request) error {
	var req ClaimAllRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Caller.IsZero() {
		return utils.BadRequest(errors.New("body: caller required"))
	}
	return utils.Execute(w, g.exec, req.Caller, runtime.ClaimAllCall{})
}

func (g *Generator) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var summary Summary
	if err := g.exec.View(func(c *builtin.Contracts) error {
		total, err := c.Generator.TotalStaked()
		if err != nil {
			return err
		}
		summary = Summary{
			Address:     c.Generator.Address(),
			RewardRate:  (*math.HexOrDecimal256)(c.Generator.RewardRate()),
			TotalStaked: total,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &summary)
}

func (g *Generator) handleGetStaker(w http.ResponseWriter, r *http.Request) error {
	id, err := utils.TokenIDVar(r, "id")
	if err != nil {
		return err
	}
	var resp Staker
	if err := g.exec.View(func(c *builtin.Contracts) error {
		staker, ok, err := c.Generator.StakerOf(id)
		if err != nil {
			return err
		}
		resp.Staked = ok
		if ok {
			resp.Staker = &staker
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (g *Generator) handleGetHeld(w http.ResponseWriter, r *http.Request) error {
	id, err := utils.TokenIDVar(r, "id")
	if err != nil {
		return err
	}
	var resp Held
	if err := g.exec.View(func(c *builtin.Contracts) (err error) {
		resp.Held, err = c.Generator.IsHeldByEngine(id)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (g *Generator) handleGetOwner(w http.ResponseWriter, r *http.Request) error {
	owner, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	var resp Owner
	if err := g.exec.View(func(c *builtin.Contracts) error {
		total, err := c.Generator.TotalStakedBy(owner)
		if err != nil {
			return err
		}
		tokens, err := c.Generator.TokensOf(owner)
		if err != nil {
			return err
		}
		pending, err := c.Generator.AllPendingRewardsOf(owner)
		if err != nil {
			return err
		}
		if tokens == nil {
			tokens = []gen.TokenID{}
		}
		resp = Owner{Total: total, Tokens: tokens, Pending: (*math.HexOrDecimal256)(pending)}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (g *Generator) handleGetPending(w http.ResponseWriter, r *http.Request) error {
	owner, err := utils.AddressVar(r, "address")
	if err != nil {
		return err
	}
	id, err := utils.TokenIDVar(r, "id")
	if err != nil {
		return err
	}
	var pending *big.Int
	if err := g.exec.View(func(c *builtin.Contracts) (err error) {
		pending, err = c.Generator.PendingRewardOf(owner, id)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Pending{(*math.HexOrDecimal256)(pending)})
}

func (g *Generator) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /generator").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetSummary))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /generator/stake").
		HandlerFunc(utils.WrapHandlerFunc(g.handleStake))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /generator/unstake").
		HandlerFunc(utils.WrapHandlerFunc(g.handleUnstake))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /generator/claim").
		HandlerFunc(utils.WrapHandlerFunc(g.handleClaim))
	sub.Path("/claim-all").
		Methods(http.MethodPost).
		Name("POST /generator/claim-all").
		HandlerFunc(utils.WrapHandlerFunc(g.handleClaimAll))
	sub.Path("/staker/{id}").
		Methods(http.MethodGet).
		Name("GET /generator/staker/{id}").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetStaker))
	sub.Path("/held/{id}").
		Methods(http.MethodGet).
		Name("GET /generator/held/{id}").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetHeld))
	sub.Path("/owners/{address}").
		Methods(http.MethodGet).
		Name("GET /generator/owners/{address}").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetOwner))
	sub.Path("/owners/{address}/pending/{id}").
		Methods(http.MethodGet).
		Name("GET /generator/owners/{address}/pending/{id}").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetPending))
}
