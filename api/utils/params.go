// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/gen"
)

// AddressVar parses the path variable name as address.
func AddressVar(r *http.Request, name string) (gen.Address, error) {
	addr, err := gen.ParseAddress(mux.Vars(r)[name])
	if err != nil {
		return gen.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// TokenIDVar parses the path variable name as token id.
func TokenIDVar(r *http.Request, name string) (gen.TokenID, error) {
	id, err := gen.ParseTokenID(mux.Vars(r)[name])
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return id, nil
}
