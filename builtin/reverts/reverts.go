// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the rejections a builtin contract call can end with.
// A revert leaves the state exactly as it was before the call.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind uint8

const (
	// Authorization means the caller lacks the rights for the operation.
	Authorization Kind = iota + 1
	// State means the target is in the wrong lifecycle state.
	State
	// Collaborator means a called contract declined the action.
	Collaborator
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case State:
		return "state"
	case Collaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

type ErrRevert struct {
	Kind    Kind
	message string
	cause   error
}

// NewAuthorizationError creates an authorization revert.
func NewAuthorizationError(format string, args ...any) *ErrRevert {
	return &ErrRevert{Kind: Authorization, message: fmt.Sprintf(format, args...)}
}

// NewStateError creates a lifecycle state revert.
func NewStateError(format string, args ...any) *ErrRevert {
	return &ErrRevert{Kind: State, message: fmt.Sprintf(format, args...)}
}

// WrapCollaborator marks err as raised by a collaborator contract. The message
// of err is kept as is. An error already marked as collaborator is returned unchanged.
func WrapCollaborator(err error) error {
	if err == nil {
		return nil
	}
	var re *ErrRevert
	if errors.As(err, &re) && re.Kind == Collaborator {
		return err
	}
	return &ErrRevert{Kind: Collaborator, cause: err}
}

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

// Unwrap returns the collaborator error, if any.
func (e *ErrRevert) Unwrap() error {
	return e.cause
}

// KindOf returns the kind of the outermost revert in err's chain.
func KindOf(err error) (Kind, bool) {
	var re *ErrRevert
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

func IsRevertErr(err error) bool {
	_, ok := KindOf(err)
	return ok
}

func IsAuthorization(err error) bool { return is(err, Authorization) }

func IsState(err error) bool { return is(err, State) }

func IsCollaborator(err error) bool { return is(err, Collaborator) }

func is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
