// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/state"
)

// Builder helper to build genesis block.
type Builder struct {
	timestamp uint64

	stateProcs    []func(state *state.State) error
	contractProcs []func(c *builtin.Contracts) error
	extraData     [28]byte
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Contracts add a process run against the builtin contracts, after all state processes.
func (b *Builder) Contracts(proc func(c *builtin.Contracts) error) *Builder {
	b.contractProcs = append(b.contractProcs, proc)
	return b
}

// ExtraData set extra data, which will be put into last 28 bytes of genesis parent id.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (gen.Bytes32, error) {
	header, _, err := b.Build()
	if err != nil {
		return gen.Bytes32{}, err
	}
	return header.ID(), nil
}

// Build build genesis block according to presets. The state is built over an
// empty store; the returned stage holds all of it.
func (b *Builder) Build() (*chain.Header, *state.Stage, error) {
	mem, err := lvldb.NewMem()
	if err != nil {
		return nil, nil, err
	}
	defer mem.Close()

	st := state.NewStater(mem).NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, nil, errors.Wrap(err, "state process")
		}
	}

	if len(b.contractProcs) > 0 {
		// no operation depends on the clock at genesis
		contracts, err := builtin.New(st, genesisClock{})
		if err != nil {
			return nil, nil, errors.Wrap(err, "bind contracts")
		}
		for _, proc := range b.contractProcs {
			if err := proc(contracts); err != nil {
				return nil, nil, errors.Wrap(err, "contract process")
			}
		}
	}

	stage := st.Stage()

	parentID := gen.Bytes32{0xff, 0xff, 0xff, 0xff} //so, genesis number is 0
	copy(parentID[4:], b.extraData[:])

	return &chain.Header{
		Number:      0,
		Timestamp:   b.timestamp,
		ParentID:    parentID,
		StateDigest: stage.Digest(gen.Bytes32{}),
	}, stage, nil
}

type genesisClock struct{}

func (genesisClock) BlockNumber() uint32 { return 0 }
