// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fuelcell/generator/builtin"
	"github.com/fuelcell/generator/builtin/params"
	"github.com/fuelcell/generator/gen"
)

// Config is the user defined genesis, usually loaded from yaml.
type Config struct {
	LaunchTime         uint64    `yaml:"launchTime"`
	ExtraData          string    `yaml:"extraData"`
	Admin              string    `yaml:"admin"`
	InitialSupply      *Amount   `yaml:"initialSupply"`
	RewardRate         *Amount   `yaml:"rewardRate"`
	AuthorizeGenerator bool      `yaml:"authorizeGenerator"`
	Accounts           []Account `yaml:"accounts"`
}

// Account is a pre-funded account.
type Account struct {
	Address string  `yaml:"address"`
	Energy  *Amount `yaml:"energy"`
	Fuel    uint64  `yaml:"fuel"` // count of fuel tokens minted to the account
}

// Amount is an integer written in decimal or 0x-prefixed hex.
type Amount math.HexOrDecimal256

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: amount must be a scalar", node.Line)
	}
	if err := (*math.HexOrDecimal256)(a).UnmarshalText([]byte(node.Value)); err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	return nil
}

// Big returns the amount as big.Int, nil receiver gives nil.
func (a *Amount) Big() *big.Int {
	if a == nil {
		return nil
	}
	return new(big.Int).Set((*big.Int)(a))
}

// LoadConfig reads the yaml genesis file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseConfig(data)
}

// ParseConfig decodes a yaml genesis. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &cfg, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(cfg *Config) (*Genesis, error) {
	if cfg.LaunchTime == 0 {
		return nil, errors.New("launch time must be set")
	}
	admin, err := gen.ParseAddress(cfg.Admin)
	if err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	if admin.IsZero() {
		return nil, errors.New("admin must not be the zero address")
	}

	var extra [28]byte
	if len(cfg.ExtraData) > len(extra) {
		return nil, errors.New("extraData too long")
	}
	copy(extra[:], cfg.ExtraData)

	supply := gen.InitialEnergySupply
	if cfg.InitialSupply != nil {
		supply = cfg.InitialSupply.Big()
	}
	rate := new(big.Int).SetUint64(gen.DefaultRewardRate)
	if cfg.RewardRate != nil {
		rate = cfg.RewardRate.Big()
	}
	if supply.Sign() < 0 || rate.Sign() < 0 {
		return nil, errors.New("initialSupply and rewardRate must not be negative")
	}

	type alloc struct {
		addr   gen.Address
		energy *big.Int
		fuel   uint64
	}
	allocs := make([]alloc, 0, len(cfg.Accounts))
	for i, acc := range cfg.Accounts {
		addr, err := gen.ParseAddress(acc.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "account %d", i)
		}
		energy := acc.Energy.Big()
		if energy != nil && energy.Sign() < 0 {
			return nil, errors.Errorf("account %d: negative energy", i)
		}
		allocs = append(allocs, alloc{addr, energy, acc.Fuel})
	}

	builder := new(Builder).
		Timestamp(cfg.LaunchTime).
		ExtraData(extra).
		Contracts(func(c *builtin.Contracts) error {
			if err := c.Params.Set(params.KeyRewardRate, rate); err != nil {
				return err
			}
			if err := c.Energy.Initialize(admin, supply); err != nil {
				return err
			}
			c.Fuel.SetAdmin(admin)
			if cfg.AuthorizeGenerator {
				if err := c.Energy.AddMinter(admin, builtin.Generator.Address); err != nil {
					return err
				}
			}
			for _, a := range allocs {
				if a.energy != nil && a.energy.Sign() > 0 {
					if err := c.Energy.Mint(admin, a.addr, a.energy); err != nil {
						return errors.Wrapf(err, "mint energy to %v", a.addr)
					}
				}
				for range a.fuel {
					if _, err := c.Fuel.Mint(admin, a.addr); err != nil {
						return errors.Wrapf(err, "mint fuel to %v", a.addr)
					}
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet"}, nil
}
