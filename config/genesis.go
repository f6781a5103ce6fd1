package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/holiman/uint256"
	"github.com/spf13/afero"

	"github.com/trollup/go-trollup/common/types"
)

// GenesisConfig lists the accounts funded in the initial state.
type GenesisConfig struct {
	// Accounts maps a hex address to a decimal balance.
	Accounts map[string]string `mapstructure:"accounts" json:"accounts"`
}

// ToAccounts parses the configured accounts.
func (g *GenesisConfig) ToAccounts() ([]types.Account, error) {
	accounts := make([]types.Account, 0, len(g.Accounts))
	seen := make(map[types.Address]struct{}, len(g.Accounts))
	for addr, balance := range g.Accounts {
		parsed, err := types.ParseAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("genesis account %q: %w", addr, err)
		}
		if _, exists := seen[parsed]; exists {
			return nil, fmt.Errorf("genesis account %s is listed twice", parsed)
		}
		seen[parsed] = struct{}{}
		acc := types.Account{Address: parsed}
		if err := acc.Balance.SetFromDecimal(balance); err != nil {
			return nil, fmt.Errorf("genesis balance of %s %q: %w", parsed, balance, err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// Validate checks that every account and balance parses.
func (g *GenesisConfig) Validate() error {
	_, err := g.ToAccounts()
	return err
}

// Diff returns a human readable diff between the two configurations. Empty means equal.
func (g *GenesisConfig) Diff(other *GenesisConfig) string {
	return cmp.Diff(g.normalized(), other.normalized())
}

// normalized parses balances so "0100" and "100" compare equal.
func (g *GenesisConfig) normalized() map[string]string {
	rst := make(map[string]string, len(g.Accounts))
	for addr, balance := range g.Accounts {
		key := addr
		if parsed, err := types.ParseAddress(addr); err == nil {
			key = parsed.String()
		}
		if v, err := uint256.FromDecimal(balance); err == nil {
			balance = v.Dec()
		}
		rst[key] = balance
	}
	return rst
}

// LoadFromFile reads the configuration recorded at path.
func (g *GenesisConfig) LoadFromFile(fs afero.Fs, path string) error {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, g); err != nil {
		return fmt.Errorf("decode genesis %s: %w", path, err)
	}
	return nil
}

// WriteToFile records the configuration at path, creating the parent directory.
func (g *GenesisConfig) WriteToFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	buf, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode genesis: %w", err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, buf, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("rename %s: %w", tmp, err), fs.Remove(tmp))
	}
	return nil
}
