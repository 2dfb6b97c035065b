package audit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/toju-network/escrow-contract/rpc/escrow"
)

// Storage keys of the escrow contract.
const (
	configKey        = "config"
	vaultKey         = "vault"
	periodsPerDayKey = "periodsPerDay"

	depositPrefix = 'd'
)

// ErrNotInitialized is returned by Snapshot.Validate if contract storage
// has no configuration or vault.
var ErrNotInitialized = errors.New("escrow is not initialized")

// Snapshot is a decoded state of the escrow contract storage at some height
// plus its GAS balance.
type Snapshot struct {
	Height        uint32
	Config        *escrow.EscrowConfig
	Vault         *escrow.EscrowVault
	PeriodsPerDay *big.Int
	Deposits      []*escrow.EscrowDeposit
	Balance       *big.Int
}

// Put decodes a single raw storage item of the contract and adds it to the
// snapshot. Its signature allows passing it directly to storage iterators.
func (s *Snapshot) Put(key, value []byte) error {
	switch {
	case string(key) == configKey:
		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize config: %w", err)
		}
		s.Config = new(escrow.EscrowConfig)
		if err = s.Config.FromStackItem(item); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	case string(key) == vaultKey:
		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize vault: %w", err)
		}
		s.Vault = new(escrow.EscrowVault)
		if err = s.Vault.FromStackItem(item); err != nil {
			return fmt.Errorf("decode vault: %w", err)
		}
	case string(key) == periodsPerDayKey:
		s.PeriodsPerDay = bigint.FromBytes(value)
	case len(key) > 0 && key[0] == depositPrefix:
		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize deposit %x: %w", key, err)
		}
		d := new(escrow.EscrowDeposit)
		if err = d.FromStackItem(item); err != nil {
			return fmt.Errorf("decode deposit %x: %w", key, err)
		}
		s.Deposits = append(s.Deposits, d)
	default:
		return fmt.Errorf("unexpected storage key %x", key)
	}
	return nil
}

// Validate checks that all mandatory records are present.
func (s *Snapshot) Validate() error {
	if s.Config == nil || s.Vault == nil {
		return ErrNotInitialized
	}
	if s.PeriodsPerDay == nil || s.PeriodsPerDay.Sign() <= 0 {
		return errors.New("missing periods per day")
	}
	if s.Balance == nil {
		return errors.New("missing contract balance")
	}
	return nil
}
