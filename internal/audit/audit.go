/*
Package audit verifies escrow contract accounting off-chain.

It works with a Snapshot of contract storage and checks that the vault
totals match the deposits, that nothing was claimed beyond what was
deposited and that the contract GAS balance covers outstanding obligations.
*/
package audit

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/toju-network/escrow-contract/contracts/escrow/accounting"
)

// Violation kinds.
const (
	KindVaultOverclaimed   = "vault_overclaimed"
	KindDepositOverclaimed = "deposit_overclaimed"
	KindDepositCursor      = "deposit_cursor"
	KindDepositedMismatch  = "deposited_mismatch"
	KindClaimedMismatch    = "claimed_mismatch"
	KindUnderfunded        = "underfunded"
)

// Violation describes a single broken accounting invariant.
type Violation struct {
	Kind string
	// Depositor and CID are set for per-deposit violations only.
	Depositor util.Uint160
	CID       string
	Details   string
}

func (v Violation) String() string {
	if v.CID == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Details)
	}
	return fmt.Sprintf("%s: %s/%s: %s", v.Kind, v.Depositor.StringLE(), v.CID, v.Details)
}

// Report is a result of a single audit run.
type Report struct {
	Height   uint32
	Deposits int

	TotalDeposited *big.Int
	TotalClaimed   *big.Int
	// Outstanding is TotalDeposited - TotalClaimed.
	Outstanding *big.Int
	Balance     *big.Int
	// Surplus is the balance above outstanding obligations. It is negative
	// for underfunded contract.
	Surplus *big.Int
	// Claimable is the sum of amounts vested but not yet claimed at Height.
	Claimable *big.Int
	// Unvestable is the sum of deposit parts left after the scheduled end
	// because of per-period rate truncation.
	Unvestable *big.Int

	Violations []Violation
}

// OK returns true if no violations were found.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Check audits the snapshot. Snapshot must be valid, see Snapshot.Validate.
func Check(s *Snapshot) *Report {
	r := &Report{
		Height:         s.Height,
		Deposits:       len(s.Deposits),
		TotalDeposited: new(big.Int).Set(s.Vault.TotalDeposited),
		TotalClaimed:   new(big.Int).Set(s.Vault.TotalClaimed),
		Balance:        new(big.Int).Set(s.Balance),
		Claimable:      new(big.Int),
		Unvestable:     new(big.Int),
	}
	r.Outstanding = new(big.Int).Sub(r.TotalDeposited, r.TotalClaimed)
	r.Surplus = new(big.Int).Sub(r.Balance, r.Outstanding)

	if r.TotalClaimed.Cmp(r.TotalDeposited) > 0 {
		r.violate(Violation{
			Kind:    KindVaultOverclaimed,
			Details: fmt.Sprintf("claimed %s of %s", r.TotalClaimed, r.TotalDeposited),
		})
	}

	var (
		deposited = new(big.Int)
		claimed   = new(big.Int)
		ppd       = int(s.PeriodsPerDay.Int64())
		now       = int(s.Height)
	)

	for _, d := range s.Deposits {
		deposited.Add(deposited, d.DepositAmount)
		claimed.Add(claimed, d.TotalClaimed)

		if d.TotalClaimed.Cmp(d.DepositAmount) > 0 {
			r.violate(Violation{
				Kind:      KindDepositOverclaimed,
				Depositor: d.Depositor,
				CID:       d.CID,
				Details:   fmt.Sprintf("claimed %s of %s", d.TotalClaimed, d.DepositAmount),
			})
			continue
		}
		if d.LastClaimedTime.Cmp(d.CreationTime) < 0 {
			r.violate(Violation{
				Kind:      KindDepositCursor,
				Depositor: d.Depositor,
				CID:       d.CID,
				Details:   fmt.Sprintf("last claim at %s before creation at %s", d.LastClaimedTime, d.CreationTime),
			})
		}

		amount := int(d.DepositAmount.Int64())
		days := int(d.DurationDays.Int64())

		r.Claimable.Add(r.Claimable, big.NewInt(int64(accounting.Claimable(amount,
			int(d.TotalClaimed.Int64()), days, ppd, int(d.LastClaimedTime.Int64()), now))))
		r.Unvestable.Add(r.Unvestable, big.NewInt(int64(accounting.ScheduleRemainder(amount, days, ppd))))
	}

	if deposited.Cmp(r.TotalDeposited) != 0 {
		r.violate(Violation{
			Kind:    KindDepositedMismatch,
			Details: fmt.Sprintf("vault %s, deposits %s", r.TotalDeposited, deposited),
		})
	}
	if claimed.Cmp(r.TotalClaimed) != 0 {
		r.violate(Violation{
			Kind:    KindClaimedMismatch,
			Details: fmt.Sprintf("vault %s, deposits %s", r.TotalClaimed, claimed),
		})
	}
	if r.Surplus.Sign() < 0 {
		r.violate(Violation{
			Kind:    KindUnderfunded,
			Details: fmt.Sprintf("balance %s, outstanding %s", r.Balance, r.Outstanding),
		})
	}

	return r
}

func (r *Report) violate(v Violation) {
	r.Violations = append(r.Violations, v)
}
