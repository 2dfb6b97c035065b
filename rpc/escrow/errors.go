package escrow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toju-network/escrow-contract/contracts/escrow/escrowconst"
)

// Errors thrown by the contract. Use WrapFault to make them matchable with
// errors.Is.
var (
	ErrNotInitialized     = errors.New(escrowconst.ErrNotInitialized)
	ErrAlreadyInitialized = errors.New(escrowconst.ErrAlreadyInitialized)

	ErrInvalidCID          = errors.New(escrowconst.ErrInvalidCID)
	ErrCIDTooLong          = errors.New(escrowconst.ErrCIDTooLong)
	ErrInvalidFileSize     = errors.New(escrowconst.ErrInvalidFileSize)
	ErrInvalidDuration     = errors.New(escrowconst.ErrInvalidDuration)
	ErrDurationTooShort    = errors.New(escrowconst.ErrDurationTooShort)
	ErrInvalidAmount       = errors.New(escrowconst.ErrInvalidAmount)
	ErrInsufficientDeposit = errors.New(escrowconst.ErrInsufficientDeposit)
	ErrArithmeticOverflow  = errors.New(escrowconst.ErrArithmeticOverflow)

	ErrUnauthorizedAdmin       = errors.New(escrowconst.ErrUnauthorizedAdmin)
	ErrUnauthorizedUser        = errors.New(escrowconst.ErrUnauthorizedUser)
	ErrUnauthorizedProvider    = errors.New(escrowconst.ErrUnauthorizedProvider)
	ErrInvalidWithdrawalTarget = errors.New(escrowconst.ErrInvalidWithdrawalTarget)
	ErrInvalidIdentity         = errors.New(escrowconst.ErrInvalidIdentity)
	ErrInvalidTarget           = errors.New(escrowconst.ErrInvalidTarget)

	ErrDepositExists           = errors.New(escrowconst.ErrDepositExists)
	ErrDepositNotFound         = errors.New(escrowconst.ErrDepositNotFound)
	ErrInsufficientEscrowFunds = errors.New(escrowconst.ErrInsufficientEscrowFunds)
	ErrNothingToClaim          = errors.New(escrowconst.ErrNothingToClaim)
	ErrTransferFailed          = errors.New(escrowconst.ErrTransferFailed)
)

var contractErrors = []error{
	ErrNotInitialized,
	ErrAlreadyInitialized,
	ErrInvalidCID,
	ErrCIDTooLong,
	ErrInvalidFileSize,
	ErrInvalidDuration,
	ErrDurationTooShort,
	ErrInvalidAmount,
	ErrInsufficientDeposit,
	ErrArithmeticOverflow,
	ErrUnauthorizedAdmin,
	ErrUnauthorizedUser,
	ErrUnauthorizedProvider,
	ErrInvalidWithdrawalTarget,
	ErrInvalidIdentity,
	ErrInvalidTarget,
	ErrDepositExists,
	ErrDepositNotFound,
	ErrInsufficientEscrowFunds,
	ErrNothingToClaim,
	ErrTransferFailed,
}

// FaultError returns the contract error matching FAULT exception message or
// nil if the exception is not thrown by the escrow contract.
func FaultError(exception string) error {
	for _, e := range contractErrors {
		if strings.Contains(exception, e.Error()) {
			return e
		}
	}
	return nil
}

// WrapFault extends err with the matching contract error, so that callers can
// check the failure kind with errors.Is. Errors which don't carry any escrow
// exception are returned as is.
func WrapFault(err error) error {
	if err == nil {
		return nil
	}
	kind := FaultError(err.Error())
	if kind == nil || errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// IsRetryable reports whether the operation may succeed later without any
// change of its arguments. It's the case for an empty claim.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNothingToClaim)
}
