/*
Package escrowconst contains constants shared by the Escrow contract and
its off-chain clients.
*/
package escrowconst

const (
	// MaxCIDLength is the maximum length of a content identifier in bytes.
	MaxCIDLength = 200

	// DefaultPeriodsPerDay is the number of blocks per day with 15 second
	// block time. It's used when no value is provided at deployment.
	DefaultPeriodsPerDay = 5760

	// GASDecimals is the precision of the native GAS token.
	GASDecimals = 8
)

// Error messages thrown by the contract. The message is the error kind,
// clients match FAULT exceptions against these values.
const (
	ErrNotInitialized     = "escrow is not initialized"
	ErrAlreadyInitialized = "escrow is already initialized"

	ErrInvalidCID          = "invalid content identifier"
	ErrCIDTooLong          = "content identifier is too long"
	ErrInvalidFileSize     = "invalid file size"
	ErrInvalidDuration     = "invalid storage duration"
	ErrDurationTooShort    = "storage duration is below minimum"
	ErrInvalidAmount       = "invalid amount"
	ErrInsufficientDeposit = "insufficient deposit amount"
	ErrArithmeticOverflow  = "arithmetic overflow"

	ErrUnauthorizedAdmin       = "only admin can perform this action"
	ErrUnauthorizedUser        = "only depositor can perform this action"
	ErrUnauthorizedProvider    = "only service provider can claim rewards"
	ErrInvalidWithdrawalTarget = "withdrawal target does not match configuration"
	ErrInvalidIdentity         = "invalid identity"
	ErrInvalidTarget           = "invalid payout target"

	ErrDepositExists           = "deposit already exists"
	ErrDepositNotFound         = "deposit not found"
	ErrInsufficientEscrowFunds = "insufficient funds in escrow vault"
	ErrNothingToClaim          = "nothing to claim"
	ErrTransferFailed          = "GAS transfer failed"
)
