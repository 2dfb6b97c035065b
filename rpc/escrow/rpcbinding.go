// Package escrow contains RPC wrappers for Storage Escrow contract.
package escrow

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)
// EscrowConfig is a contract-specific escrow.Config type used by its methods.
type EscrowConfig struct {
	Admin util.Uint160
	RatePerBytePerDay *big.Int
	MinDurationDays *big.Int
	WithdrawalTarget util.Uint160
	Provider util.Uint160
}

// EscrowDeposit is a contract-specific escrow.Deposit type used by its methods.
type EscrowDeposit struct {
	Depositor util.Uint160
	CID string
	FileSize *big.Int
	DurationDays *big.Int
	DepositAmount *big.Int
	CreationTime *big.Int
	LastClaimedTime *big.Int
	TotalClaimed *big.Int
}

// EscrowVault is a contract-specific escrow.Vault type used by its methods.
type EscrowVault struct {
	TotalDeposited *big.Int
	TotalClaimed *big.Int
}

// ConfigInitializedEvent represents "ConfigInitialized" event emitted by the contract.
type ConfigInitializedEvent struct {
	Admin util.Uint160
	Rate *big.Int
	MinDuration *big.Int
	WithdrawalTarget util.Uint160
}

// DepositCreatedEvent represents "DepositCreated" event emitted by the contract.
type DepositCreatedEvent struct {
	User util.Uint160
	Cid string
	FileSize *big.Int
	Duration *big.Int
	Amount *big.Int
	Slot *big.Int
}

// StorageDurationExtendedEvent represents "StorageDurationExtended" event emitted by the contract.
type StorageDurationExtendedEvent struct {
	User util.Uint160
	Cid string
	Duration *big.Int
	Payment *big.Int
	TotalDuration *big.Int
	TotalAmount *big.Int
	Slot *big.Int
}

// RewardsClaimedEvent represents "RewardsClaimed" event emitted by the contract.
type RewardsClaimedEvent struct {
	Depositor util.Uint160
	Cid string
	Target util.Uint160
	Amount *big.Int
	TotalClaimed *big.Int
	Slot *big.Int
}

// FeesWithdrawnEvent represents "FeesWithdrawn" event emitted by the contract.
type FeesWithdrawnEvent struct {
	Admin util.Uint160
	Target util.Uint160
	Amount *big.Int
	Slot *big.Int
}

// RateUpdatedEvent represents "RateUpdated" event emitted by the contract.
type RateUpdatedEvent struct {
	OldRate *big.Int
	NewRate *big.Int
}

// MinDurationUpdatedEvent represents "MinDurationUpdated" event emitted by the contract.
type MinDurationUpdatedEvent struct {
	OldMinDuration *big.Int
	NewMinDuration *big.Int
}

// ProviderUpdatedEvent represents "ProviderUpdated" event emitted by the contract.
type ProviderUpdatedEvent struct {
	OldProvider util.Uint160
	NewProvider util.Uint160
}

// VaultFundedEvent represents "VaultFunded" event emitted by the contract.
type VaultFundedEvent struct {
	From util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// AvailableFees invokes `availableFees` method of contract.
func (c *ContractReader) AvailableFees() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "availableFees"))
}

// ClaimableAmount invokes `claimableAmount` method of contract.
func (c *ContractReader) ClaimableAmount(depositor util.Uint160, cid string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "claimableAmount", depositor, cid))
}

// GetConfig invokes `getConfig` method of contract.
func (c *ContractReader) GetConfig() (*EscrowConfig, error) {
	return itemToEscrowConfig(unwrap.Item(c.invoker.Call(c.hash, "getConfig")))
}

// GetDeposit invokes `getDeposit` method of contract.
func (c *ContractReader) GetDeposit(depositor util.Uint160, cid string) (*EscrowDeposit, error) {
	return itemToEscrowDeposit(unwrap.Item(c.invoker.Call(c.hash, "getDeposit", depositor, cid)))
}

// GetVault invokes `getVault` method of contract.
func (c *ContractReader) GetVault() (*EscrowVault, error) {
	return itemToEscrowVault(unwrap.Item(c.invoker.Call(c.hash, "getVault")))
}

// ListDeposits invokes `listDeposits` method of contract.
func (c *ContractReader) ListDeposits(depositor util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listDeposits", depositor))
}

// ListDepositsExpanded is similar to ListDeposits (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListDepositsExpanded(depositor util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listDeposits", _numOfIteratorItems, depositor))
}

// PeriodsPerDay invokes `periodsPerDay` method of contract.
func (c *ContractReader) PeriodsPerDay() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "periodsPerDay"))
}

// RequiredAmount invokes `requiredAmount` method of contract.
func (c *ContractReader) RequiredAmount(fileSize *big.Int, durationDays *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "requiredAmount", fileSize, durationDays))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ClaimRewards creates a transaction invoking `claimRewards` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimRewards(depositor util.Uint160, cid string, target util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimRewards", depositor, cid, target)
}

// ClaimRewardsTransaction creates a transaction invoking `claimRewards` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimRewardsTransaction(depositor util.Uint160, cid string, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimRewards", depositor, cid, target)
}

// ClaimRewardsUnsigned creates a transaction invoking `claimRewards` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimRewardsUnsigned(depositor util.Uint160, cid string, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimRewards", nil, depositor, cid, target)
}

// CreateDeposit creates a transaction invoking `createDeposit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateDeposit(user util.Uint160, cid string, fileSize *big.Int, durationDays *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createDeposit", user, cid, fileSize, durationDays, amount)
}

// CreateDepositTransaction creates a transaction invoking `createDeposit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateDepositTransaction(user util.Uint160, cid string, fileSize *big.Int, durationDays *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createDeposit", user, cid, fileSize, durationDays, amount)
}

// CreateDepositUnsigned creates a transaction invoking `createDeposit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateDepositUnsigned(user util.Uint160, cid string, fileSize *big.Int, durationDays *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createDeposit", nil, user, cid, fileSize, durationDays, amount)
}

// ExtendStorageDuration creates a transaction invoking `extendStorageDuration` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ExtendStorageDuration(user util.Uint160, cid string, duration *big.Int, payment *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "extendStorageDuration", user, cid, duration, payment)
}

// ExtendStorageDurationTransaction creates a transaction invoking `extendStorageDuration` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ExtendStorageDurationTransaction(user util.Uint160, cid string, duration *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "extendStorageDuration", user, cid, duration, payment)
}

// ExtendStorageDurationUnsigned creates a transaction invoking `extendStorageDuration` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ExtendStorageDurationUnsigned(user util.Uint160, cid string, duration *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "extendStorageDuration", nil, user, cid, duration, payment)
}

// InitializeConfig creates a transaction invoking `initializeConfig` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) InitializeConfig(admin util.Uint160, rate *big.Int, minDurationDays *big.Int, withdrawalTarget util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initializeConfig", admin, rate, minDurationDays, withdrawalTarget)
}

// InitializeConfigTransaction creates a transaction invoking `initializeConfig` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeConfigTransaction(admin util.Uint160, rate *big.Int, minDurationDays *big.Int, withdrawalTarget util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initializeConfig", admin, rate, minDurationDays, withdrawalTarget)
}

// InitializeConfigUnsigned creates a transaction invoking `initializeConfig` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeConfigUnsigned(admin util.Uint160, rate *big.Int, minDurationDays *big.Int, withdrawalTarget util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initializeConfig", nil, admin, rate, minDurationDays, withdrawalTarget)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// UpdateMinDuration creates a transaction invoking `updateMinDuration` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateMinDuration(newMin *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateMinDuration", newMin)
}

// UpdateMinDurationTransaction creates a transaction invoking `updateMinDuration` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateMinDurationTransaction(newMin *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateMinDuration", newMin)
}

// UpdateMinDurationUnsigned creates a transaction invoking `updateMinDuration` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateMinDurationUnsigned(newMin *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateMinDuration", nil, newMin)
}

// UpdateProvider creates a transaction invoking `updateProvider` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateProvider(newProvider util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateProvider", newProvider)
}

// UpdateProviderTransaction creates a transaction invoking `updateProvider` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateProviderTransaction(newProvider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateProvider", newProvider)
}

// UpdateProviderUnsigned creates a transaction invoking `updateProvider` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateProviderUnsigned(newProvider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateProvider", nil, newProvider)
}

// UpdateRate creates a transaction invoking `updateRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateRate(newRate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateRate", newRate)
}

// UpdateRateTransaction creates a transaction invoking `updateRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateRateTransaction(newRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateRate", newRate)
}

// UpdateRateUnsigned creates a transaction invoking `updateRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateRateUnsigned(newRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateRate", nil, newRate)
}

// WithdrawFees creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawFees(target util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawFees", target, amount)
}

// WithdrawFeesTransaction creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawFeesTransaction(target util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawFees", target, amount)
}

// WithdrawFeesUnsigned creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawFeesUnsigned(target util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawFees", nil, target, amount)
}

// itemToEscrowConfig converts stack item into *EscrowConfig.
func itemToEscrowConfig(item stackitem.Item, err error) (*EscrowConfig, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowConfig)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowConfig from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowConfig) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Admin, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	index++
	res.RatePerBytePerDay, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RatePerBytePerDay: %w", err)
	}

	index++
	res.MinDurationDays, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MinDurationDays: %w", err)
	}

	index++
	res.WithdrawalTarget, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field WithdrawalTarget: %w", err)
	}

	index++
	res.Provider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Provider: %w", err)
	}

	return nil
}

// itemToEscrowDeposit converts stack item into *EscrowDeposit.
func itemToEscrowDeposit(item stackitem.Item, err error) (*EscrowDeposit, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowDeposit)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowDeposit from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowDeposit) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 8 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Depositor, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Depositor: %w", err)
	}

	index++
	res.CID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field CID: %w", err)
	}

	index++
	res.FileSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field FileSize: %w", err)
	}

	index++
	res.DurationDays, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field DurationDays: %w", err)
	}

	index++
	res.DepositAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field DepositAmount: %w", err)
	}

	index++
	res.CreationTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreationTime: %w", err)
	}

	index++
	res.LastClaimedTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastClaimedTime: %w", err)
	}

	index++
	res.TotalClaimed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalClaimed: %w", err)
	}

	return nil
}

// itemToEscrowVault converts stack item into *EscrowVault.
func itemToEscrowVault(item stackitem.Item, err error) (*EscrowVault, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowVault)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowVault from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowVault) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.TotalDeposited, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalDeposited: %w", err)
	}

	index++
	res.TotalClaimed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalClaimed: %w", err)
	}

	return nil
}

// ConfigInitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "ConfigInitialized" name from the provided [result.ApplicationLog].
func ConfigInitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ConfigInitializedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ConfigInitializedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ConfigInitialized" {
				continue
			}
			event := new(ConfigInitializedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ConfigInitializedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ConfigInitializedEvent or
// returns an error if it's not possible to do to so.
func (e *ConfigInitializedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Admin, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	index++
	e.Rate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Rate: %w", err)
	}

	index++
	e.MinDuration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MinDuration: %w", err)
	}

	index++
	e.WithdrawalTarget, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field WithdrawalTarget: %w", err)
	}

	return nil
}

// DepositCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "DepositCreated" name from the provided [result.ApplicationLog].
func DepositCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DepositCreated" {
				continue
			}
			event := new(DepositCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *DepositCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.User, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.Cid, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.FileSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field FileSize: %w", err)
	}

	index++
	e.Duration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Duration: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Slot, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Slot: %w", err)
	}

	return nil
}

// StorageDurationExtendedEventsFromApplicationLog retrieves a set of all emitted events
// with "StorageDurationExtended" name from the provided [result.ApplicationLog].
func StorageDurationExtendedEventsFromApplicationLog(log *result.ApplicationLog) ([]*StorageDurationExtendedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StorageDurationExtendedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "StorageDurationExtended" {
				continue
			}
			event := new(StorageDurationExtendedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StorageDurationExtendedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StorageDurationExtendedEvent or
// returns an error if it's not possible to do to so.
func (e *StorageDurationExtendedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.User, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	index++
	e.Cid, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Duration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Duration: %w", err)
	}

	index++
	e.Payment, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Payment: %w", err)
	}

	index++
	e.TotalDuration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalDuration: %w", err)
	}

	index++
	e.TotalAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalAmount: %w", err)
	}

	index++
	e.Slot, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Slot: %w", err)
	}

	return nil
}

// RewardsClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardsClaimed" name from the provided [result.ApplicationLog].
func RewardsClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardsClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardsClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardsClaimed" {
				continue
			}
			event := new(RewardsClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardsClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardsClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardsClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Depositor, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Depositor: %w", err)
	}

	index++
	e.Cid, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.TotalClaimed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalClaimed: %w", err)
	}

	index++
	e.Slot, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Slot: %w", err)
	}

	return nil
}

// FeesWithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "FeesWithdrawn" name from the provided [result.ApplicationLog].
func FeesWithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeesWithdrawnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeesWithdrawnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeesWithdrawn" {
				continue
			}
			event := new(FeesWithdrawnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeesWithdrawnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeesWithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *FeesWithdrawnEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Admin, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	index++
	e.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Slot, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Slot: %w", err)
	}

	return nil
}

// RateUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "RateUpdated" name from the provided [result.ApplicationLog].
func RateUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RateUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RateUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RateUpdated" {
				continue
			}
			event := new(RateUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RateUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RateUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *RateUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldRate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OldRate: %w", err)
	}

	index++
	e.NewRate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewRate: %w", err)
	}

	return nil
}

// MinDurationUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "MinDurationUpdated" name from the provided [result.ApplicationLog].
func MinDurationUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MinDurationUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MinDurationUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MinDurationUpdated" {
				continue
			}
			event := new(MinDurationUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MinDurationUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MinDurationUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *MinDurationUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldMinDuration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OldMinDuration: %w", err)
	}

	index++
	e.NewMinDuration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewMinDuration: %w", err)
	}

	return nil
}

// ProviderUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProviderUpdated" name from the provided [result.ApplicationLog].
func ProviderUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProviderUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProviderUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProviderUpdated" {
				continue
			}
			event := new(ProviderUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProviderUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProviderUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *ProviderUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldProvider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field OldProvider: %w", err)
	}

	index++
	e.NewProvider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field NewProvider: %w", err)
	}

	return nil
}

// VaultFundedEventsFromApplicationLog retrieves a set of all emitted events
// with "VaultFunded" name from the provided [result.ApplicationLog].
func VaultFundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*VaultFundedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VaultFundedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VaultFunded" {
				continue
			}
			event := new(VaultFundedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VaultFundedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VaultFundedEvent or
// returns an error if it's not possible to do to so.
func (e *VaultFundedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.From, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
