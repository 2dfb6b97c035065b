package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/toju-network/escrow-contract/common"
	"github.com/toju-network/escrow-contract/contracts/escrow/accounting"
	"github.com/toju-network/escrow-contract/contracts/escrow/escrowconst"
)

type (
	// Config contains global pricing and authorization parameters.
	Config struct {
		// Admin is allowed to change configuration and withdraw fees.
		Admin interop.Hash160
		// RatePerBytePerDay is a price of storing one byte for one day.
		RatePerBytePerDay int
		// MinDurationDays is a minimum storage duration.
		MinDurationDays int
		// WithdrawalTarget is the only account fees can be withdrawn to.
		WithdrawalTarget interop.Hash160
		// Provider is the service provider allowed to claim rewards.
		Provider interop.Hash160
	}

	// Vault contains running totals of the pooled funds.
	Vault struct {
		TotalDeposited int
		TotalClaimed   int
	}

	// Deposit is a vesting schedule of a single storage order.
	Deposit struct {
		Depositor       interop.Hash160
		CID             string
		FileSize        int
		DurationDays    int
		DepositAmount   int
		CreationTime    int
		LastClaimedTime int
		TotalClaimed    int
	}
)

const (
	configKey        = "config"
	vaultKey         = "vault"
	periodsPerDayKey = "periodsPerDay"
	pullingKey       = "pulling"

	depositPrefix = 'd'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	periods := escrowconst.DefaultPeriodsPerDay
	if data != nil {
		args := data.([]any)
		if len(args) > 0 && args[0] != nil {
			periods = args[0].(int)
		}
	}
	if periods <= 0 {
		panic("periods per day must be positive")
	}

	storage.Put(ctx, periodsPerDayKey, periods)

	runtime.Log("escrow contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the escrow admin.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	checkAdmin(getConfig(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("escrow contract updated")
}

// InitializeConfig creates global configuration and an empty vault. It can
// be invoked only once and must be signed by the admin. The admin is also
// the initial service provider.
func InitializeConfig(admin interop.Hash160, rate, minDurationDays int, withdrawalTarget interop.Hash160) {
	ctx := storage.GetContext()

	if storage.Get(ctx, configKey) != nil {
		panic(escrowconst.ErrAlreadyInitialized)
	}

	checkIdentity(admin)
	checkIdentity(withdrawalTarget)
	checkAmount(rate)
	if minDurationDays < 0 || minDurationDays > accounting.MaxDuration {
		panic(escrowconst.ErrInvalidDuration)
	}

	common.CheckWitnessWithMessage(admin, escrowconst.ErrUnauthorizedAdmin)

	common.SetSerialized(ctx, configKey, Config{
		Admin:             admin,
		RatePerBytePerDay: rate,
		MinDurationDays:   minDurationDays,
		WithdrawalTarget:  withdrawalTarget,
		Provider:          admin,
	})
	common.SetSerialized(ctx, vaultKey, Vault{})

	runtime.Notify("ConfigInitialized", admin, rate, minDurationDays, withdrawalTarget)
}

// CreateDeposit validates a storage order, transfers amount of GAS from user
// to the contract and starts a vesting schedule for the (user, cid) pair.
// Transaction must be signed by user.
func CreateDeposit(user interop.Hash160, cid string, fileSize, durationDays, amount int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkIdentity(user)
	common.CheckWitnessWithMessage(user, escrowconst.ErrUnauthorizedUser)

	checkCID(cid)
	if fileSize <= 0 || fileSize > accounting.MaxAmount {
		panic(escrowconst.ErrInvalidFileSize)
	}
	if durationDays <= 0 || durationDays > accounting.MaxDuration {
		panic(escrowconst.ErrInvalidDuration)
	}
	if durationDays < cfg.MinDurationDays {
		panic(escrowconst.ErrDurationTooShort)
	}
	required, ok := accounting.RequiredAmount(fileSize, durationDays, cfg.RatePerBytePerDay)
	if !ok {
		panic(escrowconst.ErrArithmeticOverflow)
	}
	checkAmount(amount)
	if amount < required {
		panic(escrowconst.ErrInsufficientDeposit)
	}

	key := depositKey(user, cid)
	if storage.Get(ctx, key) != nil {
		panic(escrowconst.ErrDepositExists)
	}

	vault := getVault(ctx)
	vault.TotalDeposited = add(vault.TotalDeposited, amount, accounting.MaxAmount)

	now := ledger.CurrentIndex()
	common.SetSerialized(ctx, key, Deposit{
		Depositor:       user,
		CID:             cid,
		FileSize:        fileSize,
		DurationDays:    durationDays,
		DepositAmount:   amount,
		CreationTime:    now,
		LastClaimedTime: now,
		TotalClaimed:    0,
	})
	common.SetSerialized(ctx, vaultKey, vault)

	pull(ctx, user, amount)

	runtime.Notify("DepositCreated", user, cid, fileSize, durationDays, amount, now)
}

// ExtendStorageDuration prolongs an existing deposit by duration days and
// adds payment to it. Vesting cursor is not reset. Transaction must be
// signed by the depositor.
func ExtendStorageDuration(user interop.Hash160, cid string, duration, payment int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkIdentity(user)
	common.CheckWitnessWithMessage(user, escrowconst.ErrUnauthorizedUser)

	if !validCID(cid) {
		panic(escrowconst.ErrInvalidCID)
	}

	key := depositKey(user, cid)
	d := getDeposit(ctx, key)
	if !d.Depositor.Equals(user) {
		panic(escrowconst.ErrUnauthorizedUser)
	}

	if duration <= 0 || duration > accounting.MaxDuration {
		panic(escrowconst.ErrInvalidDuration)
	}
	required, ok := accounting.RequiredAmount(d.FileSize, duration, cfg.RatePerBytePerDay)
	if !ok {
		panic(escrowconst.ErrArithmeticOverflow)
	}
	checkAmount(payment)
	if payment < required {
		panic(escrowconst.ErrInsufficientDeposit)
	}

	d.DurationDays = add(d.DurationDays, duration, accounting.MaxDuration)
	d.DepositAmount = add(d.DepositAmount, payment, accounting.MaxAmount)

	vault := getVault(ctx)
	vault.TotalDeposited = add(vault.TotalDeposited, payment, accounting.MaxAmount)

	common.SetSerialized(ctx, key, d)
	common.SetSerialized(ctx, vaultKey, vault)

	pull(ctx, user, payment)

	runtime.Notify("StorageDurationExtended", user, cid, duration, payment,
		d.DurationDays, d.DepositAmount, ledger.CurrentIndex())
}

// ClaimRewards transfers the vested and not yet claimed part of the deposit
// to target. Transaction must be signed by the service provider. It fails
// with "nothing to claim" if there is nothing vested yet or the deposit is
// exhausted.
func ClaimRewards(depositor interop.Hash160, cid string, target interop.Hash160) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	common.CheckWitnessWithMessage(cfg.Provider, escrowconst.ErrUnauthorizedProvider)

	self := runtime.GetExecutingScriptHash()
	if len(target) != interop.Hash160Len || target.Equals(self) {
		panic(escrowconst.ErrInvalidTarget)
	}

	key := depositKey(depositor, cid)
	d := getDeposit(ctx, key)

	now := ledger.CurrentIndex()
	claim := accounting.Claimable(d.DepositAmount, d.TotalClaimed, d.DurationDays,
		getPeriodsPerDay(ctx), d.LastClaimedTime, now)
	if claim == 0 {
		panic(escrowconst.ErrNothingToClaim)
	}

	d.TotalClaimed = add(d.TotalClaimed, claim, d.DepositAmount)
	d.LastClaimedTime = now

	vault := getVault(ctx)
	vault.TotalClaimed = add(vault.TotalClaimed, claim, vault.TotalDeposited)

	if gas.BalanceOf(self) < claim {
		panic(escrowconst.ErrInsufficientEscrowFunds)
	}

	common.SetSerialized(ctx, key, d)
	common.SetSerialized(ctx, vaultKey, vault)

	if !gas.Transfer(self, target, claim, nil) {
		panic(escrowconst.ErrTransferFailed)
	}

	runtime.Notify("RewardsClaimed", depositor, cid, target, claim, d.TotalClaimed, now)
}

// WithdrawFees transfers amount of GAS from the contract to the configured
// withdrawal target. It can be invoked only by the admin. Vault totals are
// not changed, the only bound is the actual contract balance.
func WithdrawFees(target interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	cfg := getConfig(ctx)

	checkAdmin(cfg)

	if !target.Equals(cfg.WithdrawalTarget) {
		panic(escrowconst.ErrInvalidWithdrawalTarget)
	}
	if amount <= 0 || amount > accounting.MaxAmount {
		panic(escrowconst.ErrInvalidAmount)
	}

	self := runtime.GetExecutingScriptHash()
	if gas.BalanceOf(self) < amount {
		panic(escrowconst.ErrInsufficientEscrowFunds)
	}

	if !gas.Transfer(self, target, amount, nil) {
		panic(escrowconst.ErrTransferFailed)
	}

	runtime.Notify("FeesWithdrawn", cfg.Admin, target, amount, ledger.CurrentIndex())
}

// UpdateRate sets a new price per byte per day. It can be invoked only by
// the admin. Existing deposits are not repriced.
func UpdateRate(newRate int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkAdmin(cfg)
	checkAmount(newRate)

	old := cfg.RatePerBytePerDay
	cfg.RatePerBytePerDay = newRate
	common.SetSerialized(ctx, configKey, cfg)

	runtime.Notify("RateUpdated", old, newRate)
}

// UpdateMinDuration sets a new minimum storage duration in days. It can be
// invoked only by the admin.
func UpdateMinDuration(newMin int) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkAdmin(cfg)
	if newMin < 0 || newMin > accounting.MaxDuration {
		panic(escrowconst.ErrInvalidDuration)
	}

	old := cfg.MinDurationDays
	cfg.MinDurationDays = newMin
	common.SetSerialized(ctx, configKey, cfg)

	runtime.Notify("MinDurationUpdated", old, newMin)
}

// UpdateProvider replaces the service provider allowed to claim rewards. It
// can be invoked only by the admin.
func UpdateProvider(newProvider interop.Hash160) {
	ctx := storage.GetContext()
	cfg := getConfig(ctx)

	checkAdmin(cfg)
	checkIdentity(newProvider)

	old := cfg.Provider
	cfg.Provider = newProvider
	common.SetSerialized(ctx, configKey, cfg)

	runtime.Notify("ProviderUpdated", old, newProvider)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Deposit payments pulled by the contract are accepted silently, any other
// GAS transfer tops up the vault surplus.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("only GAS can be accepted")
	}

	if storage.Get(storage.GetReadOnlyContext(), pullingKey) != nil {
		return
	}

	if amount <= 0 {
		common.AbortWithMessage("amount must be positive")
	}

	runtime.Notify("VaultFunded", from, amount)
}

// GetConfig returns global escrow configuration.
func GetConfig() Config {
	return getConfig(storage.GetReadOnlyContext())
}

// GetVault returns vault running totals.
func GetVault() Vault {
	return getVault(storage.GetReadOnlyContext())
}

// PeriodsPerDay returns the number of blocks counted as one day.
func PeriodsPerDay() int {
	return getPeriodsPerDay(storage.GetReadOnlyContext())
}

// GetDeposit returns the deposit of the depositor for the given content
// identifier. It panics if there is no such deposit.
func GetDeposit(depositor interop.Hash160, cid string) Deposit {
	return getDeposit(storage.GetReadOnlyContext(), depositKey(depositor, cid))
}

// ListDeposits returns an iterator over all deposits of the depositor.
func ListDeposits(depositor interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	prefix := append([]byte{depositPrefix}, depositor...)
	return storage.Find(ctx, prefix, storage.ValuesOnly|storage.DeserializeValues)
}

// ClaimableAmount returns the amount which would be paid by ClaimRewards in
// the next block.
func ClaimableAmount(depositor interop.Hash160, cid string) int {
	ctx := storage.GetReadOnlyContext()
	d := getDeposit(ctx, depositKey(depositor, cid))

	return accounting.Claimable(d.DepositAmount, d.TotalClaimed, d.DurationDays,
		getPeriodsPerDay(ctx), d.LastClaimedTime, ledger.CurrentIndex())
}

// RequiredAmount returns the price of storing fileSize bytes for durationDays
// at the current rate.
func RequiredAmount(fileSize, durationDays int) int {
	cfg := getConfig(storage.GetReadOnlyContext())

	required, ok := accounting.RequiredAmount(fileSize, durationDays, cfg.RatePerBytePerDay)
	if !ok {
		panic(escrowconst.ErrArithmeticOverflow)
	}
	return required
}

// AvailableFees returns contract GAS balance above outstanding obligations.
func AvailableFees() int {
	vault := getVault(storage.GetReadOnlyContext())

	available := gas.BalanceOf(runtime.GetExecutingScriptHash()) - (vault.TotalDeposited - vault.TotalClaimed)
	if available < 0 {
		return 0
	}
	return available
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getConfig(ctx storage.Context) Config {
	data := storage.Get(ctx, configKey)
	if data == nil {
		panic(escrowconst.ErrNotInitialized)
	}
	return std.Deserialize(data.([]byte)).(Config)
}

func getVault(ctx storage.Context) Vault {
	data := storage.Get(ctx, vaultKey)
	if data == nil {
		panic(escrowconst.ErrNotInitialized)
	}
	return std.Deserialize(data.([]byte)).(Vault)
}

func getDeposit(ctx storage.Context, key []byte) Deposit {
	data := storage.Get(ctx, key)
	if data == nil {
		panic(escrowconst.ErrDepositNotFound)
	}
	return std.Deserialize(data.([]byte)).(Deposit)
}

func getPeriodsPerDay(ctx storage.Context) int {
	return storage.Get(ctx, periodsPerDayKey).(int)
}

// depositKey is 'd' || depositor || sha256(cid), so deposits of a single
// depositor share a prefix.
func depositKey(depositor interop.Hash160, cid string) []byte {
	key := append([]byte{depositPrefix}, depositor...)
	return append(key, crypto.Sha256([]byte(cid))...)
}

func checkAdmin(cfg Config) {
	common.CheckWitnessWithMessage(cfg.Admin, escrowconst.ErrUnauthorizedAdmin)
}

func checkIdentity(h interop.Hash160) {
	if len(h) != interop.Hash160Len {
		panic(escrowconst.ErrInvalidIdentity)
	}
}

func checkCID(cid string) {
	if !validCID(cid) {
		panic(escrowconst.ErrInvalidCID)
	}
	if len(cid) > escrowconst.MaxCIDLength {
		panic(escrowconst.ErrCIDTooLong)
	}
}

func checkAmount(amount int) {
	if amount < 0 || amount > accounting.MaxAmount {
		panic(escrowconst.ErrInvalidAmount)
	}
}

func add(a, b, limit int) int {
	res, ok := accounting.Add(a, b, limit)
	if !ok {
		panic(escrowconst.ErrArithmeticOverflow)
	}
	return res
}

// pull transfers amount of GAS from the account to the contract. The flag
// lives only for the duration of the transfer, so the payment callback can
// tell deposit payments apart from vault top-ups.
func pull(ctx storage.Context, from interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	storage.Put(ctx, pullingKey, true)
	if !gas.Transfer(from, runtime.GetExecutingScriptHash(), amount, nil) {
		panic(escrowconst.ErrTransferFailed)
	}
	storage.Delete(ctx, pullingKey)
}
