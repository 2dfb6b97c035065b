package tests

import (
	"encoding/json"
	"math/big"
	"path"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/toju-network/escrow-contract/common"
	"github.com/toju-network/escrow-contract/contracts/escrow/escrowconst"
	"github.com/toju-network/escrow-contract/rpc/escrow"
)

const (
	escrowPath    = "../contracts/escrow"
	claimRecvPath = "../internal/testcontracts/claimrecv"
)

const (
	testPeriodsPerDay = 10
	testRate          = 100
	testMinDuration   = 1
)

type escrowEnv struct {
	e        *neotest.Executor
	contract *neotest.Contract
	hash     util.Uint160

	admin  neotest.Signer
	target neotest.Signer
}

func newEscrowEnv(t *testing.T) *escrowEnv {
	e := newExecutor(t)

	c := neotest.CompileFile(t, e.CommitteeHash, escrowPath, path.Join(escrowPath, "config.yml"))
	e.DeployContract(t, c, []any{int64(testPeriodsPerDay)})

	return &escrowEnv{
		e:        e,
		contract: c,
		hash:     c.Hash,
		admin:    e.NewAccount(t),
		target:   e.NewAccount(t),
	}
}

func newInitializedEscrowEnv(t *testing.T) *escrowEnv {
	x := newEscrowEnv(t)
	x.as(x.admin).Invoke(t, stackitem.Null{}, "initializeConfig",
		x.admin.ScriptHash(), int64(testRate), int64(testMinDuration), x.target.ScriptHash())
	return x
}

func (x *escrowEnv) as(s neotest.Signer) *neotest.ContractInvoker {
	return x.e.NewInvoker(x.hash, s)
}

func (x *escrowEnv) call(t *testing.T, method string, args ...any) stackitem.Item {
	s, err := x.as(x.admin).TestInvoke(t, method, args...)
	require.NoError(t, err)
	return s.Pop().Item()
}

func (x *escrowEnv) vault(t *testing.T) escrow.EscrowVault {
	var v escrow.EscrowVault
	require.NoError(t, v.FromStackItem(x.call(t, "getVault")))
	return v
}

func (x *escrowEnv) config(t *testing.T) escrow.EscrowConfig {
	var c escrow.EscrowConfig
	require.NoError(t, c.FromStackItem(x.call(t, "getConfig")))
	return c
}

func (x *escrowEnv) deposit(t *testing.T, depositor util.Uint160, contentID string) escrow.EscrowDeposit {
	var d escrow.EscrowDeposit
	require.NoError(t, d.FromStackItem(x.call(t, "getDeposit", depositor, contentID)))
	return d
}

func (x *escrowEnv) deposits(t *testing.T, depositor util.Uint160) []escrow.EscrowDeposit {
	s, err := x.as(x.admin).TestInvoke(t, "listDeposits", depositor)
	require.NoError(t, err)

	items := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	res := make([]escrow.EscrowDeposit, len(items))
	for i := range items {
		require.NoError(t, res[i].FromStackItem(items[i]))
	}
	return res
}

func (x *escrowEnv) balance(h util.Uint160) *big.Int {
	return x.e.Chain.GetUtilityTokenBalance(h)
}

func (x *escrowEnv) skipBlocks(t *testing.T, n int) {
	for i := 0; i < n; i++ {
		x.e.AddNewBlock(t)
	}
}

func (x *escrowEnv) appLog(t *testing.T, h util.Uint256) *result.ApplicationLog {
	res := x.e.GetTxExecResult(t, h)
	return &result.ApplicationLog{
		Container:  h,
		Executions: []state.Execution{res.Execution},
	}
}

// checkInvariants verifies vault totals against the deposits of the given
// depositors and the actual contract balance.
func (x *escrowEnv) checkInvariants(t *testing.T, surplus int64, depositors ...util.Uint160) {
	v := x.vault(t)
	require.True(t, v.TotalClaimed.Cmp(v.TotalDeposited) <= 0)

	deposited, claimed := new(big.Int), new(big.Int)
	for _, depositor := range depositors {
		for _, d := range x.deposits(t, depositor) {
			require.True(t, d.TotalClaimed.Cmp(d.DepositAmount) <= 0)
			deposited.Add(deposited, d.DepositAmount)
			claimed.Add(claimed, d.TotalClaimed)
		}
	}
	requireBigEqual(t, deposited, v.TotalDeposited)
	requireBigEqual(t, claimed, v.TotalClaimed)

	outstanding := new(big.Int).Sub(v.TotalDeposited, v.TotalClaimed)
	requireBigEqual(t, outstanding.Add(outstanding, big.NewInt(surplus)), x.balance(x.hash))
}

// requireBigEqual compares numbers by value, zero big.Int has several
// internal representations.
func requireBigEqual(t *testing.T, expected, actual *big.Int) {
	require.Zero(t, expected.Cmp(actual), "expected %s, got %s", expected, actual)
}

func TestEscrow_Initialize(t *testing.T) {
	x := newEscrowEnv(t)

	t.Run("not initialized", func(t *testing.T) {
		user := x.e.NewAccount(t)
		x.as(user).InvokeFail(t, escrowconst.ErrNotInitialized, "createDeposit",
			user.ScriptHash(), testContentID(t, "a"), int64(1), int64(1), int64(100))
		x.as(x.admin).InvokeFail(t, escrowconst.ErrNotInitialized, "updateRate", int64(1))
		x.as(x.admin).InvokeFail(t, escrowconst.ErrNotInitialized, "getVault")
	})

	t.Run("admin witness", func(t *testing.T) {
		x.as(x.target).InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "initializeConfig",
			x.admin.ScriptHash(), int64(testRate), int64(testMinDuration), x.target.ScriptHash())
	})

	h := x.as(x.admin).Invoke(t, stackitem.Null{}, "initializeConfig",
		x.admin.ScriptHash(), int64(testRate), int64(testMinDuration), x.target.ScriptHash())

	events, err := escrow.ConfigInitializedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, x.admin.ScriptHash(), events[0].Admin)
	require.Equal(t, x.target.ScriptHash(), events[0].WithdrawalTarget)

	cfg := x.config(t)
	require.Equal(t, x.admin.ScriptHash(), cfg.Admin)
	require.Equal(t, big.NewInt(testRate), cfg.RatePerBytePerDay)
	require.Equal(t, big.NewInt(testMinDuration), cfg.MinDurationDays)
	require.Equal(t, x.target.ScriptHash(), cfg.WithdrawalTarget)
	require.Equal(t, x.admin.ScriptHash(), cfg.Provider)

	v := x.vault(t)
	require.Zero(t, v.TotalDeposited.Sign())
	require.Zero(t, v.TotalClaimed.Sign())

	x.as(x.admin).Invoke(t, testPeriodsPerDay, "periodsPerDay")
	x.as(x.admin).Invoke(t, common.Version, "version")

	x.as(x.admin).InvokeFail(t, escrowconst.ErrAlreadyInitialized, "initializeConfig",
		x.admin.ScriptHash(), int64(1), int64(1), x.admin.ScriptHash())
}

func TestEscrow_CreateDeposit(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	u := x.as(user)
	contentID := testContentID(t, "scenario A")

	x.as(x.admin).Invoke(t, 1_000_000, "requiredAmount", int64(1000), int64(10))

	u.InvokeFail(t, escrowconst.ErrInsufficientDeposit, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(999_999))

	balance := x.balance(user.ScriptHash())
	h := u.Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))

	events, err := escrow.DepositCreatedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, user.ScriptHash(), events[0].User)
	require.Equal(t, contentID, events[0].Cid)
	require.Equal(t, big.NewInt(1_000_000), events[0].Amount)

	v := x.vault(t)
	require.Equal(t, big.NewInt(1_000_000), v.TotalDeposited)
	require.Zero(t, v.TotalClaimed.Sign())
	require.Equal(t, big.NewInt(1_000_000), x.balance(x.hash))

	// Network fees are paid by the user too.
	spent := new(big.Int).Sub(balance, x.balance(user.ScriptHash()))
	require.True(t, spent.Cmp(big.NewInt(1_000_000)) > 0)

	d := x.deposit(t, user.ScriptHash(), contentID)
	require.Equal(t, user.ScriptHash(), d.Depositor)
	require.Equal(t, contentID, d.CID)
	require.Equal(t, big.NewInt(1000), d.FileSize)
	require.Equal(t, big.NewInt(10), d.DurationDays)
	require.Equal(t, big.NewInt(1_000_000), d.DepositAmount)
	require.Equal(t, d.CreationTime, d.LastClaimedTime)
	require.Equal(t, events[0].Slot, d.CreationTime)
	require.Zero(t, d.TotalClaimed.Sign())

	u.InvokeFail(t, escrowconst.ErrDepositExists, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))

	x.checkInvariants(t, 0, user.ScriptHash())

	t.Run("overpayment", func(t *testing.T) {
		id := testContentID(t, "overpayment")
		u.Invoke(t, stackitem.Null{}, "createDeposit",
			user.ScriptHash(), id, int64(10), int64(1), int64(5000))
		require.Equal(t, big.NewInt(5000), x.deposit(t, user.ScriptHash(), id).DepositAmount)
		x.checkInvariants(t, 0, user.ScriptHash())
	})

	t.Run("another depositor, same content", func(t *testing.T) {
		other := x.e.NewAccount(t)
		x.as(other).Invoke(t, stackitem.Null{}, "createDeposit",
			other.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))
		require.Len(t, x.deposits(t, other.ScriptHash()), 1)
		require.Len(t, x.deposits(t, user.ScriptHash()), 2)
		x.checkInvariants(t, 0, user.ScriptHash(), other.ScriptHash())
	})

	t.Run("depositor witness", func(t *testing.T) {
		other := x.e.NewAccount(t)
		x.as(other).InvokeFail(t, escrowconst.ErrUnauthorizedUser, "createDeposit",
			user.ScriptHash(), testContentID(t, "witness"), int64(1), int64(1), int64(100))
	})
}

func TestEscrow_CreateDepositValidation(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	u := x.as(user)
	contentID := testContentID(t, "validation")

	create := func(t *testing.T, errMsg, id string, size, days, amount int64) {
		u.InvokeFail(t, errMsg, "createDeposit", user.ScriptHash(), id, size, days, amount)
	}

	t.Run("content identifier", func(t *testing.T) {
		create(t, escrowconst.ErrInvalidCID, "", 1, 1, 100)
		create(t, escrowconst.ErrInvalidCID, "not a cid", 1, 1, 100)
		create(t, escrowconst.ErrInvalidCID, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbd0", 1, 1, 100)
		create(t, escrowconst.ErrInvalidCID, "bafy", 1, 1, 100)
		create(t, escrowconst.ErrInvalidCID, "m"+contentID[1:], 1, 1, 100)

		mh, err := multihash.Sum(make([]byte, 150), multihash.IDENTITY, -1)
		require.NoError(t, err)
		long := cid.NewCidV1(cid.Raw, mh).String()
		require.Greater(t, len(long), escrowconst.MaxCIDLength)
		create(t, escrowconst.ErrCIDTooLong, long, 1, 1, 100)
	})
	t.Run("file size", func(t *testing.T) {
		create(t, escrowconst.ErrInvalidFileSize, contentID, 0, 1, 100)
		create(t, escrowconst.ErrInvalidFileSize, contentID, -1, 1, 100)
	})
	t.Run("duration", func(t *testing.T) {
		create(t, escrowconst.ErrInvalidDuration, contentID, 1, 0, 100)
		create(t, escrowconst.ErrInvalidDuration, contentID, 1, 1<<32, 100)

		x.as(x.admin).Invoke(t, stackitem.Null{}, "updateMinDuration", int64(5))
		create(t, escrowconst.ErrDurationTooShort, contentID, 1, 4, 1_000)
		x.as(x.admin).Invoke(t, stackitem.Null{}, "updateMinDuration", int64(testMinDuration))
	})
	t.Run("overflow", func(t *testing.T) {
		create(t, escrowconst.ErrArithmeticOverflow, contentID, 1<<40, 1<<20, 1<<62)
	})
	t.Run("amount", func(t *testing.T) {
		create(t, escrowconst.ErrInvalidAmount, contentID, 1, 1, -100)
	})

	require.Empty(t, x.deposits(t, user.ScriptHash()))
	require.Zero(t, x.vault(t).TotalDeposited.Sign())
}

func TestEscrow_ContentIdentifierForms(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	u := x.as(user)

	mh := randomMultihash(t)
	v1 := cid.NewCidV1(cid.DagProtobuf, mh)
	ids := []string{
		cid.NewCidV0(mh).String(),
		v1.String(),
		"z" + base58.Encode(v1.Bytes()),
	}
	for _, enc := range []multibase.Encoding{
		multibase.Base16, multibase.Base16Upper,
		multibase.Base32Upper,
		multibase.Base36, multibase.Base36Upper,
	} {
		id, err := v1.StringOfBase(enc)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for _, id := range ids {
		require.NoError(t, escrow.ValidateCID(id))
		u.Invoke(t, stackitem.Null{}, "createDeposit", user.ScriptHash(), id, int64(1), int64(1), int64(100))
	}
	require.Len(t, x.deposits(t, user.ScriptHash()), len(ids))

	t.Run("rejected forms", func(t *testing.T) {
		hex, err := v1.StringOfBase(multibase.Base16)
		require.NoError(t, err)
		b64, err := v1.StringOfBase(multibase.Base64)
		require.NoError(t, err)

		body := hex[1:]
		for _, id := range []string{
			hex[:1] + strings.ToUpper(body[:len(body)/2]) + body[len(body)/2:],
			hex[:len(hex)-1],
			"K" + strings.ToLower(body),
			b64,
		} {
			u.InvokeFail(t, escrowconst.ErrInvalidCID, "createDeposit",
				user.ScriptHash(), id, int64(1), int64(1), int64(100))
		}
	})
}

func TestEscrow_ExtendStorageDuration(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	u := x.as(user)
	contentID := testContentID(t, "extend")

	u.Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))
	before := x.deposit(t, user.ScriptHash(), contentID)

	x.skipBlocks(t, 3)

	u.InvokeFail(t, escrowconst.ErrInsufficientDeposit, "extendStorageDuration",
		user.ScriptHash(), contentID, int64(5), int64(499_999))
	u.InvokeFail(t, escrowconst.ErrInvalidDuration, "extendStorageDuration",
		user.ScriptHash(), contentID, int64(0), int64(0))
	u.InvokeFail(t, escrowconst.ErrInvalidCID, "extendStorageDuration",
		user.ScriptHash(), "bad", int64(5), int64(500_000))
	u.InvokeFail(t, escrowconst.ErrDepositNotFound, "extendStorageDuration",
		user.ScriptHash(), testContentID(t, "missing"), int64(5), int64(500_000))

	other := x.e.NewAccount(t)
	x.as(other).InvokeFail(t, escrowconst.ErrUnauthorizedUser, "extendStorageDuration",
		user.ScriptHash(), contentID, int64(5), int64(500_000))
	x.as(other).InvokeFail(t, escrowconst.ErrDepositNotFound, "extendStorageDuration",
		other.ScriptHash(), contentID, int64(5), int64(500_000))

	h := u.Invoke(t, stackitem.Null{}, "extendStorageDuration",
		user.ScriptHash(), contentID, int64(5), int64(600_000))

	events, err := escrow.StorageDurationExtendedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, big.NewInt(5), events[0].Duration)
	require.Equal(t, big.NewInt(600_000), events[0].Payment)
	require.Equal(t, big.NewInt(15), events[0].TotalDuration)
	require.Equal(t, big.NewInt(1_600_000), events[0].TotalAmount)

	after := x.deposit(t, user.ScriptHash(), contentID)
	require.Equal(t, new(big.Int).Add(before.DurationDays, big.NewInt(5)), after.DurationDays)
	require.Equal(t, new(big.Int).Add(before.DepositAmount, big.NewInt(600_000)), after.DepositAmount)
	require.Equal(t, before.LastClaimedTime, after.LastClaimedTime)
	require.Equal(t, before.CreationTime, after.CreationTime)
	require.Equal(t, big.NewInt(1_600_000), x.vault(t).TotalDeposited)

	x.checkInvariants(t, 0, user.ScriptHash())
}

func TestEscrow_ClaimRewards(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	provider := x.e.NewAccount(t)
	payee := x.e.NewAccount(t)
	contentID := testContentID(t, "claim")

	x.as(user).Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))

	x.as(x.admin).Invoke(t, stackitem.Null{}, "updateProvider", provider.ScriptHash())
	p := x.as(provider)

	t.Run("provider witness", func(t *testing.T) {
		x.as(user).InvokeFail(t, escrowconst.ErrUnauthorizedProvider, "claimRewards",
			user.ScriptHash(), contentID, user.ScriptHash())
		x.as(x.admin).InvokeFail(t, escrowconst.ErrUnauthorizedProvider, "claimRewards",
			user.ScriptHash(), contentID, payee.ScriptHash())
	})
	t.Run("invalid target", func(t *testing.T) {
		p.InvokeFail(t, escrowconst.ErrInvalidTarget, "claimRewards",
			user.ScriptHash(), contentID, x.hash)
	})
	t.Run("missing deposit", func(t *testing.T) {
		p.InvokeFail(t, escrowconst.ErrDepositNotFound, "claimRewards",
			user.ScriptHash(), testContentID(t, "missing"), payee.ScriptHash())
	})

	d := x.deposit(t, user.ScriptHash(), contentID)
	height := int64(x.e.Chain.BlockHeight())
	// Next claim is executed with the current height as the slot.
	x.skipBlocks(t, int(d.CreationTime.Int64()+10-height))

	// Preview must not add a block, otherwise it shows a smaller amount.
	preview, err := x.call(t, "claimableAmount", user.ScriptHash(), contentID).TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 100_000, preview.Int64())

	payeeBalance := x.balance(payee.ScriptHash())
	h := p.Invoke(t, stackitem.Null{}, "claimRewards", user.ScriptHash(), contentID, payee.ScriptHash())

	events, err := escrow.RewardsClaimedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	requireBigEqual(t, preview, events[0].Amount)
	require.Equal(t, big.NewInt(100_000), events[0].Amount)
	require.Equal(t, big.NewInt(100_000), events[0].TotalClaimed)
	require.Equal(t, payee.ScriptHash(), events[0].Target)

	require.Equal(t, new(big.Int).Add(payeeBalance, big.NewInt(100_000)), x.balance(payee.ScriptHash()))

	d = x.deposit(t, user.ScriptHash(), contentID)
	require.Equal(t, big.NewInt(100_000), d.TotalClaimed)
	require.Equal(t, events[0].Slot, d.LastClaimedTime)
	require.Equal(t, big.NewInt(100_000), x.vault(t).TotalClaimed)
	x.checkInvariants(t, 0, user.ScriptHash())

	t.Run("two claims in one block", func(t *testing.T) {
		x.skipBlocks(t, 2)

		tx1 := p.PrepareInvoke(t, "claimRewards", user.ScriptHash(), contentID, payee.ScriptHash())
		tx2 := p.PrepareInvoke(t, "claimRewards", user.ScriptHash(), contentID, payee.ScriptHash())
		x.e.AddNewBlock(t, tx1, tx2)

		x.e.CheckHalt(t, tx1.Hash(), stackitem.Null{})
		x.e.CheckFault(t, tx2.Hash(), escrowconst.ErrNothingToClaim)

		require.Equal(t, big.NewInt(130_000), x.deposit(t, user.ScriptHash(), contentID).TotalClaimed)
		x.checkInvariants(t, 0, user.ScriptHash())
	})

	t.Run("full vesting", func(t *testing.T) {
		x.skipBlocks(t, 100)

		p.Invoke(t, stackitem.Null{}, "claimRewards", user.ScriptHash(), contentID, payee.ScriptHash())

		d := x.deposit(t, user.ScriptHash(), contentID)
		require.Equal(t, d.DepositAmount, d.TotalClaimed)
		require.Zero(t, x.balance(x.hash).Sign())
		x.checkInvariants(t, 0, user.ScriptHash())

		x.as(x.admin).Invoke(t, 0, "claimableAmount", user.ScriptHash(), contentID)
		p.InvokeFail(t, escrowconst.ErrNothingToClaim, "claimRewards",
			user.ScriptHash(), contentID, payee.ScriptHash())
	})
}

func TestEscrow_ClaimRoundingToZero(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	contentID := testContentID(t, "dust")

	x.as(x.admin).Invoke(t, stackitem.Null{}, "updateRate", int64(0))

	// 99 units over 10 days of 10 periods vest with zero rate.
	x.as(user).Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), contentID, int64(1), int64(10), int64(99))
	x.as(x.admin).Invoke(t, 0, "availableFees")

	x.skipBlocks(t, 200)

	x.as(x.admin).Invoke(t, 0, "claimableAmount", user.ScriptHash(), contentID)
	x.as(x.admin).InvokeFail(t, escrowconst.ErrNothingToClaim, "claimRewards",
		user.ScriptHash(), contentID, x.target.ScriptHash())
	x.checkInvariants(t, 0, user.ScriptHash())
}

func TestEscrow_AdminOperations(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	stranger := x.e.NewAccount(t)
	s := x.as(stranger)
	a := x.as(x.admin)

	t.Run("gating", func(t *testing.T) {
		s.InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "updateRate", int64(1))
		s.InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "updateMinDuration", int64(1))
		s.InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "updateProvider", stranger.ScriptHash())
		s.InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "withdrawFees", x.target.ScriptHash(), int64(1))
		s.InvokeFail(t, escrowconst.ErrUnauthorizedAdmin, "update", []byte{}, []byte{}, nil)
	})

	t.Run("update rate", func(t *testing.T) {
		h := a.Invoke(t, stackitem.Null{}, "updateRate", int64(200))

		events, err := escrow.RateUpdatedEventsFromApplicationLog(x.appLog(t, h))
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, big.NewInt(testRate), events[0].OldRate)
		require.Equal(t, big.NewInt(200), events[0].NewRate)

		a.Invoke(t, 2_000_000, "requiredAmount", int64(1000), int64(10))
		a.InvokeFail(t, escrowconst.ErrInvalidAmount, "updateRate", int64(-1))
	})

	t.Run("update min duration", func(t *testing.T) {
		h := a.Invoke(t, stackitem.Null{}, "updateMinDuration", int64(30))

		events, err := escrow.MinDurationUpdatedEventsFromApplicationLog(x.appLog(t, h))
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, big.NewInt(testMinDuration), events[0].OldMinDuration)
		require.Equal(t, big.NewInt(30), events[0].NewMinDuration)
		require.Equal(t, big.NewInt(30), x.config(t).MinDurationDays)
	})

	t.Run("update provider", func(t *testing.T) {
		h := a.Invoke(t, stackitem.Null{}, "updateProvider", stranger.ScriptHash())

		events, err := escrow.ProviderUpdatedEventsFromApplicationLog(x.appLog(t, h))
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, x.admin.ScriptHash(), events[0].OldProvider)
		require.Equal(t, stranger.ScriptHash(), events[0].NewProvider)
		require.Equal(t, stranger.ScriptHash(), x.config(t).Provider)
	})

	t.Run("update contract", func(t *testing.T) {
		rawNEF, err := x.contract.NEF.Bytes()
		require.NoError(t, err)
		rawManifest, err := json.Marshal(x.contract.Manifest)
		require.NoError(t, err)

		a.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNEF, rawManifest, nil)
	})
}

func TestEscrow_WithdrawFees(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	a := x.as(x.admin)

	x.as(user).Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), testContentID(t, "fees"), int64(1000), int64(10), int64(1_000_000))

	gasHash, err := x.e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	h := x.e.NewInvoker(gasHash, x.admin).Invoke(t, true, "transfer",
		x.admin.ScriptHash(), x.hash, int64(5000), nil)

	events, err := escrow.VaultFundedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, x.admin.ScriptHash(), events[0].From)
	require.Equal(t, big.NewInt(5000), events[0].Amount)

	x.checkInvariants(t, 5000, user.ScriptHash())
	a.Invoke(t, 5000, "availableFees")

	a.InvokeFail(t, escrowconst.ErrInvalidWithdrawalTarget, "withdrawFees", x.admin.ScriptHash(), int64(100))
	a.InvokeFail(t, escrowconst.ErrInvalidAmount, "withdrawFees", x.target.ScriptHash(), int64(0))
	a.InvokeFail(t, escrowconst.ErrInsufficientEscrowFunds, "withdrawFees", x.target.ScriptHash(), int64(1_005_001))

	targetBalance := x.balance(x.target.ScriptHash())
	h = a.Invoke(t, stackitem.Null{}, "withdrawFees", x.target.ScriptHash(), int64(5000))

	withdrawn, err := escrow.FeesWithdrawnEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, withdrawn, 1)
	require.Equal(t, x.admin.ScriptHash(), withdrawn[0].Admin)
	require.Equal(t, big.NewInt(5000), withdrawn[0].Amount)

	require.Equal(t, new(big.Int).Add(targetBalance, big.NewInt(5000)), x.balance(x.target.ScriptHash()))
	x.checkInvariants(t, 0, user.ScriptHash())
	a.Invoke(t, 0, "availableFees")

	// Withdrawal is bounded by the actual balance only, so outstanding
	// obligations can be withdrawn as well.
	a.Invoke(t, stackitem.Null{}, "withdrawFees", x.target.ScriptHash(), int64(1000))
	require.Equal(t, big.NewInt(999_000), x.balance(x.hash))
	require.Equal(t, big.NewInt(1_000_000), x.vault(t).TotalDeposited)
}

func TestEscrow_VaultTopUp(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	contentID := testContentID(t, "top-up")

	gasHash, err := x.e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	t.Run("deposit payments", func(t *testing.T) {
		u := x.as(user)
		for _, h := range []util.Uint256{
			u.Invoke(t, stackitem.Null{}, "createDeposit",
				user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000)),
			u.Invoke(t, stackitem.Null{}, "extendStorageDuration",
				user.ScriptHash(), contentID, int64(5), int64(500_000)),
		} {
			events, err := escrow.VaultFundedEventsFromApplicationLog(x.appLog(t, h))
			require.NoError(t, err)
			require.Empty(t, events)
		}

		cs := x.e.Chain.GetContractState(x.hash)
		require.NotNil(t, cs)
		require.Nil(t, x.e.Chain.GetStorageItem(cs.ID, []byte("pulling")))
		x.checkInvariants(t, 0, user.ScriptHash())
	})

	var surplus int64
	for name, data := range map[string]any{
		"no data":      nil,
		"bytes":        []byte("\x65\x73"),
		"integer":      int64(7),
		"string":       "top-up",
		"empty bytes":  []byte{},
		"boolean data": true,
	} {
		t.Run(name, func(t *testing.T) {
			h := x.e.NewInvoker(gasHash, user).Invoke(t, true, "transfer",
				user.ScriptHash(), x.hash, int64(300), data)

			events, err := escrow.VaultFundedEventsFromApplicationLog(x.appLog(t, h))
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.Equal(t, user.ScriptHash(), events[0].From)
			require.Equal(t, big.NewInt(300), events[0].Amount)

			surplus += 300
			x.checkInvariants(t, surplus, user.ScriptHash())
		})
	}
	x.as(x.admin).Invoke(t, surplus, "availableFees")
}

func TestEscrow_ClaimReentrancy(t *testing.T) {
	x := newInitializedEscrowEnv(t)
	user := x.e.NewAccount(t)
	contentID := testContentID(t, "reentrancy")

	x.as(user).Invoke(t, stackitem.Null{}, "createDeposit",
		user.ScriptHash(), contentID, int64(1000), int64(10), int64(1_000_000))

	recv := neotest.CompileFile(t, x.e.CommitteeHash, claimRecvPath, path.Join(claimRecvPath, "config.yml"))
	x.e.DeployContract(t, recv, nil)

	r := x.e.NewInvoker(recv.Hash, x.admin)
	r.Invoke(t, stackitem.Null{}, "arm", x.hash, user.ScriptHash(), contentID)

	x.skipBlocks(t, 5)

	h := x.as(x.admin).Invoke(t, stackitem.Null{}, "claimRewards", user.ScriptHash(), contentID, recv.Hash)

	events, err := escrow.RewardsClaimedEventsFromApplicationLog(x.appLog(t, h))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Positive(t, events[0].Amount.Sign())

	r.Invoke(t, events[0].Amount, "received")
	r.Invoke(t, escrowconst.ErrNothingToClaim, "reentry")

	d := x.deposit(t, user.ScriptHash(), contentID)
	require.Equal(t, events[0].Amount, d.TotalClaimed)
	require.Equal(t, events[0].Amount, x.balance(recv.Hash))
	x.checkInvariants(t, 0, user.ScriptHash())
}
