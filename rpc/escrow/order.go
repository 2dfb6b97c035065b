package escrow

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/toju-network/escrow-contract/contracts/escrow/accounting"
	"github.com/toju-network/escrow-contract/contracts/escrow/escrowconst"
)

const depositPrefix = 'd'

// DepositKey returns the storage key of the deposit of depositor for the
// content identifier.
func DepositKey(depositor util.Uint160, contentID string) []byte {
	h := sha256.Sum256([]byte(contentID))

	key := make([]byte, 0, 1+util.Uint160Size+sha256.Size)
	key = append(key, depositPrefix)
	key = append(key, depositor.BytesBE()...)
	return append(key, h[:]...)
}

// DepositPrefix returns the storage key prefix shared by all deposits of
// the depositor.
func DepositPrefix(depositor util.Uint160) []byte {
	return append([]byte{depositPrefix}, depositor.BytesBE()...)
}

// ValidateCID checks content identifier syntax and length the same way the
// contract does. CIDv0 and CIDv1 in base16, base32, base36 or base58btc
// multibase encoding are accepted, case-insensitive encodings must not mix
// letter cases.
func ValidateCID(contentID string) error {
	c, err := cid.Decode(contentID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCID, err)
	}

	if c.Version() == 1 {
		body := contentID[1:]
		switch multibase.Encoding(contentID[0]) {
		case multibase.Base58BTC:
		case multibase.Base16, multibase.Base32, multibase.Base36:
			if body != strings.ToLower(body) {
				return fmt.Errorf("%w: mixed case", ErrInvalidCID)
			}
		case multibase.Base16Upper, multibase.Base32Upper, multibase.Base36Upper:
			if body != strings.ToUpper(body) {
				return fmt.Errorf("%w: mixed case", ErrInvalidCID)
			}
		default:
			return fmt.Errorf("%w: unsupported multibase prefix %q", ErrInvalidCID, contentID[0])
		}
	} else if !strings.HasPrefix(contentID, "Qm") {
		return fmt.Errorf("%w: malformed CIDv0", ErrInvalidCID)
	}

	if len(contentID) > escrowconst.MaxCIDLength {
		return fmt.Errorf("%w: %d bytes", ErrCIDTooLong, len(contentID))
	}
	return nil
}

// CheckOrder runs storage order validation of CreateDeposit against the given
// configuration snapshot, so that a transaction which is going to fail is not
// sent. It returns the required amount on success.
func CheckOrder(cfg *EscrowConfig, contentID string, fileSize, durationDays, amount *big.Int) (*big.Int, error) {
	if err := ValidateCID(contentID); err != nil {
		return nil, err
	}

	size, ok := toInt(fileSize, accounting.MaxAmount)
	if !ok || size == 0 {
		return nil, ErrInvalidFileSize
	}
	days, ok := toInt(durationDays, accounting.MaxDuration)
	if !ok || days == 0 {
		return nil, ErrInvalidDuration
	}
	if durationDays.Cmp(cfg.MinDurationDays) < 0 {
		return nil, ErrDurationTooShort
	}

	rate, ok := toInt(cfg.RatePerBytePerDay, accounting.MaxAmount)
	if !ok {
		return nil, ErrArithmeticOverflow
	}
	required, ok := accounting.RequiredAmount(size, days, rate)
	if !ok {
		return nil, ErrArithmeticOverflow
	}

	if _, ok := toInt(amount, accounting.MaxAmount); !ok {
		return nil, ErrInvalidAmount
	}
	res := big.NewInt(int64(required))
	if amount.Cmp(res) < 0 {
		return nil, fmt.Errorf("%w: %s required", ErrInsufficientDeposit, res)
	}
	return res, nil
}

func toInt(v *big.Int, limit int64) (int, bool) {
	if v == nil || v.Sign() < 0 || !v.IsInt64() || v.Int64() > limit {
		return 0, false
	}
	return int(v.Int64()), true
}
