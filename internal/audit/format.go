package audit

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/toju-network/escrow-contract/contracts/escrow/escrowconst"
)

// FormatGAS represents the amount of GAS fractions in GAS with all the
// significant decimals, e.g. "1.5 GAS".
func FormatGAS(amount *big.Int) string {
	return toGAS(amount).String() + " GAS"
}

func toGAS(amount *big.Int) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -escrowconst.GASDecimals)
}

func toFloat(amount *big.Int) float64 {
	f, _ := toGAS(amount).Float64()
	return f
}
