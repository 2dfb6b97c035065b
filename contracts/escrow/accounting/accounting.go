/*
Package accounting implements escrow pricing and vesting arithmetic.

The package is used both by the Escrow contract and by off-chain code, so it
sticks to the subset of Go supported by the NeoVM compiler: plain integer
math without imports. Every operation keeps its result within the
[0, MaxAmount] range, overflow is reported instead of wrapping.
*/
package accounting

const (
	// MaxAmount is the upper bound of all amounts, sizes and rates.
	MaxAmount = 1<<63 - 1

	// MaxDuration is the upper bound of a storage duration in days.
	MaxDuration = 1<<32 - 1
)

// Mul returns a*b and true if both arguments are non-negative and the
// product does not exceed MaxAmount.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > MaxAmount/b {
		return 0, false
	}
	return a * b, true
}

// Add returns a+b and true if both arguments are non-negative and the sum
// does not exceed limit.
func Add(a, b, limit int) (int, bool) {
	if a < 0 || b < 0 || a > limit || b > limit-a {
		return 0, false
	}
	return a + b, true
}

// RequiredAmount returns the price of storing fileSize bytes for the given
// number of days at rate per byte per day.
func RequiredAmount(fileSize, days, rate int) (int, bool) {
	v, ok := Mul(fileSize, days)
	if !ok {
		return 0, false
	}
	return Mul(v, rate)
}

// TotalPeriods returns the number of vesting periods of the deposit.
func TotalPeriods(days, periodsPerDay int) (int, bool) {
	return Mul(days, periodsPerDay)
}

// RatePerPeriod returns the amount vested per period. The remainder of the
// division is not vested on schedule, see ScheduleRemainder.
func RatePerPeriod(amount, days, periodsPerDay int) int {
	total, ok := TotalPeriods(days, periodsPerDay)
	if !ok || total == 0 || amount <= 0 {
		return 0
	}
	return amount / total
}

// ScheduleRemainder returns the part of amount which is still unvested
// when the whole duration has elapsed. It's the truncation remainder of
// RatePerPeriod. A remainder equal to amount means the deposit never vests.
func ScheduleRemainder(amount, days, periodsPerDay int) int {
	total, ok := TotalPeriods(days, periodsPerDay)
	if !ok || total == 0 || amount <= 0 {
		return amount
	}
	return amount % total
}

// Claimable returns the amount vested since lastClaimed and not claimed yet.
// The result never exceeds amount-claimed.
func Claimable(amount, claimed, days, periodsPerDay, lastClaimed, now int) int {
	remaining := amount - claimed
	if remaining <= 0 {
		return 0
	}

	elapsed := now - lastClaimed
	if elapsed <= 0 {
		return 0
	}

	rate := RatePerPeriod(amount, days, periodsPerDay)
	if rate == 0 {
		return 0
	}

	vested, ok := Mul(rate, elapsed)
	if !ok || vested > remaining {
		return remaining
	}
	return vested
}
