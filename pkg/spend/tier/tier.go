// Package tier classifies budget consumption into discrete alert levels.
//
// The classification drives user-facing alerting: a budget bar turns
// yellow at Warning, red at Critical, and the client blocks new paid
// operations at Exceeded. Classification is a pure function of the
// current daily total and limit. It is recomputed on every read and
// must never be cached, because the ledger mutates independently of
// any consumer holding a previous result.
package tier

// Tier is a discrete classification of budget consumption.
type Tier string

const (
	// Normal means consumption is below 70% of the daily limit.
	Normal Tier = "normal"

	// Warning means consumption is at 70-89% of the daily limit.
	Warning Tier = "warning"

	// Critical means consumption is at 90-99% of the daily limit.
	Critical Tier = "critical"

	// Exceeded means consumption has reached or passed the daily limit.
	Exceeded Tier = "exceeded"
)

// Tier boundaries as fractions of the daily limit. Each boundary is
// inclusive on its lower bound: exactly 70% is Warning, exactly 90% is
// Critical, exactly 100% is Exceeded.
const (
	WarningThreshold  = 0.70
	CriticalThreshold = 0.90
	ExceededThreshold = 1.00
)

// Classify returns the tier for the given daily consumption.
//
// A non-positive limit classifies as Exceeded: with no budget to spend
// against, any consumption level should block further paid operations.
func Classify(dailyTotal, dailyLimit float64) Tier {
	if dailyLimit <= 0 {
		return Exceeded
	}

	ratio := dailyTotal / dailyLimit
	switch {
	case ratio >= ExceededThreshold:
		return Exceeded
	case ratio >= CriticalThreshold:
		return Critical
	case ratio >= WarningThreshold:
		return Warning
	default:
		return Normal
	}
}

// Severity returns a numeric rank for the tier, suitable for gauges and
// ordering checks. Normal is 0 and Exceeded is 3.
func Severity(t Tier) int {
	switch t {
	case Warning:
		return 1
	case Critical:
		return 2
	case Exceeded:
		return 3
	default:
		return 0
	}
}
