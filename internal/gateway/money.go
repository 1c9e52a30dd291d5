package gateway

import (
	"errors"   // Sentinel errors
	"math/big" // Trailing zero stripping

	"github.com/shopspring/decimal" // Exact prices
)

// ErrInvalidAmount is returned for prices that cannot be charged
var ErrInvalidAmount = errors.New("invalid amount")

const (
	maxMinorUnits     = 99999999 // largest amount the gateway accepts (eight digits)
	maxIntegerDigits  = 6        // digits left of the point in maxMinorUnits
	minorUnitExponent = -2
)

// ToMinorUnits converts a price in major units to the gateway's integer
// minor units using exact decimal arithmetic. Prices must be positive and
// carry at most two decimal places.
//
// The magnitude is checked from the digit count and exponent before any
// scaling, so an input like 1e99999999 is rejected without building a huge
// big.Int.
func ToMinorUnits(price decimal.Decimal) (int64, error) {
	if !price.IsPositive() {
		return 0, ErrInvalidAmount
	}
	exp := price.Exponent()
	if price.NumDigits()+int(exp) > maxIntegerDigits {
		return 0, ErrInvalidAmount
	}

	// 8.200 is a valid price; strip trailing zeros down to two places
	coef := price.Coefficient()
	ten := big.NewInt(10)
	var quo, rem big.Int
	for exp < minorUnitExponent {
		quo.QuoRem(coef, ten, &rem)
		if rem.Sign() != 0 {
			return 0, ErrInvalidAmount
		}
		coef.Set(&quo)
		exp++
	}

	minor := decimal.NewFromBigInt(coef, exp-minorUnitExponent)
	if !minor.IsInteger() || minor.GreaterThan(decimal.NewFromInt(maxMinorUnits)) {
		return 0, ErrInvalidAmount
	}
	return minor.IntPart(), nil
}
