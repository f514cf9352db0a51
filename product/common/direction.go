package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PayReceive describes whether a leg's amounts are paid to or received from the counterparty.
type PayReceive string

const (
	Pay     PayReceive = "PAY"
	Receive PayReceive = "RECEIVE"
)

// ParsePayReceive accepts "Pay", "P", "Rec", "Receive" and "R" in any case.
func ParsePayReceive(s string) (PayReceive, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAY", "P":
		return Pay, nil
	case "RECEIVE", "REC", "R":
		return Receive, nil
	default:
		return "", fmt.Errorf("%w: pay/receive %q", ErrInvalidValue, s)
	}
}

func (p PayReceive) IsPay() bool     { return p == Pay }
func (p PayReceive) IsReceive() bool { return p == Receive }

// Opposite flips the direction.
func (p PayReceive) Opposite() PayReceive {
	if p == Pay {
		return Receive
	}
	return Pay
}

// Normalize returns amount signed by direction: negative when paying.
func (p PayReceive) Normalize(amount decimal.Decimal) decimal.Decimal {
	if p == Pay {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// BuySell describes the side of a trade from the owner's perspective.
type BuySell string

const (
	Buy  BuySell = "BUY"
	Sell BuySell = "SELL"
)

// ParseBuySell accepts "Buy", "B", "Sell" and "S" in any case.
func ParseBuySell(s string) (BuySell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: buy/sell %q", ErrInvalidValue, s)
	}
}

func (b BuySell) IsBuy() bool { return b == Buy }

// PayReceive maps buying to paying, as for the fixed leg of a swap or the premium of protection.
func (b BuySell) PayReceive() PayReceive {
	if b == Buy {
		return Pay
	}
	return Receive
}
