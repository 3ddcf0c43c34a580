package ton

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// NanoTON is the smallest TON unit (1 TON = 10^9 nanoTON).
	NanoTON = 1_000_000_000

	// AddressLength is the length of a user-friendly TON address.
	AddressLength = 48
)

// ValidAddress reports whether an address looks like a user-friendly TON
// wallet address: EQ or UQ prefix and exactly 48 characters.
func ValidAddress(address string) bool {
	if len(address) != AddressLength {
		return false
	}
	return strings.HasPrefix(address, "EQ") || strings.HasPrefix(address, "UQ")
}

// TONToNano converts TON to nanoTON.
func TONToNano(ton float64) int64 {
	return int64(ton * NanoTON)
}

// NanoToTON converts nanoTON to TON.
func NanoToTON(nano int64) float64 {
	return float64(nano) / NanoTON
}

// PaymentLink builds a ton://transfer deep link for an out-of-band payment.
// The caller completes the transfer in their wallet; crediting happens later
// through the deposit path once the payment is confirmed externally.
func PaymentLink(receiver string, amountTON float64, comment string) (string, error) {
	if !ValidAddress(receiver) {
		return "", fmt.Errorf("invalid receiving address %q", receiver)
	}

	link := "ton://transfer/" + receiver

	var params []string
	if nano := TONToNano(amountTON); nano > 0 {
		params = append(params, fmt.Sprintf("amount=%d", nano))
	}
	if comment != "" {
		params = append(params, "text="+url.QueryEscape(comment))
	}
	if len(params) > 0 {
		link += "?" + strings.Join(params, "&")
	}
	return link, nil
}
