package ton

import (
	"strings"
	"testing"
)

const testAddr = "EQDrjaLahLkMB-hMCmkzOyBuHJ139ZUYmPHu6RRBKnbdLIYI"

func TestValidAddress(t *testing.T) {
	cases := []struct {
		addr string
		want bool
	}{
		{testAddr, true},
		{"UQ" + testAddr[2:], true},
		{"", false},
		{"EQshort", false},
		{"XX" + testAddr[2:], false},
		{testAddr + "x", false},
	}
	for _, tc := range cases {
		if got := ValidAddress(tc.addr); got != tc.want {
			t.Fatalf("ValidAddress(%q) = %v; want %v", tc.addr, got, tc.want)
		}
	}
}

func TestPaymentLink(t *testing.T) {
	link, err := PaymentLink(testAddr, 2.5, "coins for player 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "ton://transfer/"+testAddr+"?") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "amount=2500000000") {
		t.Fatalf("expected nanoTON amount in link: %s", link)
	}
	if !strings.Contains(link, "text=coins+for+player+7") {
		t.Fatalf("expected escaped comment in link: %s", link)
	}
}

func TestPaymentLink_BadReceiver(t *testing.T) {
	if _, err := PaymentLink("not-an-address", 1, ""); err == nil {
		t.Fatal("expected error for invalid receiver")
	}
}

func TestNanoConversions(t *testing.T) {
	if TONToNano(1.5) != 1_500_000_000 {
		t.Fatalf("TONToNano(1.5) = %d", TONToNano(1.5))
	}
	if NanoToTON(500_000_000) != 0.5 {
		t.Fatalf("NanoToTON(5e8) = %v", NanoToTON(500_000_000))
	}
}
