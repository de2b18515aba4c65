package sale

import (
	"regexp"
	"testing"
)

func TestNewInvoiceNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := NewInvoiceNumber()
		if !pattern.MatchString(n) {
			t.Fatalf("invoice number %q does not match %s", n, pattern)
		}
		if seen[n] {
			t.Fatalf("duplicate invoice number %q after %d generations", n, i)
		}
		seen[n] = true
	}
}
