package sale

import (
	"strings"

	"github.com/google/uuid"
)

// NewInvoiceNumber returns a human-readable identifier like "INV-9F2C01AB".
// Generation is pure entropy; actual uniqueness is guaranteed by the unique
// index on sales.invoice_number.
func NewInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}
