package services

// Validation error codes surfaced to the HTTP layer as-is.
const (
	CodeCustomerRequired  = "customer_required"
	CodeInvalidCustomer   = "invalid_customer"
	CodeInvalidProduct    = "invalid_product"
	CodeInsufficientStock = "insufficient_stock"
	CodeItemsRequired     = "items_required"
	CodeInvalidTax        = "invalid_tax_percentage"
)

// ValidationError rejects an invoice-creation request before anything is
// committed. Field identifies the offending input (e.g. "items[2]") so the
// caller can tell which line failed.
type ValidationError struct {
	Code   string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Code + ": " + e.Field
	}
	return e.Code + ": " + e.Field + ": " + e.Detail
}
