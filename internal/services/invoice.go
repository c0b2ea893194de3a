package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storebill/internal/models"
)

// DefaultTaxPercentage applies when a request does not specify one.
var DefaultTaxPercentage = decimal.RequireFromString("18.00")

var oneHundred = decimal.NewFromInt(100)

// InvoiceService encapsulates the invoice-creation workflow: customer
// resolution, stock decrement, line capture and totals computation, all
// inside a single transaction.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// InvoiceLine is one (product, quantity) pair of an invoice request.
type InvoiceLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// NewCustomer carries inline customer attributes for creation during invoicing.
type NewCustomer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CreateInvoiceInput references an existing customer by id OR carries inline
// new-customer attributes. TaxPercentage defaults to 18.00 when nil.
type CreateInvoiceInput struct {
	CustomerID    uint
	NewCustomer   *NewCustomer
	TaxPercentage *decimal.Decimal
	Items         []InvoiceLine
}

// Create runs the whole workflow atomically: any validation failure on any
// line rolls back every prior stock decrement and creates nothing.
// Non-validation failures are returned wrapped for the caller to surface as
// persistence errors.
func (s *InvoiceService) Create(ctx context.Context, storeID uint, in CreateInvoiceInput) (*models.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, &ValidationError{Code: CodeItemsRequired, Field: "items", Detail: "at least one line item required"}
	}
	tax := DefaultTaxPercentage
	if in.TaxPercentage != nil {
		tax = *in.TaxPercentage
		if tax.Sign() < 0 || tax.GreaterThan(oneHundred) {
			return nil, &ValidationError{Code: CodeInvalidTax, Field: "tax_percentage", Detail: "must be between 0 and 100"}
		}
	}

	var invoice models.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := resolveCustomer(tx, storeID, in)
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			StoreID:       storeID,
			CustomerID:    customer.ID,
			TaxPercentage: tax,
			Subtotal:      decimal.Zero,
			TaxAmount:     decimal.Zero,
			Total:         decimal.Zero,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		subtotal := decimal.Zero
		for i, line := range in.Items {
			if line.ProductID == 0 || line.Quantity <= 0 {
				return &ValidationError{Code: CodeInvalidProduct, Field: itemField(i), Detail: "product id and positive quantity required"}
			}
			var product models.Product
			if err := tx.Where("id = ? AND store_id = ?", line.ProductID, storeID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ValidationError{Code: CodeInvalidProduct, Field: itemField(i), Detail: fmt.Sprintf("product %d not found in store", line.ProductID)}
				}
				return fmt.Errorf("load product %d: %w", line.ProductID, err)
			}

			// Conditional decrement: the WHERE guard makes check-and-decrement a
			// single statement, so concurrent requests cannot drive stock negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND store_id = ? AND stock >= ?", product.ID, storeID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock for product %d: %w", product.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return &ValidationError{
					Code:   CodeInsufficientStock,
					Field:  itemField(i),
					Detail: fmt.Sprintf("requested %d of %q, only %d in stock", line.Quantity, product.Name, product.Stock),
				}
			}

			// Capture the unit price now: later product price changes must never
			// alter this invoice.
			item := models.InvoiceItem{
				InvoiceID: invoice.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create invoice item: %w", err)
			}
			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		subtotal = subtotal.Round(2)
		taxAmount := subtotal.Mul(tax).Div(oneHundred).Round(2)
		total := subtotal.Add(taxAmount)
		if err := tx.Model(&invoice).Updates(map[string]any{
			"subtotal":   subtotal,
			"tax_amount": taxAmount,
			"total":      total,
		}).Error; err != nil {
			return fmt.Errorf("persist totals: %w", err)
		}

		if err := tx.Preload("Items").Preload("Customer").First(&invoice, invoice.ID).Error; err != nil {
			return fmt.Errorf("reload invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func resolveCustomer(tx *gorm.DB, storeID uint, in CreateInvoiceInput) (*models.Customer, error) {
	if in.NewCustomer != nil {
		if strings.TrimSpace(in.NewCustomer.Name) == "" {
			return nil, &ValidationError{Code: CodeCustomerRequired, Field: "new_customer.name", Detail: "name required"}
		}
		c := models.Customer{
			StoreID: storeID,
			Name:    strings.TrimSpace(in.NewCustomer.Name),
			Address: in.NewCustomer.Address,
			Phone:   in.NewCustomer.Phone,
			Email:   in.NewCustomer.Email,
		}
		if err := tx.Create(&c).Error; err != nil {
			return nil, fmt.Errorf("create customer: %w", err)
		}
		return &c, nil
	}
	if in.CustomerID == 0 {
		return nil, &ValidationError{Code: CodeCustomerRequired, Field: "customer_id", Detail: "customer_id or new_customer required"}
	}
	var c models.Customer
	if err := tx.Where("id = ? AND store_id = ?", in.CustomerID, storeID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Code: CodeInvalidCustomer, Field: "customer_id", Detail: fmt.Sprintf("customer %d not found in store", in.CustomerID)}
		}
		return nil, fmt.Errorf("load customer %d: %w", in.CustomerID, err)
	}
	return &c, nil
}

func itemField(i int) string { return fmt.Sprintf("items[%d]", i) }
