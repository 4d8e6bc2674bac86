package models

import "github.com/shopspring/decimal"

// BillItem is a single line on a bill
type BillItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // In hundredths of the display currency
}

// BillData is a snapshot of an invoice used to build the WhatsApp message
type BillData struct {
	InvoiceNumber string `json:"invoiceNumber"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Date          string `json:"date"` // Display strings, never parsed
	Time          string `json:"time"`

	Items []BillItem `json:"items"`

	// Amounts are already in display currency (no /100 like item prices)
	Subtotal decimal.Decimal  `json:"subtotal"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Total    decimal.Decimal  `json:"total"`

	PaymentMethod   string `json:"paymentMethod"`
	BusinessName    string `json:"businessName"`
	BusinessPhone   string `json:"businessPhone,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`
}

// HasDiscount reports whether a positive discount was applied
func (b *BillData) HasDiscount() bool {
	return b.Discount != nil && b.Discount.IsPositive()
}

// HasTax reports whether a positive tax amount was applied
func (b *BillData) HasTax() bool {
	return b.Tax != nil && b.Tax.IsPositive()
}
