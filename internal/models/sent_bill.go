package models

// SentBillRecord is one entry of the per-workspace sent bills log
type SentBillRecord struct {
	InvoiceNumber string `json:"invoiceNumber"`
	CustomerPhone string `json:"customerPhone"`
	SentAt        string `json:"sentAt"` // ISO 8601
}
