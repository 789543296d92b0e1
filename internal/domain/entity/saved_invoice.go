package entity

import "time"

// SavedInvoice records a rendered PDF persisted to storage
type SavedInvoice struct {
	ID         int64     `json:"id"`
	UUID       string    `json:"uuid"`
	InvoiceNo  string    `json:"invoice_no"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	SizeBytes  int64     `json:"size_bytes"`
	GrandTotal float64   `json:"grand_total"`
	CreatedAt  time.Time `json:"created_at"`
}
