package services

import (
	"log"
	"sync"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

// SentLogCapacity is the number of records kept per workspace
const SentLogCapacity = 100

// SentLog is the bounded per-workspace history of sent bills.
// Records are kept oldest first and evicted FIFO.
type SentLog struct {
	store    storage.Store
	capacity int

	// Serializes read-modify-write within this process only
	mu sync.Mutex
}

// NewSentLog creates a sent log over store
func NewSentLog(store storage.Store) *SentLog {
	return &SentLog{
		store:    store,
		capacity: SentLogCapacity,
	}
}

// Append adds record to the end of the workspace log, evicting the oldest
// records beyond capacity.
func (l *SentLog) Append(workspaceID string, record models.SentBillRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := append(l.History(workspaceID), record)
	if len(records) > l.capacity {
		records = records[len(records)-l.capacity:]
	}
	return storage.SetJSON(l.store, storage.SentBillsKey(workspaceID), records)
}

// History returns the workspace log oldest first. Missing and corrupt data
// both read as an empty history.
func (l *SentLog) History(workspaceID string) []models.SentBillRecord {
	var records []models.SentBillRecord
	err := storage.GetJSON(l.store, storage.SentBillsKey(workspaceID), &records)
	if err != nil {
		if storage.IsCorrupt(err) {
			log.Printf("⚠️  Ignoring sent bills log for workspace %s: %v", workspaceID, err)
		}
		return []models.SentBillRecord{}
	}
	if records == nil {
		records = []models.SentBillRecord{}
	}
	return records
}

// WasSent reports whether invoiceNumber is in the workspace log
func (l *SentLog) WasSent(invoiceNumber, workspaceID string) bool {
	for _, record := range l.History(workspaceID) {
		if record.InvoiceNumber == invoiceNumber {
			return true
		}
	}
	return false
}
