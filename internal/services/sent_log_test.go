package services

import (
	"fmt"
	"testing"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

func record(n int) models.SentBillRecord {
	return models.SentBillRecord{
		InvoiceNumber: fmt.Sprintf("INV-%03d", n),
		CustomerPhone: "9876543210",
		SentAt:        "2026-10-16T10:00:00.000Z",
	}
}

func TestSentLogAppendAndHistory(t *testing.T) {
	sentLog := NewSentLog(storage.NewMemoryStore())

	if got := sentLog.History("ws1"); got == nil || len(got) != 0 {
		t.Fatalf("History() on empty log = %v, expected empty slice", got)
	}

	for i := 1; i <= 3; i++ {
		if err := sentLog.Append("ws1", record(i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	history := sentLog.History("ws1")
	if len(history) != 3 {
		t.Fatalf("History() returned %d records, expected 3", len(history))
	}
	for i, rec := range history {
		if rec.InvoiceNumber != record(i+1).InvoiceNumber {
			t.Errorf("History()[%d] = %s, expected insertion order", i, rec.InvoiceNumber)
		}
	}

	if len(sentLog.History("ws2")) != 0 {
		t.Error("History(ws2) should not see ws1 records")
	}
}

func TestSentLogEvictsOldestAtCapacity(t *testing.T) {
	sentLog := NewSentLog(storage.NewMemoryStore())

	for i := 1; i <= SentLogCapacity; i++ {
		if err := sentLog.Append("ws1", record(i)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	if got := len(sentLog.History("ws1")); got != SentLogCapacity {
		t.Fatalf("History() returned %d records, expected %d", got, SentLogCapacity)
	}

	if err := sentLog.Append("ws1", record(101)); err != nil {
		t.Fatalf("Append(101) error = %v", err)
	}

	history := sentLog.History("ws1")
	if len(history) != SentLogCapacity {
		t.Fatalf("History() returned %d records, expected %d", len(history), SentLogCapacity)
	}
	if history[0].InvoiceNumber != "INV-002" {
		t.Errorf("oldest record = %s, expected INV-002", history[0].InvoiceNumber)
	}
	if history[len(history)-1].InvoiceNumber != "INV-101" {
		t.Errorf("newest record = %s, expected INV-101", history[len(history)-1].InvoiceNumber)
	}
	if sentLog.WasSent("INV-001", "ws1") {
		t.Error("WasSent(INV-001) = true after eviction")
	}
}

func TestSentLogCorruptValueReadsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(storage.SentBillsKey("ws1"), []byte("[{broken"))
	sentLog := NewSentLog(store)

	if got := sentLog.History("ws1"); len(got) != 0 {
		t.Errorf("History() on corrupt data = %v, expected empty", got)
	}
	if sentLog.WasSent("INV-001", "ws1") {
		t.Error("WasSent() on corrupt data = true")
	}

	if err := sentLog.Append("ws1", record(1)); err != nil {
		t.Fatalf("Append() over corrupt data error = %v", err)
	}
	if !sentLog.WasSent("INV-001", "ws1") {
		t.Error("WasSent() = false after Append over corrupt data")
	}
}

func TestSentLogWasSent(t *testing.T) {
	sentLog := NewSentLog(storage.NewMemoryStore())
	_ = sentLog.Append("ws1", record(7))

	tests := []struct {
		invoice   string
		workspace string
		expected  bool
	}{
		{"INV-007", "ws1", true},
		{"INV-008", "ws1", false},
		{"INV-007", "ws2", false},
	}

	for _, tt := range tests {
		t.Run(tt.invoice+"@"+tt.workspace, func(t *testing.T) {
			if got := sentLog.WasSent(tt.invoice, tt.workspace); got != tt.expected {
				t.Errorf("WasSent(%s, %s) = %v, expected %v", tt.invoice, tt.workspace, got, tt.expected)
			}
		})
	}
}
