package models

import (
	"time"

	"herdbook/internal/uuid"

	"gorm.io/gorm"
)

// LedgerType is the direction of a ledger transaction.
type LedgerType string

const (
	LedgerTypeIncome  LedgerType = "Income"
	LedgerTypeExpense LedgerType = "Expense"
)

// Valid reports whether t is one of the known ledger types.
func (t LedgerType) Valid() bool {
	return t == LedgerTypeIncome || t == LedgerTypeExpense
}

// LedgerEntry is one income or expense transaction.
//
// Entries derived from a domain record carry the record's type and id in
// SourceRecordType/SourceRecordID; the pair is unique, so at most one entry
// can exist per record. Manual entries leave both columns NULL, which the
// unique index treats as distinct. Description holds the "{Type}:{id}" key
// for derived entries.
//
// Ledger rows are deleted physically; a soft-deleted tombstone would keep
// occupying the unique source pair.
type LedgerEntry struct {
	ID               string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string            `gorm:"type:uuid;not null;index" json:"user_id"`
	TransactionType  LedgerType        `gorm:"not null" json:"transaction_type"`
	Category         string            `gorm:"not null;index" json:"category"`
	Amount           int64             `gorm:"type:bigint;not null" json:"amount"`
	TransactionDate  time.Time         `gorm:"not null;index" json:"transaction_date"`
	AnimalID         *string           `gorm:"type:uuid;index" json:"animal_id,omitempty"`
	Description      string            `gorm:"index" json:"description"`
	BuyerName        string            `json:"buyer_name,omitempty"`
	SupplierName     string            `json:"supplier_name,omitempty"`
	ReceiptPhotoURL  string            `json:"receipt_photo_url,omitempty"`
	SourceRecordType *SourceRecordType `gorm:"uniqueIndex:ux_ledger_entries_source,priority:1" json:"source_record_type,omitempty"`
	SourceRecordID   *string           `gorm:"uniqueIndex:ux_ledger_entries_source,priority:2" json:"source_record_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new entries
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	return nil
}

// IsLinked reports whether the entry was derived from a domain record.
func (e *LedgerEntry) IsLinked() bool {
	return e.SourceRecordType != nil && e.SourceRecordID != nil
}
