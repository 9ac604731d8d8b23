package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceRecordType tags the kind of domain record a ledger entry was derived from.
type SourceRecordType string

const (
	SourceProductionRecord SourceRecordType = "ProductionRecord"
	SourceFeedingRecord    SourceRecordType = "FeedingRecord"
	SourceBreedingRecord   SourceRecordType = "BreedingRecord"
)

// Valid reports whether t names a known cost-bearing record type.
func (t SourceRecordType) Valid() bool {
	switch t {
	case SourceProductionRecord, SourceFeedingRecord, SourceBreedingRecord:
		return true
	}
	return false
}

// DescriptionKey returns the "{RecordType}:{recordId}" link key.
func DescriptionKey(t SourceRecordType, recordID string) string {
	return string(t) + ":" + recordID
}

// CostBearingRecord is the contract between the record workflows and the
// ledger sync. LedgerAmount is in whole currency units; zero or less means the
// record currently carries no money.
type CostBearingRecord interface {
	SourceType() SourceRecordType
	SourceID() string
	OwnerID() string
	LinkedAnimalID() string
	LedgerAmount() int64
	LedgerDate() time.Time
}

// Counterparty is implemented by records that name the other side of the
// transaction.
type Counterparty interface {
	LedgerCounterparty() (buyer, supplier string)
}

// wholeUnits rounds a decimal amount half away from zero to whole units.
func wholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// UseType says what happened to a milking.
type UseType string

const (
	UseTypeSold        UseType = "Sold"
	UseTypeHomeUse     UseType = "Home Use"
	UseTypeCalfFeeding UseType = "Calf Feeding"
	UseTypeDiscarded   UseType = "Discarded"
)

// ProductionRecord logs one milk yield for an animal.
type ProductionRecord struct {
	Base
	UserID       string              `gorm:"type:uuid;not null;index" json:"user_id"`
	AnimalID     string              `gorm:"type:uuid;not null;index" json:"animal_id"`
	RecordDate   time.Time           `gorm:"not null;index" json:"record_date"`
	Quantity     decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"quantity"`
	UseType      UseType             `gorm:"not null" json:"use_type"`
	PricePerUnit decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"price_per_unit"`
	BuyerName    string              `json:"buyer_name,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

func (r *ProductionRecord) SourceType() SourceRecordType { return SourceProductionRecord }
func (r *ProductionRecord) SourceID() string             { return r.ID }
func (r *ProductionRecord) OwnerID() string              { return r.UserID }
func (r *ProductionRecord) LinkedAnimalID() string       { return r.AnimalID }
func (r *ProductionRecord) LedgerDate() time.Time        { return r.RecordDate }

// LedgerAmount is the sale value, quantity times unit price, for sold yields.
func (r *ProductionRecord) LedgerAmount() int64 {
	if r.UseType != UseTypeSold || !r.PricePerUnit.Valid {
		return 0
	}
	return wholeUnits(r.Quantity.Mul(r.PricePerUnit.Decimal))
}

func (r *ProductionRecord) LedgerCounterparty() (string, string) { return r.BuyerName, "" }

// FeedingRecord logs feed given to an animal and what it cost.
type FeedingRecord struct {
	Base
	UserID       string              `gorm:"type:uuid;not null;index" json:"user_id"`
	AnimalID     string              `gorm:"type:uuid;not null;index" json:"animal_id"`
	RecordDate   time.Time           `gorm:"not null;index" json:"record_date"`
	FeedType     string              `gorm:"not null" json:"feed_type"`
	QuantityKg   decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"quantity_kg"`
	Cost         decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"cost"`
	SupplierName string              `json:"supplier_name,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

func (r *FeedingRecord) SourceType() SourceRecordType { return SourceFeedingRecord }
func (r *FeedingRecord) SourceID() string             { return r.ID }
func (r *FeedingRecord) OwnerID() string              { return r.UserID }
func (r *FeedingRecord) LinkedAnimalID() string       { return r.AnimalID }
func (r *FeedingRecord) LedgerDate() time.Time        { return r.RecordDate }

func (r *FeedingRecord) LedgerAmount() int64 {
	if !r.Cost.Valid {
		return 0
	}
	return wholeUnits(r.Cost.Decimal)
}

func (r *FeedingRecord) LedgerCounterparty() (string, string) { return "", r.SupplierName }

// BreedingMethod is how a breeding was performed.
type BreedingMethod string

const (
	BreedingMethodNatural                BreedingMethod = "natural"
	BreedingMethodArtificialInsemination BreedingMethod = "artificial_insemination"
)

// BreedingStatus follows a breeding from service to calving.
type BreedingStatus string

const (
	BreedingStatusPending   BreedingStatus = "pending"
	BreedingStatusConfirmed BreedingStatus = "confirmed"
	BreedingStatusFailed    BreedingStatus = "failed"
	BreedingStatusCalved    BreedingStatus = "calved"
)

// GestationDays is the average bovine gestation used for expected calving dates.
const GestationDays = 283

// BreedingRecord logs a breeding event for a cow.
type BreedingRecord struct {
	Base
	UserID              string              `gorm:"type:uuid;not null;index" json:"user_id"`
	AnimalID            string              `gorm:"type:uuid;not null;index" json:"animal_id"`
	BreedingDate        time.Time           `gorm:"not null;index" json:"breeding_date"`
	Method              BreedingMethod      `gorm:"not null" json:"method"`
	SireName            string              `json:"sire_name,omitempty"`
	Status              BreedingStatus      `gorm:"not null;default:'pending'" json:"status"`
	ExpectedCalvingDate *time.Time          `json:"expected_calving_date,omitempty"`
	Cost                decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"cost"`
	Notes               string              `json:"notes,omitempty"`
}

func (r *BreedingRecord) SourceType() SourceRecordType { return SourceBreedingRecord }
func (r *BreedingRecord) SourceID() string             { return r.ID }
func (r *BreedingRecord) OwnerID() string              { return r.UserID }
func (r *BreedingRecord) LinkedAnimalID() string       { return r.AnimalID }
func (r *BreedingRecord) LedgerDate() time.Time        { return r.BreedingDate }

func (r *BreedingRecord) LedgerAmount() int64 {
	if !r.Cost.Valid {
		return 0
	}
	return wholeUnits(r.Cost.Decimal)
}

// ExpectedCalving returns the breeding date plus the bovine gestation period.
func ExpectedCalving(breedingDate time.Time) time.Time {
	return breedingDate.AddDate(0, 0, GestationDays)
}

var (
	_ CostBearingRecord = (*ProductionRecord)(nil)
	_ CostBearingRecord = (*FeedingRecord)(nil)
	_ CostBearingRecord = (*BreedingRecord)(nil)
	_ Counterparty      = (*ProductionRecord)(nil)
	_ Counterparty      = (*FeedingRecord)(nil)
)
