package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName, farmName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	ListActiveUsers(ctx context.Context) ([]models.User, error)
}

// AnimalInput carries the fields of a new animal.
type AnimalInput struct {
	TagNumber string
	Name      string
	Breed     string
	Sex       models.AnimalSex
	BirthDate *time.Time
	Notes     string
}

// AnimalUpdate carries the fields to change on an animal; nil means unchanged.
type AnimalUpdate struct {
	TagNumber *string
	Name      *string
	Breed     *string
	Sex       *models.AnimalSex
	BirthDate *time.Time
	Status    *models.AnimalStatus
	Notes     *string
}

// AnimalServicer defines the contract for the animal registry.
type AnimalServicer interface {
	CreateAnimal(ctx context.Context, userID string, in AnimalInput) (*models.Animal, error)
	GetAnimal(ctx context.Context, userID, animalID string) (*models.Animal, error)
	ListAnimals(ctx context.Context, userID string, page pagination.PageRequest, status *models.AnimalStatus) (*pagination.PageResponse[models.Animal], error)
	UpdateAnimal(ctx context.Context, userID, animalID string, in AnimalUpdate) (*models.Animal, error)
	DeleteAnimal(ctx context.Context, userID, animalID string) error
}

// LedgerDraft holds the fields of a ledger entry to create.
type LedgerDraft struct {
	TransactionType  models.LedgerType
	Category         string
	Amount           int64
	TransactionDate  time.Time
	AnimalID         *string
	Description      string
	BuyerName        string
	SupplierName     string
	ReceiptPhotoURL  string
	SourceRecordType *models.SourceRecordType
	SourceRecordID   *string
}

// LedgerUpdate holds the fields to change on a ledger entry; nil means unchanged.
type LedgerUpdate struct {
	TransactionType  *models.LedgerType
	Category         *string
	Amount           *int64
	TransactionDate  *time.Time
	AnimalID         *string
	Description      *string
	BuyerName        *string
	SupplierName     *string
	ReceiptPhotoURL  *string
	SourceRecordType *models.SourceRecordType
	SourceRecordID   *string
}

// LedgerFilter holds optional filter parameters for listing ledger entries.
type LedgerFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.LedgerType
	Category   *string
	AnimalID   *string
	SourceType *models.SourceRecordType
}

// CategoryTotal is the sum of one category within a summary window.
type CategoryTotal struct {
	Category        string            `json:"category"`
	TransactionType models.LedgerType `json:"transaction_type"`
	Total           int64             `json:"total"`
	Count           int64             `json:"count"`
}

// LedgerSummary aggregates a user's ledger over a date window.
type LedgerSummary struct {
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	TotalIncome  int64           `json:"total_income"`
	TotalExpense int64           `json:"total_expense"`
	Net          int64           `json:"net"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// LedgerServicer is the ledger store: the persistence contract the sync
// procedure and the manual ledger endpoints are written against.
type LedgerServicer interface {
	FindByDescription(ctx context.Context, userID, description string) (*models.LedgerEntry, error)
	FindBySource(ctx context.Context, userID string, recordType models.SourceRecordType, recordID string) (*models.LedgerEntry, error)
	CreateEntry(ctx context.Context, userID string, draft LedgerDraft) (*models.LedgerEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, fields LedgerUpdate) (*models.LedgerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	GetEntryByID(ctx context.Context, userID, entryID string) (*models.LedgerEntry, error)
	ListEntries(ctx context.Context, userID string, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.LedgerEntry], error)
	ExportEntries(ctx context.Context, userID string, filter LedgerFilter) ([]models.LedgerEntry, error)
	ListLinkedEntries(ctx context.Context, userID string) ([]models.LedgerEntry, error)
	Summary(ctx context.Context, userID string, from, to *time.Time) (*LedgerSummary, error)
}

// SyncStatus is what a sync did to the ledger.
type SyncStatus string

const (
	SyncCreated   SyncStatus = "created"
	SyncUpdated   SyncStatus = "updated"
	SyncRetracted SyncStatus = "retracted"
	SyncSkipped   SyncStatus = "skipped"
	SyncFailed    SyncStatus = "failed"
)

// SyncOutcome reports the ledger side effect of saving or deleting a domain record.
type SyncOutcome struct {
	Status         SyncStatus `json:"status"`
	LedgerEntryID  string     `json:"ledger_entry_id,omitempty"`
	DescriptionKey string     `json:"description_key"`
	Error          string     `json:"error,omitempty"`
}

// LedgerSyncer keeps exactly one ledger entry per cost-bearing domain record.
type LedgerSyncer interface {
	Sync(ctx context.Context, rec models.CostBearingRecord) (SyncOutcome, error)
	Retract(ctx context.Context, rec models.CostBearingRecord) (SyncOutcome, error)
}

// RecordFilter holds optional filter parameters shared by the domain record lists.
type RecordFilter struct {
	AnimalID *string
	FromDate *time.Time
	ToDate   *time.Time
}

// ProductionInput carries the fields of a new milk production record.
type ProductionInput struct {
	AnimalID     string
	RecordDate   time.Time
	Quantity     decimal.Decimal
	UseType      models.UseType
	PricePerUnit *decimal.Decimal
	BuyerName    string
	Notes        string
}

// ProductionUpdate carries the fields to change; nil means unchanged.
type ProductionUpdate struct {
	AnimalID     *string
	RecordDate   *time.Time
	Quantity     *decimal.Decimal
	UseType      *models.UseType
	PricePerUnit *decimal.Decimal
	BuyerName    *string
	Notes        *string
}

// ProductionServicer defines the production record workflow.
type ProductionServicer interface {
	CreateProductionRecord(ctx context.Context, userID string, in ProductionInput) (*models.ProductionRecord, SyncOutcome, error)
	UpdateProductionRecord(ctx context.Context, userID, recordID string, in ProductionUpdate) (*models.ProductionRecord, SyncOutcome, error)
	DeleteProductionRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error)
	GetProductionRecord(ctx context.Context, userID, recordID string) (*models.ProductionRecord, error)
	ListProductionRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.ProductionRecord], error)
}

// FeedingInput carries the fields of a new feeding record.
type FeedingInput struct {
	AnimalID     string
	RecordDate   time.Time
	FeedType     string
	QuantityKg   decimal.Decimal
	Cost         *decimal.Decimal
	SupplierName string
	Notes        string
}

// FeedingUpdate carries the fields to change; nil means unchanged.
type FeedingUpdate struct {
	AnimalID     *string
	RecordDate   *time.Time
	FeedType     *string
	QuantityKg   *decimal.Decimal
	Cost         *decimal.Decimal
	SupplierName *string
	Notes        *string
}

// FeedingServicer defines the feeding record workflow.
type FeedingServicer interface {
	CreateFeedingRecord(ctx context.Context, userID string, in FeedingInput) (*models.FeedingRecord, SyncOutcome, error)
	UpdateFeedingRecord(ctx context.Context, userID, recordID string, in FeedingUpdate) (*models.FeedingRecord, SyncOutcome, error)
	DeleteFeedingRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error)
	GetFeedingRecord(ctx context.Context, userID, recordID string) (*models.FeedingRecord, error)
	ListFeedingRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.FeedingRecord], error)
}

// BreedingInput carries the fields of a new breeding record.
type BreedingInput struct {
	AnimalID            string
	BreedingDate        time.Time
	Method              models.BreedingMethod
	SireName            string
	Status              models.BreedingStatus
	ExpectedCalvingDate *time.Time
	Cost                *decimal.Decimal
	Notes               string
}

// BreedingUpdate carries the fields to change; nil means unchanged.
type BreedingUpdate struct {
	AnimalID            *string
	BreedingDate        *time.Time
	Method              *models.BreedingMethod
	SireName            *string
	Status              *models.BreedingStatus
	ExpectedCalvingDate *time.Time
	Cost                *decimal.Decimal
	Notes               *string
}

// BreedingServicer defines the breeding record workflow.
type BreedingServicer interface {
	CreateBreedingRecord(ctx context.Context, userID string, in BreedingInput) (*models.BreedingRecord, SyncOutcome, error)
	UpdateBreedingRecord(ctx context.Context, userID, recordID string, in BreedingUpdate) (*models.BreedingRecord, SyncOutcome, error)
	DeleteBreedingRecord(ctx context.Context, userID, recordID string) (SyncOutcome, error)
	GetBreedingRecord(ctx context.Context, userID, recordID string) (*models.BreedingRecord, error)
	ListBreedingRecords(ctx context.Context, userID string, page pagination.PageRequest, filter RecordFilter) (*pagination.PageResponse[models.BreedingRecord], error)
}

// ReconcileReport counts what a reconciliation pass did.
type ReconcileReport struct {
	Users     int `json:"users"`
	Scanned   int `json:"scanned"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Retracted int `json:"retracted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Orphans   int `json:"orphans"`
}

// ReconcileServicer repairs drift between domain records and the ledger.
type ReconcileServicer interface {
	ReconcileUser(ctx context.Context, userID string) (*ReconcileReport, error)
	ReconcileAll(ctx context.Context) (*ReconcileReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
