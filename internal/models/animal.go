package models

import "time"

// AnimalSex is the sex of a registered animal.
type AnimalSex string

const (
	AnimalSexFemale AnimalSex = "female"
	AnimalSexMale   AnimalSex = "male"
)

// AnimalStatus tracks whether the animal is still part of the herd.
type AnimalStatus string

const (
	AnimalStatusActive   AnimalStatus = "active"
	AnimalStatusSold     AnimalStatus = "sold"
	AnimalStatusDeceased AnimalStatus = "deceased"
)

// Animal is one registered head of cattle. Domain records are scoped to it.
type Animal struct {
	Base
	UserID    string       `gorm:"type:uuid;not null;index:idx_animals_user_tag,priority:1" json:"user_id"`
	TagNumber string       `gorm:"not null;index:idx_animals_user_tag,priority:2" json:"tag_number"`
	Name      string       `json:"name"`
	Breed     string       `json:"breed"`
	Sex       AnimalSex    `gorm:"not null" json:"sex"`
	BirthDate *time.Time   `json:"birth_date,omitempty"`
	Status    AnimalStatus `gorm:"not null;default:'active'" json:"status"`
	Notes     string       `json:"notes"`
}
