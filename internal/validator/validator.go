// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"herdbook/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledger_type", validateLedgerType)
		_ = v.RegisterValidation("use_type", validateUseType)
		_ = v.RegisterValidation("breeding_method", validateBreedingMethod)
		_ = v.RegisterValidation("breeding_status", validateBreedingStatus)
		_ = v.RegisterValidation("animal_sex", validateAnimalSex)
		_ = v.RegisterValidation("animal_status", validateAnimalStatus)
		_ = v.RegisterValidation("record_type", validateRecordType)
	}
}

func validateLedgerType(fl validator.FieldLevel) bool {
	return models.LedgerType(fl.Field().String()).Valid()
}

func validateUseType(fl validator.FieldLevel) bool {
	switch models.UseType(fl.Field().String()) {
	case models.UseTypeSold, models.UseTypeHomeUse, models.UseTypeCalfFeeding, models.UseTypeDiscarded:
		return true
	}
	return false
}

func validateBreedingMethod(fl validator.FieldLevel) bool {
	switch models.BreedingMethod(fl.Field().String()) {
	case models.BreedingMethodNatural, models.BreedingMethodArtificialInsemination:
		return true
	}
	return false
}

func validateBreedingStatus(fl validator.FieldLevel) bool {
	switch models.BreedingStatus(fl.Field().String()) {
	case models.BreedingStatusPending, models.BreedingStatusConfirmed, models.BreedingStatusFailed, models.BreedingStatusCalved:
		return true
	}
	return false
}

func validateAnimalSex(fl validator.FieldLevel) bool {
	switch models.AnimalSex(fl.Field().String()) {
	case models.AnimalSexFemale, models.AnimalSexMale:
		return true
	}
	return false
}

func validateAnimalStatus(fl validator.FieldLevel) bool {
	switch models.AnimalStatus(fl.Field().String()) {
	case models.AnimalStatusActive, models.AnimalStatusSold, models.AnimalStatusDeceased:
		return true
	}
	return false
}

func validateRecordType(fl validator.FieldLevel) bool {
	return models.SourceRecordType(fl.Field().String()).Valid()
}
