package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
)

// animalService handles the animal registry.
type animalService struct {
	db *gorm.DB
}

// NewAnimalService creates a new AnimalServicer.
func NewAnimalService(db *gorm.DB) AnimalServicer {
	return &animalService{db: db}
}

// CreateAnimal registers a new animal for the user.
func (s *animalService) CreateAnimal(ctx context.Context, userID string, in AnimalInput) (*models.Animal, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	tag := strings.TrimSpace(in.TagNumber)
	if tag == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag number is required")
	}
	sex := in.Sex
	if sex == "" {
		sex = models.AnimalSexFemale
	}
	if sex != models.AnimalSexFemale && sex != models.AnimalSexMale {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sex must be female or male")
	}

	if err := s.ensureTagFree(ctx, userID, tag, ""); err != nil {
		return nil, err
	}

	animal := &models.Animal{
		UserID:    userID,
		TagNumber: tag,
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Status:    models.AnimalStatusActive,
		Notes:     in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(animal).Error; err != nil {
		return nil, storeError(err)
	}
	return animal, nil
}

// GetAnimal retrieves an animal by ID for a specific user.
func (s *animalService) GetAnimal(ctx context.Context, userID, animalID string) (*models.Animal, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var animal models.Animal
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", animalID, userID).First(&animal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnimalNotFound
		}
		return nil, storeError(err)
	}
	return &animal, nil
}

// ListAnimals retrieves a paginated list of the user's animals, optionally by status.
func (s *animalService) ListAnimals(ctx context.Context, userID string, page pagination.PageRequest, status *models.AnimalStatus) (*pagination.PageResponse[models.Animal], error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Animal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storeError(err)
	}

	var animals []models.Animal
	if err := base.Scopes(pagination.Paginate(page)).Order("tag_number ASC").Find(&animals).Error; err != nil {
		return nil, storeError(err)
	}

	result := pagination.NewPageResponse(animals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAnimal applies the provided fields to an animal.
func (s *animalService) UpdateAnimal(ctx context.Context, userID, animalID string, in AnimalUpdate) (*models.Animal, error) {
	animal, err := s.GetAnimal(ctx, userID, animalID)
	if err != nil {
		return nil, err
	}

	if in.TagNumber != nil {
		tag := strings.TrimSpace(*in.TagNumber)
		if tag == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag number is required")
		}
		if tag != animal.TagNumber {
			if err := s.ensureTagFree(ctx, userID, tag, animal.ID); err != nil {
				return nil, err
			}
		}
		animal.TagNumber = tag
	}
	if in.Name != nil {
		animal.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		animal.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		animal.Sex = *in.Sex
	}
	if in.BirthDate != nil {
		animal.BirthDate = in.BirthDate
	}
	if in.Status != nil {
		animal.Status = *in.Status
	}
	if in.Notes != nil {
		animal.Notes = *in.Notes
	}

	if err := s.db.WithContext(ctx).Save(animal).Error; err != nil {
		return nil, storeError(err)
	}
	return animal, nil
}

// DeleteAnimal soft-deletes an animal. Its records and their ledger entries are kept.
func (s *animalService) DeleteAnimal(ctx context.Context, userID, animalID string) error {
	animal, err := s.GetAnimal(ctx, userID, animalID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(animal).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// ensureTagFree checks that no other live animal of the user carries the tag.
func (s *animalService) ensureTagFree(ctx context.Context, userID, tag, exceptID string) error {
	q := s.db.WithContext(ctx).Model(&models.Animal{}).Where("user_id = ? AND tag_number = ?", userID, tag)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return storeError(err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateTagNumber
	}
	return nil
}
