package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/models"
	"herdbook/internal/pagination"
	"herdbook/internal/services"
)

// AnimalHandler handles the herd registry.
type AnimalHandler struct {
	animalService services.AnimalServicer
	auditService  services.AuditServicer
}

// NewAnimalHandler creates a new AnimalHandler.
func NewAnimalHandler(animalService services.AnimalServicer, auditService services.AuditServicer) *AnimalHandler {
	return &AnimalHandler{animalService: animalService, auditService: auditService}
}

// CreateAnimalRequest represents the request payload for registering an animal
type CreateAnimalRequest struct {
	TagNumber string           `json:"tag_number" binding:"required,max=50"`
	Name      string           `json:"name" binding:"max=100"`
	Breed     string           `json:"breed" binding:"max=100"`
	Sex       models.AnimalSex `json:"sex" binding:"required,animal_sex"`
	BirthDate *string          `json:"birth_date"`
	Notes     string           `json:"notes" binding:"max=1000"`
}

// UpdateAnimalRequest represents the request payload for updating an animal
type UpdateAnimalRequest struct {
	TagNumber *string              `json:"tag_number" binding:"omitempty,min=1,max=50"`
	Name      *string              `json:"name" binding:"omitempty,max=100"`
	Breed     *string              `json:"breed" binding:"omitempty,max=100"`
	Sex       *models.AnimalSex    `json:"sex" binding:"omitempty,animal_sex"`
	BirthDate *string              `json:"birth_date"`
	Status    *models.AnimalStatus `json:"status" binding:"omitempty,animal_status"`
	Notes     *string              `json:"notes" binding:"omitempty,max=1000"`
}

// CreateAnimal registers a new animal
// @Summary     Register an animal
// @Description Add an animal to the herd. Tag numbers are unique per farm.
// @Tags        animals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAnimalRequest true "Animal details"
// @Success     201 {object} models.Animal "Animal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate tag number"
// @Router      /animals [post]
func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	birthDate, err := parseOptionalDate(req.BirthDate, "birth_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	animal, err := h.animalService.CreateAnimal(c.Request.Context(), userID, services.AnimalInput{
		TagNumber: req.TagNumber,
		Name:      req.Name,
		Breed:     req.Breed,
		Sex:       req.Sex,
		BirthDate: birthDate,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ANIMAL", "animal", animal.ID, c.ClientIP(),
		map[string]interface{}{"tag_number": animal.TagNumber})

	c.JSON(http.StatusCreated, gin.H{"animal": animal})
}

// ListAnimals lists the user's animals
// @Summary     List animals
// @Tags        animals
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       status    query string false "Filter by status (active, sold, deceased)"
// @Success     200 {object} pagination.PageResponse[models.Animal] "Paginated animals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /animals [get]
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.AnimalStatus
	if v := c.Query("status"); v != "" {
		s := models.AnimalStatus(v)
		switch s {
		case models.AnimalStatusActive, models.AnimalStatusSold, models.AnimalStatusDeceased:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be active, sold, or deceased"))
			return
		}
	}

	result, err := h.animalService.ListAnimals(c.Request.Context(), userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAnimal returns one animal
// @Summary     Get animal by ID
// @Tags        animals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Animal ID"
// @Success     200 {object} models.Animal "Animal details"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Router      /animals/{id} [get]
func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	animalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	animal, err := h.animalService.GetAnimal(c.Request.Context(), userID, animalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

// UpdateAnimal updates an animal
// @Summary     Update animal
// @Tags        animals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Animal ID"
// @Param       request body UpdateAnimalRequest true "Fields to update"
// @Success     200 {object} models.Animal "Updated animal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Failure     409 {object} ErrorResponse "Duplicate tag number"
// @Router      /animals/{id} [put]
func (h *AnimalHandler) UpdateAnimal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	animalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	birthDate, err := parseOptionalDate(req.BirthDate, "birth_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	animal, err := h.animalService.UpdateAnimal(c.Request.Context(), userID, animalID, services.AnimalUpdate{
		TagNumber: req.TagNumber,
		Name:      req.Name,
		Breed:     req.Breed,
		Sex:       req.Sex,
		BirthDate: birthDate,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ANIMAL", "animal", animalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

// DeleteAnimal removes an animal from the herd
// @Summary     Delete animal
// @Tags        animals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Animal ID"
// @Success     200 {object} MessageResponse "Animal deleted"
// @Failure     404 {object} ErrorResponse "Animal not found"
// @Router      /animals/{id} [delete]
func (h *AnimalHandler) DeleteAnimal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	animalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.animalService.DeleteAnimal(c.Request.Context(), userID, animalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ANIMAL", "animal", animalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Animal deleted successfully"})
}
