package entry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
	"github.com/naacportal/api/services"
	"github.com/naacportal/api/utils/cache"
	"github.com/naacportal/api/utils/response"
	"github.com/naacportal/api/utils/validation"
	"gorm.io/datatypes"
)

// EntryHandler handles accreditation entry requests
type EntryHandler struct {
	store      database.Storage
	reports    *services.ReportService
	validator  *validation.Validator
	statsCache *cache.RedisCache
}

// NewEntryHandler creates a new entry handler. statsCache may be nil.
func NewEntryHandler(store database.Storage, statsCache *cache.RedisCache) *EntryHandler {
	return &EntryHandler{
		store:      store,
		reports:    services.NewReportService(store),
		validator:  validation.NewValidator(),
		statsCache: statsCache,
	}
}

// CreateEntryRequest represents the request body for submitting an entry
type CreateEntryRequest struct {
	InstitutionName  string   `json:"institutionName" validate:"required"`
	NaacID           string   `json:"naacId"`
	Criteria         string   `json:"criteria" validate:"required,oneof=1 2 3 4 5 6 7"`
	AcademicYear     string   `json:"academicYear" validate:"required"`
	StudentStrength  *int     `json:"studentStrength" validate:"omitempty,gte=0"`
	FacultyCount     *int     `json:"facultyCount" validate:"omitempty,gte=0"`
	ProgramsOffered  *int     `json:"programsOffered" validate:"omitempty,gte=0"`
	BudgetAllocation *float64 `json:"budgetAllocation" validate:"omitempty,gte=0"`
	Description      string   `json:"description" validate:"required"`
	BestPractices    string   `json:"bestPractices"`
	Files            []string `json:"files"`
}

// ListEntries handles GET /api/entries
func (h *EntryHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.store.ListEntries()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch entries", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return response.JSON(c, entries)
}

// CreateEntry handles POST /api/entries
func (h *EntryHandler) CreateEntry(c *fiber.Ctx) error {
	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Failed to create entry", err)
	}

	req.InstitutionName = validation.SanitizeString(req.InstitutionName)
	req.AcademicYear = validation.SanitizeString(req.AcademicYear)
	req.Description = validation.SanitizeString(req.Description)

	if req.Files == nil {
		req.Files = []string{}
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, "Failed to create entry", validation.FormatValidationErrors(err))
	}

	entry := model.Entry{
		InstitutionName:  req.InstitutionName,
		NaacID:           req.NaacID,
		Criteria:         req.Criteria,
		AcademicYear:     req.AcademicYear,
		StudentStrength:  req.StudentStrength,
		FacultyCount:     req.FacultyCount,
		ProgramsOffered:  req.ProgramsOffered,
		BudgetAllocation: req.BudgetAllocation,
		Description:      req.Description,
		BestPractices:    req.BestPractices,
		Files:            datatypes.JSONSlice[string](req.Files),
	}

	if err := h.store.CreateEntry(&entry); err != nil {
		return response.BadRequest(c, "Failed to create entry", err)
	}

	h.invalidateStats(c)
	return response.Created(c, entry)
}

// DeleteEntry handles DELETE /api/entries/:id
func (h *EntryHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.NotFound(c, "Entry not found")
	}

	if err := h.store.DeleteEntry(uint(id)); err != nil {
		if errors.Is(err, database.ErrEntryNotFound) {
			return response.NotFound(c, "Entry not found")
		}
		return response.InternalServerError(c, "Failed to delete entry", err)
	}

	h.invalidateStats(c)
	return response.JSON(c, fiber.Map{"message": "Deleted", "id": id})
}

// ClearEntries handles DELETE /api/entries
func (h *EntryHandler) ClearEntries(c *fiber.Ctx) error {
	if err := h.store.ClearEntries(); err != nil {
		return response.InternalServerError(c, "Failed to clear entries", err)
	}

	h.invalidateStats(c)
	return response.Message(c, "All entries cleared")
}

// ExportEntries handles GET /api/entries/export?criteria=&year=
func (h *EntryHandler) ExportEntries(c *fiber.Ctx) error {
	filter := services.EntryFilter{
		Criteria: c.Query("criteria"),
		Year:     c.Query("year"),
	}

	csv, err := h.reports.Export(filter)
	if err != nil {
		if errors.Is(err, services.ErrNoExportData) {
			return response.BadRequest(c, "No data to export with current filters", nil)
		}
		return response.InternalServerError(c, "Failed to export entries", err)
	}

	filename := fmt.Sprintf("naac_data_export_%s.csv", uuid.NewString())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(csv)
}

// invalidateStats drops the cached dashboard numbers after a mutation so the
// next stats read recomputes from the store.
func (h *EntryHandler) invalidateStats(c *fiber.Ctx) {
	if h.statsCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	_ = h.statsCache.Delete(ctx, services.StatsCacheKey)
}
