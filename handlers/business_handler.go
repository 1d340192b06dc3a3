package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/daran6255/msme/models"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type businessPayload struct {
	CandidateID     string   `json:"candidate_id"`
	CustomersBefore *int     `json:"customers_before"`
	CustomersAfter  *int     `json:"customers_after"`
	IncomeBefore    *float64 `json:"income_before"`
	IncomeAfter     *float64 `json:"income_after"`
}

// businessBulkItem carries partial updates; only fields present in the
// item are merged over the matched row. ID takes precedence over
// candidate_id when locating the row.
type businessBulkItem struct {
	ID              string   `json:"id"`
	CandidateID     string   `json:"candidate_id"`
	CustomersBefore *int     `json:"customers_before"`
	CustomersAfter  *int     `json:"customers_after"`
	IncomeBefore    *float64 `json:"income_before"`
	IncomeAfter     *float64 `json:"income_after"`
}

func validateBusiness(p *businessPayload) map[string]string {
	errs := map[string]string{}

	if !validUUID(p.CandidateID) {
		errs["candidate_id"] = "candidate_id must be a valid uuid"
	}
	if p.CustomersBefore != nil && *p.CustomersBefore < 0 {
		errs["customers_before"] = "customers_before must be non-negative"
	}
	if p.CustomersAfter != nil && *p.CustomersAfter < 0 {
		errs["customers_after"] = "customers_after must be non-negative"
	}
	if p.IncomeBefore != nil && *p.IncomeBefore < 0 {
		errs["income_before"] = "income_before must be non-negative"
	}
	if p.IncomeAfter != nil && *p.IncomeAfter < 0 {
		errs["income_after"] = "income_after must be non-negative"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ===== Handlers =====

// POST /api/v1/business
func (h *BusinessHandler) Create(c echo.Context) error {
	var p businessPayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.CandidateID = strings.TrimSpace(p.CandidateID)
	if errs := validateBusiness(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	ok, err := candidateExists(h.db, p.CandidateID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_CANDIDATE_ID"})
	}

	rec := models.Business{
		CandidateID:     p.CandidateID,
		CustomersBefore: p.CustomersBefore,
		CustomersAfter:  p.CustomersAfter,
		IncomeBefore:    p.IncomeBefore,
		IncomeAfter:     p.IncomeAfter,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Business record created",
		"id":      rec.ID,
	})
}

// GET /api/v1/business
func (h *BusinessHandler) List(c echo.Context) error {
	var items []models.Business
	if err := h.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if items == nil {
		items = []models.Business{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/business/:id
func (h *BusinessHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Business
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/v1/business
//
// Each item is matched by its record id when given, else by candidate_id,
// else skipped. Present fields are merged over the stored row and the
// merged values re-validated before the write.
func (h *BusinessHandler) BulkUpdate(c echo.Context) error {
	var items []businessBulkItem
	if err := c.Bind(&items); err != nil {
		return bindError(c, err)
	}

	updated := 0
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			item := items[i]
			item.ID = strings.TrimSpace(item.ID)
			item.CandidateID = strings.TrimSpace(item.CandidateID)

			var rec models.Business
			var err error
			switch {
			case item.ID != "":
				if !validUUID(item.ID) {
					continue
				}
				err = tx.First(&rec, "id = ?", item.ID).Error
			case item.CandidateID != "":
				if !validUUID(item.CandidateID) {
					continue
				}
				err = tx.Where("candidate_id = ?", item.CandidateID).Order("created_at").First(&rec).Error
			default:
				continue
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			merged := businessPayload{
				CandidateID:     rec.CandidateID,
				CustomersBefore: rec.CustomersBefore,
				CustomersAfter:  rec.CustomersAfter,
				IncomeBefore:    rec.IncomeBefore,
				IncomeAfter:     rec.IncomeAfter,
			}
			if item.CustomersBefore != nil {
				merged.CustomersBefore = item.CustomersBefore
			}
			if item.CustomersAfter != nil {
				merged.CustomersAfter = item.CustomersAfter
			}
			if item.IncomeBefore != nil {
				merged.IncomeBefore = item.IncomeBefore
			}
			if item.IncomeAfter != nil {
				merged.IncomeAfter = item.IncomeAfter
			}
			if validateBusiness(&merged) != nil {
				continue
			}

			rec.CustomersBefore = merged.CustomersBefore
			rec.CustomersAfter = merged.CustomersAfter
			rec.IncomeBefore = merged.IncomeBefore
			rec.IncomeAfter = merged.IncomeAfter
			if err := tx.Save(&rec).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d records updated", updated),
	})
}

// PUT /api/v1/business/:id
func (h *BusinessHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Business
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p businessPayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.CandidateID = strings.TrimSpace(p.CandidateID)
	if errs := validateBusiness(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	ok, err := candidateExists(h.db, p.CandidateID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_CANDIDATE_ID"})
	}

	rec.CandidateID = p.CandidateID
	rec.CustomersBefore = p.CustomersBefore
	rec.CustomersAfter = p.CustomersAfter
	rec.IncomeBefore = p.IncomeBefore
	rec.IncomeAfter = p.IncomeAfter

	if err := h.db.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Business record updated"})
}

// DELETE /api/v1/business
func (h *BusinessHandler) DeleteAll(c echo.Context) error {
	if err := h.db.Where("1 = 1").Delete(&models.Business{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All business records deleted"})
}

// DELETE /api/v1/business/:id
func (h *BusinessHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Business
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := h.db.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Business record deleted"})
}
