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

type AssessmentHandler struct {
	db *gorm.DB
}

func NewAssessmentHandler(db *gorm.DB) *AssessmentHandler {
	return &AssessmentHandler{db: db}
}

type assessmentPayload struct {
	CandidateID string   `json:"candidate_id"`
	Training    string   `json:"training"`
	Date        string   `json:"date"` // YYYY-MM-DD, optional
	Status      string   `json:"status"`
	Mark        *float64 `json:"mark"`
	Remarks     string   `json:"remarks"`
}

func (p *assessmentPayload) normalize() {
	p.CandidateID = strings.TrimSpace(p.CandidateID)
	p.Training = strings.TrimSpace(p.Training)
	p.Date = strings.TrimSpace(p.Date)
	p.Status = strings.TrimSpace(p.Status)
	p.Remarks = strings.TrimSpace(p.Remarks)
}

func validateAssessment(p *assessmentPayload) map[string]string {
	errs := map[string]string{}

	if !validUUID(p.CandidateID) {
		errs["candidate_id"] = "candidate_id must be a valid uuid"
	}
	if p.Training == "" || len(p.Training) > 120 {
		errs["training"] = "training is required and must be at most 120 characters"
	}
	if p.Date != "" && !validDate(p.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if len(p.Status) > 50 {
		errs["status"] = "status must be at most 50 characters"
	}
	if len(p.Remarks) > 255 {
		errs["remarks"] = "remarks must be at most 255 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// candidateExists is shared by the child-entity handlers; create and
// update-by-id must reference a stored candidate.
func candidateExists(db *gorm.DB, id string) (bool, error) {
	var n int64
	if err := db.Model(&models.Candidate{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ===== Handlers =====

// POST /api/v1/assessment/create
func (h *AssessmentHandler) Create(c echo.Context) error {
	var p assessmentPayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	if errs := validateAssessment(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	ok, err := candidateExists(h.db, p.CandidateID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_CANDIDATE_ID"})
	}

	date := p.Date
	if date == "" {
		date = today()
	}
	rec := models.Assessment{
		CandidateID: p.CandidateID,
		Training:    p.Training,
		Date:        date,
		Status:      p.Status,
		Mark:        p.Mark,
		Remarks:     p.Remarks,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Assessment recorded successfully",
		"id":      rec.ID,
	})
}

// GET /api/v1/assessment/get-all
func (h *AssessmentHandler) List(c echo.Context) error {
	var items []models.Assessment
	if err := h.db.Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if items == nil {
		items = []models.Assessment{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/assessment/get/:id
func (h *AssessmentHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Assessment
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/v1/assessment/update-all
//
// Items are matched to the first stored row for their candidate_id; a
// candidate with several assessments only ever gets the oldest one
// updated. Candidate existence is not re-checked, the matched row's
// reference is trusted.
func (h *AssessmentHandler) BulkUpdate(c echo.Context) error {
	var items []assessmentPayload
	if err := c.Bind(&items); err != nil {
		return bindError(c, err)
	}

	updated := 0
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			p := items[i]
			p.normalize()
			if validateAssessment(&p) != nil {
				continue
			}
			var rec models.Assessment
			err := tx.Where("candidate_id = ?", p.CandidateID).Order("created_at").First(&rec).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if p.Date != "" {
				rec.Date = p.Date
			}
			rec.Training = p.Training
			rec.Status = p.Status
			rec.Mark = p.Mark
			rec.Remarks = p.Remarks
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
		"message": fmt.Sprintf("%d assessment records updated", updated),
	})
}

// PUT /api/v1/assessment/update/:id
func (h *AssessmentHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Assessment
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p assessmentPayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	if errs := validateAssessment(&p); errs != nil {
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
	rec.Training = p.Training
	if p.Date != "" {
		rec.Date = p.Date
	}
	rec.Status = p.Status
	rec.Mark = p.Mark
	rec.Remarks = p.Remarks

	if err := h.db.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Assessment updated successfully"})
}

// DELETE /api/v1/assessment/delete-all
func (h *AssessmentHandler) DeleteAll(c echo.Context) error {
	if err := h.db.Where("1 = 1").Delete(&models.Assessment{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All assessment records deleted"})
}

// DELETE /api/v1/assessment/delete/:id
func (h *AssessmentHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Assessment
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := h.db.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Assessment deleted successfully"})
}
