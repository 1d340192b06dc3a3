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

type AttendanceHandler struct {
	db *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db}
}

type attendancePayload struct {
	CandidateID string   `json:"candidate_id"`
	SessionName []string `json:"session_name"`
	Attended    *bool    `json:"attended"`
	Date        string   `json:"date"` // YYYY-MM-DD, optional
	Remarks     string   `json:"remarks"`
}

func (p *attendancePayload) normalize() {
	p.CandidateID = strings.TrimSpace(p.CandidateID)
	p.Date = strings.TrimSpace(p.Date)
	p.Remarks = strings.TrimSpace(p.Remarks)
	for i := range p.SessionName {
		p.SessionName[i] = strings.TrimSpace(p.SessionName[i])
	}
}

func validateAttendance(p *attendancePayload) map[string]string {
	errs := map[string]string{}

	if !validUUID(p.CandidateID) {
		errs["candidate_id"] = "candidate_id must be a valid uuid"
	}
	if p.Attended == nil {
		errs["attended"] = "attended is required"
	}
	if p.Date != "" && !validDate(p.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if len(p.Remarks) > 255 {
		errs["remarks"] = "remarks must be at most 255 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ===== Handlers =====

// POST /api/v1/attendance/create
func (h *AttendanceHandler) Create(c echo.Context) error {
	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	if errs := validateAttendance(&p); errs != nil {
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
	rec := models.Attendance{
		CandidateID: p.CandidateID,
		SessionName: models.StringList(p.SessionName),
		Attended:    *p.Attended,
		Date:        date,
		Remarks:     p.Remarks,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Attendance added successfully",
		"id":      rec.ID,
	})
}

// GET /api/v1/attendance/get-all
func (h *AttendanceHandler) List(c echo.Context) error {
	var items []models.Attendance
	if err := h.db.Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if items == nil {
		items = []models.Attendance{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/attendance/get/:id
func (h *AttendanceHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Attendance
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/v1/attendance/update-all
//
// Matching mirrors the assessment bulk path: first stored row per
// candidate_id, so two items carrying the same candidate_id both count
// as updated while touching the same row (the later one wins).
func (h *AttendanceHandler) BulkUpdate(c echo.Context) error {
	var items []attendancePayload
	if err := c.Bind(&items); err != nil {
		return bindError(c, err)
	}

	updated := 0
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			p := items[i]
			p.normalize()
			if validateAttendance(&p) != nil {
				continue
			}
			var rec models.Attendance
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
			rec.SessionName = models.StringList(p.SessionName)
			rec.Attended = *p.Attended
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
		"message": fmt.Sprintf("%d attendance records updated", updated),
	})
}

// PUT /api/v1/attendance/update/:id
func (h *AttendanceHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Attendance
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	if errs := validateAttendance(&p); errs != nil {
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
	rec.SessionName = models.StringList(p.SessionName)
	rec.Attended = *p.Attended
	if p.Date != "" {
		rec.Date = p.Date
	}
	rec.Remarks = p.Remarks

	if err := h.db.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Attendance updated successfully"})
}

// DELETE /api/v1/attendance/delete-all
func (h *AttendanceHandler) DeleteAll(c echo.Context) error {
	if err := h.db.Where("1 = 1").Delete(&models.Attendance{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All attendance records deleted"})
}

// DELETE /api/v1/attendance/delete/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var rec models.Attendance
	if err := h.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := h.db.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Attendance deleted successfully"})
}
