package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/daran6255/msme/geo"
	"github.com/daran6255/msme/models"
)

type CandidateHandler struct {
	db  *gorm.DB
	geo geo.Lookup
}

func NewCandidateHandler(db *gorm.DB, lookup geo.Lookup) *CandidateHandler {
	return &CandidateHandler{db: db, geo: lookup}
}

// ===== Validation rules =====
var (
	candReContact = regexp.MustCompile(`^[0-9+\- ]{6,15}$`)
	candRePinCode = regexp.MustCompile(`^[0-9]{6}$`)
)

type candidatePayload struct {
	Name             string   `json:"name"`
	Contact          string   `json:"contact"`
	Gender           string   `json:"gender"`
	BusinessType     []string `json:"business_type"`
	PinCode          string   `json:"pin_code"`
	UdyamCertificate *bool    `json:"udyam_certificate"`
	PhoneType        string   `json:"phone_type"`
	DisabilityCat    *bool    `json:"disability_cat"`
}

// candidateUpdatePayload is the only input shape through which status can
// change outside of delete.
type candidateUpdatePayload struct {
	candidatePayload
	Status string `json:"status"`
}

func (p *candidatePayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Contact = strings.TrimSpace(p.Contact)
	p.Gender = strings.TrimSpace(p.Gender)
	p.PinCode = strings.TrimSpace(p.PinCode)
	p.PhoneType = strings.TrimSpace(p.PhoneType)
	for i := range p.BusinessType {
		p.BusinessType[i] = strings.TrimSpace(p.BusinessType[i])
	}
}

func validateCandidate(p *candidatePayload) map[string]string {
	errs := map[string]string{}

	if p.Name == "" || len(p.Name) > 120 {
		errs["name"] = "name is required and must be at most 120 characters"
	}
	if !candReContact.MatchString(p.Contact) {
		errs["contact"] = "contact must be a phone number"
	}
	if !models.Gender(p.Gender).Valid() {
		errs["gender"] = "gender must be Male or Female"
	}
	if !candRePinCode.MatchString(p.PinCode) {
		errs["pin_code"] = "pin_code must be a 6 digit postal code"
	}
	if p.UdyamCertificate == nil {
		errs["udyam_certificate"] = "udyam_certificate is required"
	}
	if !models.PhoneType(p.PhoneType).Valid() {
		errs["phone_type"] = "phone_type must be Smart Phone or Basic Phone"
	}
	if p.DisabilityCat == nil {
		errs["disability_cat"] = "disability_cat is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ===== Handlers =====

// POST /api/v1/candidates/create
func (h *CandidateHandler) Create(c echo.Context) error {
	var p candidatePayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	if errs := validateCandidate(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	loc, err := h.geo.LocationByPincode(p.PinCode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PINCODE"})
	}

	cand := models.Candidate{
		Name:             p.Name,
		Contact:          p.Contact,
		Gender:           models.Gender(p.Gender),
		BusinessType:     models.StringList(p.BusinessType),
		PinCode:          p.PinCode,
		UdyamCertificate: *p.UdyamCertificate,
		PhoneType:        models.PhoneType(p.PhoneType),
		DisabilityCat:    *p.DisabilityCat,
		State:            loc.State,
		District:         loc.District,
		Taluk:            loc.City,
		Status:           models.StatusActive,
	}
	if err := h.db.Create(&cand).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Candidate registered successfully",
		"id":      cand.ID,
	})
}

// GET /api/v1/candidates/get-all
func (h *CandidateHandler) List(c echo.Context) error {
	var items []models.Candidate
	if err := h.db.Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if items == nil {
		items = []models.Candidate{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/candidates/get/:id
func (h *CandidateHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var cand models.Candidate
	if err := h.db.First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, cand)
}

// PUT /api/v1/candidates/update-all
//
// Bulk re-imports are keyed by contact, not id. Items that fail validation,
// match no candidate, or carry an unresolvable pin code are skipped; the
// batch never aborts for them. Contact and status are never changed here.
func (h *CandidateHandler) BulkUpdate(c echo.Context) error {
	var items []candidatePayload
	if err := c.Bind(&items); err != nil {
		return bindError(c, err)
	}

	updated := 0
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			p := items[i]
			p.normalize()
			if validateCandidate(&p) != nil {
				continue
			}
			// contact is not unique; the oldest matching row wins
			var cand models.Candidate
			err := tx.Where("contact = ?", p.Contact).Order("created_at").First(&cand).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			loc, err := h.geo.LocationByPincode(p.PinCode)
			if err != nil {
				continue
			}
			cand.Name = p.Name
			cand.Gender = models.Gender(p.Gender)
			cand.BusinessType = models.StringList(p.BusinessType)
			cand.UdyamCertificate = *p.UdyamCertificate
			cand.PhoneType = models.PhoneType(p.PhoneType)
			cand.DisabilityCat = *p.DisabilityCat
			cand.PinCode = p.PinCode
			cand.State = loc.State
			cand.District = loc.District
			cand.Taluk = loc.City
			if err := tx.Save(&cand).Error; err != nil {
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
		"message": fmt.Sprintf("%d candidates updated", updated),
	})
}

// PUT /api/v1/candidates/update/:id
func (h *CandidateHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var cand models.Candidate
	if err := h.db.First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p candidateUpdatePayload
	if err := c.Bind(&p); err != nil {
		return bindError(c, err)
	}
	p.normalize()
	p.Status = strings.TrimSpace(p.Status)
	errs := validateCandidate(&p.candidatePayload)
	if p.Status != "" && !models.CandidateStatus(p.Status).Valid() {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["status"] = "status must be Active or Inactive"
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	loc, err := h.geo.LocationByPincode(p.PinCode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PINCODE"})
	}

	cand.Name = p.Name
	cand.Contact = p.Contact
	cand.Gender = models.Gender(p.Gender)
	cand.BusinessType = models.StringList(p.BusinessType)
	cand.UdyamCertificate = *p.UdyamCertificate
	cand.PhoneType = models.PhoneType(p.PhoneType)
	cand.DisabilityCat = *p.DisabilityCat
	cand.PinCode = p.PinCode
	cand.State = loc.State
	cand.District = loc.District
	cand.Taluk = loc.City
	if p.Status != "" {
		cand.Status = models.CandidateStatus(p.Status)
	}

	if err := h.db.Save(&cand).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Candidate updated successfully"})
}

// DELETE /api/v1/candidates/delete-all
func (h *CandidateHandler) DeleteAll(c echo.Context) error {
	err := h.db.Model(&models.Candidate{}).
		Where("1 = 1").
		Update("status", models.StatusInactive).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All candidates marked as Inactive"})
}

// DELETE /api/v1/candidates/delete/:id
func (h *CandidateHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !validUUID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var cand models.Candidate
	if err := h.db.First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	cand.Status = models.StatusInactive
	if err := h.db.Save(&cand).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Candidate marked as Inactive"})
}
