package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daran6255/msme/database"
	"github.com/daran6255/msme/geo"
)

// stubGeo resolves a fixed set of pin codes.
type stubGeo struct {
	locations map[string]*geo.Location
}

func (s stubGeo) LocationByPincode(pincode string) (*geo.Location, error) {
	if loc, ok := s.locations[pincode]; ok {
		return loc, nil
	}
	return nil, geo.ErrPincodeNotFound
}

var testLocations = map[string]*geo.Location{
	"560001": {City: "Bangalore G.P.O.", District: "Bengaluru", State: "Karnataka"},
	"600001": {City: "Chennai G.P.O.", District: "Chennai", State: "Tamil Nadu"},
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one shared in-memory database per test
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestServer registers the full entity surface the way routes.Register
// does, against an in-memory store and the stub lookup.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	lookup := stubGeo{locations: testLocations}

	cand := NewCandidateHandler(db, lookup)
	asm := NewAssessmentHandler(db)
	att := NewAttendanceHandler(db)
	biz := NewBusinessHandler(db)

	e := echo.New()

	cd := e.Group("/api/v1/candidates")
	cd.POST("/create", cand.Create)
	cd.GET("/get-all", cand.List)
	cd.GET("/get/:id", cand.Get)
	cd.PUT("/update-all", cand.BulkUpdate)
	cd.PUT("/update/:id", cand.Update)
	cd.DELETE("/delete-all", cand.DeleteAll)
	cd.DELETE("/delete/:id", cand.Delete)

	as := e.Group("/api/v1/assessment")
	as.POST("/create", asm.Create)
	as.GET("/get-all", asm.List)
	as.GET("/get/:id", asm.Get)
	as.PUT("/update-all", asm.BulkUpdate)
	as.PUT("/update/:id", asm.Update)
	as.DELETE("/delete-all", asm.DeleteAll)
	as.DELETE("/delete/:id", asm.Delete)

	at := e.Group("/api/v1/attendance")
	at.POST("/create", att.Create)
	at.GET("/get-all", att.List)
	at.GET("/get/:id", att.Get)
	at.PUT("/update-all", att.BulkUpdate)
	at.PUT("/update/:id", att.Update)
	at.DELETE("/delete-all", att.DeleteAll)
	at.DELETE("/delete/:id", att.Delete)

	bz := e.Group("/api/v1/business")
	bz.POST("", biz.Create)
	bz.GET("", biz.List)
	bz.GET("/:id", biz.Get)
	bz.PUT("", biz.BulkUpdate)
	bz.PUT("/:id", biz.Update)
	bz.DELETE("", biz.DeleteAll)
	bz.DELETE("/:id", biz.Delete)

	return e, db
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func validCandidatePayload(contact string) map[string]any {
	return map[string]any{
		"name":              "Asha Devi",
		"contact":           contact,
		"gender":            "Female",
		"business_type":     []string{"Tailoring", "Retail"},
		"pin_code":          "560001",
		"udyam_certificate": false,
		"phone_type":        "Smart Phone",
		"disability_cat":    false,
	}
}

// createCandidate inserts a candidate through the API and returns its id.
func createCandidate(t *testing.T, e *echo.Echo, contact string) string {
	t.Helper()
	rec := doJSON(t, e, "POST", "/api/v1/candidates/create", validCandidatePayload(contact))
	if rec.Code != 201 {
		t.Fatalf("create candidate: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &resp)
	if resp.ID == "" {
		t.Fatalf("create candidate: empty id")
	}
	return resp.ID
}
