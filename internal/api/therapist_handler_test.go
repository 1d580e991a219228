package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/service"
)

func newTherapistRouter(svc service.TherapistService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewTherapistHandler(svc)
	router.GET("/therapists", handler.ListTherapists)
	router.POST("/therapists", handler.CreateTherapist)
	router.PATCH("/therapists", handler.UpdateTherapist)
	router.DELETE("/therapists", handler.DeleteTherapist)
	return router
}

func TestCreateTherapistRequiresEmail(t *testing.T) {
	router := newTherapistRouter(&stubTherapistService{})

	body := `{"firstName":"Sam","clinic":"North"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/therapists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateTherapistRejectsUnknownPermission(t *testing.T) {
	router := newTherapistRouter(&stubTherapistService{})

	body := `{"email":"sam@clinic.test","permission":"superuser"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/therapists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateTherapistReturnsRow(t *testing.T) {
	svc := &stubTherapistService{
		createResult: &domain.Therapist{
			ID:         3,
			Email:      "sam@clinic.test",
			Permission: domain.PermissionAdmin,
		},
	}
	router := newTherapistRouter(svc)

	body := `{"email":"sam@clinic.test","permission":"admin"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/therapists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var got domain.Therapist
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != 3 || got.Permission != domain.PermissionAdmin {
		t.Errorf("response = %+v", got)
	}
}

func TestUpdateTherapistUnknownIDIs404(t *testing.T) {
	svc := &stubTherapistService{updateErr: service.ErrTherapistNotFound}
	router := newTherapistRouter(svc)

	body := `{"id":99,"clinic":"South"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/therapists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteTherapistMissingIDIs400(t *testing.T) {
	router := newTherapistRouter(&stubTherapistService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/therapists", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "ID required" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestDeleteTherapistUnknownIDIs404(t *testing.T) {
	svc := &stubTherapistService{deleteErr: service.ErrTherapistNotFound}
	router := newTherapistRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/therapists?id=99", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteTherapistReportsSuccess(t *testing.T) {
	router := newTherapistRouter(&stubTherapistService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/therapists?id=3", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp["success"] {
		t.Errorf("body = %s", w.Body.String())
	}
}
