package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mediconnect-server/internal/apperr"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// memoryStore is a minimal in-memory AppointmentStore for handler tests.
type memoryStore struct {
	mu      sync.Mutex
	nextID  uint
	appts   map[uint]models.Appointment
	serials map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{appts: make(map[uint]models.Appointment), serials: make(map[string]int)}
}

func (m *memoryStore) key(doctorID uint, date models.Date) string {
	return fmt.Sprintf("%d|%s", doctorID, date)
}

func (m *memoryStore) Create(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	appt.ID = m.nextID
	k := m.key(appt.DoctorID, appt.VisitingDate)
	m.serials[k]++
	appt.VisitingSerialNumber = m.serials[k]
	m.appts[appt.ID] = *appt
	return nil
}

func (m *memoryStore) Update(appt *models.Appointment, reassignSerial bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reassignSerial {
		k := m.key(appt.DoctorID, appt.VisitingDate)
		m.serials[k]++
		appt.VisitingSerialNumber = m.serials[k]
	}
	m.appts[appt.ID] = *appt
	return nil
}

func (m *memoryStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, id)
	return nil
}

func (m *memoryStore) ByID(id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt, ok := m.appts[id]
	if !ok {
		return nil, apperr.NotFound("Appointment not found with ID: %d", id)
	}
	return &appt, nil
}

func (m *memoryStore) list() []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, appt := range m.appts {
		out = append(out, appt)
	}
	return out
}

func (m *memoryStore) All() ([]models.Appointment, error) { return m.list(), nil }
func (m *memoryStore) ByDoctor(uint) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) ByPatient(uint) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) ByDoctorAndStatus(uint, models.AppointmentStatus) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) ByPatientAndStatus(uint, models.AppointmentStatus) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) ByDoctorAndDate(uint, models.Date) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) UpcomingByDoctor(uint, models.Date) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) UpcomingByPatient(uint, models.Date) ([]models.Appointment, error) {
	return m.list(), nil
}
func (m *memoryStore) DayQueue(uint, models.Date) ([]models.Appointment, error) {
	return m.list(), nil
}

type memoryLookups struct{}

func (memoryLookups) DoctorByID(id uint) (*models.Doctor, error) {
	if id != 1 {
		return nil, apperr.NotFound("Doctor not found with ID: %d", id)
	}
	return &models.Doctor{ID: 1, Name: "Dr. Rahman"}, nil
}

func (memoryLookups) PatientByID(id uint) (*models.Patient, error) {
	if id != 10 {
		return nil, apperr.NotFound("Patient not found with ID: %d", id)
	}
	return &models.Patient{ID: 10, Name: "Karim"}, nil
}

func newTestRouter() (*gin.Engine, *memoryStore) {
	gin.SetMode(gin.TestMode)
	ms := newMemoryStore()
	sched := scheduler.New(ms, memoryLookups{}, memoryLookups{}, nil, zerolog.Nop())
	h := NewAppointmentHandler(sched)

	router := gin.New()
	api := router.Group("/api/v1/appointments")
	api.POST("", h.CreateAppointment)
	api.GET("/:id", h.GetAppointmentByID)
	api.PUT("/:id", h.UpdateAppointment)
	api.PUT("/:id/cancel", h.CancelAppointment)
	api.PUT("/:id/complete", h.CompleteAppointment)
	api.DELETE("/:id", h.DeleteAppointment)
	return router, ms
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func futureDate(n int) string {
	return time.Now().AddDate(0, 0, n).Format(models.DateLayout)
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	body := fmt.Sprintf(`{"doctorId":1,"patientId":10,"visitingDate":%q,"problemDescription":"fever"}`, futureDate(1))
	w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusCreated, w.Body)
	}

	var resp struct {
		Data models.Appointment `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.VisitingSerialNumber != 1 {
		t.Errorf("serial = %d, want 1", resp.Data.VisitingSerialNumber)
	}
	if resp.Data.Status != models.StatusScheduled {
		t.Errorf("status = %s, want scheduled", resp.Data.Status)
	}
	if resp.Data.DoctorName != "Dr. Rahman" {
		t.Errorf("doctorName = %q, want Dr. Rahman", resp.Data.DoctorName)
	}
}

func TestCreateAppointmentPastDate(t *testing.T) {
	router, ms := newTestRouter()

	past := time.Now().AddDate(0, 0, -1).Format(models.DateLayout)
	body := fmt.Sprintf(`{"doctorId":1,"patientId":10,"visitingDate":%q}`, past)
	w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Visiting date must be today or in the future") {
		t.Errorf("body = %s, missing validation message", w.Body)
	}
	if len(ms.appts) != 0 {
		t.Errorf("store has %d rows after rejected create", len(ms.appts))
	}
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	router, _ := newTestRouter()

	body := fmt.Sprintf(`{"doctorId":99,"patientId":10,"visitingDate":%q}`, futureDate(1))
	w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCancelAppointmentTwice(t *testing.T) {
	router, _ := newTestRouter()

	body := fmt.Sprintf(`{"doctorId":1,"patientId":10,"visitingDate":%q}`, futureDate(1))
	if w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	if w := doRequest(t, router, http.MethodPut, "/api/v1/appointments/1/cancel", ""); w.Code != http.StatusOK {
		t.Fatalf("first cancel status = %d, body: %s", w.Code, w.Body)
	}

	w := doRequest(t, router, http.MethodPut, "/api/v1/appointments/1/cancel", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second cancel status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Appointment is already cancelled") {
		t.Errorf("body = %s, missing state message", w.Body)
	}
}

func TestUpdateIgnoresStatusField(t *testing.T) {
	router, ms := newTestRouter()

	body := fmt.Sprintf(`{"doctorId":1,"patientId":10,"visitingDate":%q}`, futureDate(1))
	if w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	// Status is not part of the update contract; cancel/complete own it
	w := doRequest(t, router, http.MethodPut, "/api/v1/appointments/1", `{"status":"completed","problemDescription":"migraine"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", w.Code, w.Body)
	}
	if got := ms.appts[1].Status; got != models.StatusScheduled {
		t.Errorf("status after update = %s, want scheduled", got)
	}
	if got := ms.appts[1].ProblemDescription; got != "migraine" {
		t.Errorf("problemDescription = %q, want migraine", got)
	}
}

func TestGetAppointmentBadID(t *testing.T) {
	router, _ := newTestRouter()

	if w := doRequest(t, router, http.MethodGet, "/api/v1/appointments/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDeleteAppointment(t *testing.T) {
	router, ms := newTestRouter()

	body := fmt.Sprintf(`{"doctorId":1,"patientId":10,"visitingDate":%q}`, futureDate(1))
	if w := doRequest(t, router, http.MethodPost, "/api/v1/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	if w := doRequest(t, router, http.MethodDelete, "/api/v1/appointments/1", ""); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if len(ms.appts) != 0 {
		t.Errorf("store has %d rows after delete", len(ms.appts))
	}

	if w := doRequest(t, router, http.MethodDelete, "/api/v1/appointments/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
