package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/adaptivecare/adaptivecare-api/api/handlers"
	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/events"
)

func TestCapacity_RegisterBedHandler(t *testing.T) {
	body := []byte(`{"bedId": "icu-01", "unit": "ICU"}`)
	req, _ := http.NewRequest("POST", "/api/v1/capacity/beds", bytes.NewBuffer(body))

	bus := events.NewBus()
	c := handlers.Capacity{System: capacity.NewTrackingSystem(), Bus: bus}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.RegisterBedHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"message": "bed registered successfully"}`, rr.Body.String())
	assert.Len(t, bus.History(events.TopicCapacityAssessed, 0), 1)
}

func TestCapacity_RegisterBedHandlerInvalidUnit(t *testing.T) {
	body := []byte(`{"bedId": "x-01", "unit": "Basement"}`)
	req, _ := http.NewRequest("POST", "/api/v1/capacity/beds", bytes.NewBuffer(body))

	c := handlers.Capacity{System: capacity.NewTrackingSystem(), Bus: events.NewBus()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.RegisterBedHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid unit")
}

func TestCapacity_UpdateBedStateHandler(t *testing.T) {
	system := capacity.NewTrackingSystem()
	bus := events.NewBus()
	c := handlers.Capacity{System: system, Bus: bus}

	registerBody := []byte(`{"bedId": "ward-07", "unit": "Ward"}`)
	registerReq, _ := http.NewRequest("POST", "/api/v1/capacity/beds", bytes.NewBuffer(registerBody))
	http.HandlerFunc(c.RegisterBedHandler).ServeHTTP(httptest.NewRecorder(), registerReq)

	body := []byte(`{"state": "occupied", "patientId": "p1"}`)
	req, _ := http.NewRequest("PUT", "/api/v1/capacity/beds/ward-07", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"bed_id": "ward-07"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.UpdateBedStateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message": "bed state updated successfully"}`, rr.Body.String())
}

func TestCapacity_UpdateBedStateHandlerUnknownBed(t *testing.T) {
	body := []byte(`{"state": "occupied"}`)
	req, _ := http.NewRequest("PUT", "/api/v1/capacity/beds/nope", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"bed_id": "nope"})

	c := handlers.Capacity{System: capacity.NewTrackingSystem(), Bus: events.NewBus()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.UpdateBedStateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "bed not found")
}

func TestCapacity_RegisterStaffAndAssign(t *testing.T) {
	system := capacity.NewTrackingSystem()
	bus := events.NewBus()
	c := handlers.Capacity{System: system, Bus: bus}

	staffBody := []byte(`{"staffId": "rn-1", "name": "Ada Nguyen", "role": "nurse", "unit": "ICU", "maxPatients": 2}`)
	staffReq, _ := http.NewRequest("POST", "/api/v1/capacity/staff", bytes.NewBuffer(staffBody))
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.RegisterStaffHandler).ServeHTTP(rr, staffReq)
	assert.Equal(t, http.StatusCreated, rr.Code)

	assignBody := []byte(`{"patientId": "p1"}`)
	assignReq, _ := http.NewRequest("POST", "/api/v1/capacity/staff/rn-1/assign", bytes.NewBuffer(assignBody))
	assignReq = mux.SetURLVars(assignReq, map[string]string{"staff_id": "rn-1"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(c.AssignStaffHandler).ServeHTTP(rr, assignReq)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message": "patient assigned successfully"}`, rr.Body.String())

	unassignBody := []byte(`{"patientId": "p1"}`)
	unassignReq, _ := http.NewRequest("POST", "/api/v1/capacity/staff/rn-1/unassign", bytes.NewBuffer(unassignBody))
	unassignReq = mux.SetURLVars(unassignReq, map[string]string{"staff_id": "rn-1"})
	rr = httptest.NewRecorder()
	http.HandlerFunc(c.UnassignStaffHandler).ServeHTTP(rr, unassignReq)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCapacity_AssignStaffHandlerUnknownStaff(t *testing.T) {
	body := []byte(`{"patientId": "p1"}`)
	req, _ := http.NewRequest("POST", "/api/v1/capacity/staff/nobody/assign", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"staff_id": "nobody"})

	c := handlers.Capacity{System: capacity.NewTrackingSystem(), Bus: events.NewBus()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.AssignStaffHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "staff member not found")
}

func TestCapacity_UnitCapacityHandler(t *testing.T) {
	req, _ := http.NewRequest("GET", "/api/v1/capacity/ICU", nil)
	req = mux.SetURLVars(req, map[string]string{"unit": "ICU"})

	c := handlers.Capacity{System: capacity.NewTrackingSystem(), Bus: events.NewBus()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.UnitCapacityHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"unit":"ICU"`)
	assert.Contains(t, rr.Body.String(), `"capacityScore"`)
}
