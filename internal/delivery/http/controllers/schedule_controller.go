package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"hospitaladmin/internal/delivery/http/helpers"
	"hospitaladmin/internal/domain"

	"github.com/google/uuid"
)

// SlotRequest is one slot in schedule bodies. Times are "HH:MM". IsBooked is accepted so the
// stored slot shape can be posted back, but slots are always created unbooked and existing
// ones keep their stored state.
type SlotRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  *bool  `json:"isBooked,omitempty"`
}

func (s SlotRequest) complete() bool {
	return strings.TrimSpace(s.StartTime) != "" && strings.TrimSpace(s.EndTime) != ""
}

// Validate implements Validator.
func (s SlotRequest) Validate() []string {
	if !s.complete() {
		return []string{"startTime and endTime are required"}
	}
	return nil
}

func validateSlotRequests(slots []SlotRequest) []string {
	var errs []string
	for i, s := range slots {
		if !s.complete() {
			errs = append(errs, fmt.Sprintf("slot %d must have startTime and endTime", i+1))
		}
	}
	return errs
}

func toCandidates(slots []SlotRequest) []domain.SlotCandidate {
	out := make([]domain.SlotCandidate, len(slots))
	for i, s := range slots {
		out[i] = domain.SlotCandidate{StartTime: strings.TrimSpace(s.StartTime), EndTime: strings.TrimSpace(s.EndTime)}
	}
	return out
}

// CreateScheduleRequest is the request body for POST /api/schedules.
type CreateScheduleRequest struct {
	Doctor string        `json:"doctor"`
	Date   string        `json:"date"`
	Slots  []SlotRequest `json:"slots"`
}

// Validate implements Validator.
func (c CreateScheduleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Doctor) == "" {
		errs = append(errs, "doctor is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	if len(c.Slots) == 0 {
		errs = append(errs, "slots must be a non-empty array")
	}
	return append(errs, validateSlotRequests(c.Slots)...)
}

// UpdateScheduleRequest is the request body for PUT /api/schedules/{id}. Omitted fields are unchanged.
type UpdateScheduleRequest struct {
	Doctor *string        `json:"doctor"`
	Date   *string        `json:"date"`
	Slots  *[]SlotRequest `json:"slots"`
}

// Validate implements Validator.
func (u UpdateScheduleRequest) Validate() []string {
	if u.Slots == nil {
		return nil
	}
	var errs []string
	if len(*u.Slots) == 0 {
		errs = append(errs, "slots must be a non-empty array")
	}
	return append(errs, validateSlotRequests(*u.Slots)...)
}

// ScheduleListResponse is the success envelope for GET /api/schedules.
type ScheduleListResponse struct {
	Success bool                  `json:"success"`
	Data    []*domain.DaySchedule `json:"data"`
}

// ScheduleResponse is the success envelope for a single schedule document.
type ScheduleResponse struct {
	Success bool                `json:"success"`
	Data    *domain.DaySchedule `json:"data"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
	Store   domain.ScheduleStore
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService, store domain.ScheduleStore) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
		Store:   store,
	}
}

// ListSchedules godoc
// @Summary List schedules
// @Description Returns every schedule document with its doctor resolved. Optional filters narrow by doctor id and date.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param doctor query string false "Doctor ID (UUID)"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.ScheduleListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedules [get]
func (c *ScheduleController) ListSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ScheduleFilter{
		DoctorID: strings.TrimSpace(q.Get("doctor")),
		Date:     strings.TrimSpace(q.Get("date")),
	}
	schedules, err := c.Service.List(r.Context(), filter)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedules)
}

// CreateSchedule godoc
// @Summary Create a schedule
// @Description Creates the schedule document for one doctor on one date. Fails when a schedule already exists for that pair or when slots overlap.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body CreateScheduleRequest true "Doctor, date and slots"
// @Success 201 {object} controllers.ScheduleResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedules [post]
func (c *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	key := domain.ScheduleKey{DoctorID: req.Doctor, Date: req.Date}
	schedule, err := c.Service.Create(r.Context(), key, toCandidates(req.Slots))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, schedule)
}

// UpdateSchedule godoc
// @Summary Update a schedule
// @Description Changes the doctor, date or slots of a schedule. Slots, when present, replace the stored set; slots matching an existing interval keep their id and booked state.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID (UUID)"
// @Param schedule body UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} controllers.ScheduleResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req UpdateScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.ScheduleUpdate{DoctorID: req.Doctor, Date: req.Date}
	if req.Slots != nil {
		update.Slots = toCandidates(*req.Slots)
	}
	schedule, err := c.Service.Update(r.Context(), id, update)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedule)
}

// DeleteSchedule godoc
// @Summary Delete a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID (UUID)"
// @Success 200 {object} helpers.APIResponse "message: Schedule deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Schedule deleted")
}

// slotKey reads the (doctor, date) pair from the path. A blank pair is left for the store to
// reject; otherwise the doctor must be a UUID and the date a calendar date.
func slotKey(r *http.Request) (domain.ScheduleKey, error) {
	key := domain.ScheduleKey{
		DoctorID: strings.TrimSpace(r.PathValue("doctorID")),
		Date:     strings.TrimSpace(r.PathValue("date")),
	}
	if domain.ValidateSelection(key) != nil {
		return key, nil
	}
	if _, err := uuid.Parse(key.DoctorID); err != nil {
		return key, domain.ErrInvalidID
	}
	if !domain.ValidateDate(key.Date) {
		return key, domain.NewValidationError([]string{"date must be YYYY-MM-DD"})
	}
	return key, nil
}

// SlotListResponse is the success envelope for the slots of one day.
type SlotListResponse struct {
	Success bool          `json:"success"`
	Data    []domain.Slot `json:"data"`
}

// SlotResponse is the success envelope for a single slot.
type SlotResponse struct {
	Success bool         `json:"success"`
	Data    *domain.Slot `json:"data"`
}

// ListSlots godoc
// @Summary List a doctor's slots for a date
// @Description Slots ordered by start time. An unknown doctor/date pair yields an empty list.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param doctorID path string true "Doctor ID (UUID)"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.SlotListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedules/doctors/{doctorID}/dates/{date}/slots [get]
func (c *ScheduleController) ListSlots(w http.ResponseWriter, r *http.Request) {
	key, err := slotKey(r)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	slots, err := c.Store.ListSlotsSorted(r.Context(), key.DoctorID, key.Date)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// AddSlot godoc
// @Summary Add a slot
// @Description Adds an unbooked slot. Touching an existing slot is allowed; any interior overlap is rejected.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param doctorID path string true "Doctor ID (UUID)"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param slot body SlotRequest true "Start and end time (HH:MM)"
// @Success 201 {object} controllers.SlotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /api/schedules/doctors/{doctorID}/dates/{date}/slots [post]
func (c *ScheduleController) AddSlot(w http.ResponseWriter, r *http.Request) {
	key, err := slotKey(r)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	var req SlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Store.AddSlot(r.Context(), key.DoctorID, key.Date, toCandidates([]SlotRequest{req})[0])
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// DeleteSlot godoc
// @Summary Delete a slot
// @Description Booked slots cannot be deleted.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param doctorID path string true "Doctor ID (UUID)"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param slotID path string true "Slot ID"
// @Success 200 {object} helpers.APIResponse "message: Slot deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /api/schedules/doctors/{doctorID}/dates/{date}/slots/{slotID} [delete]
func (c *ScheduleController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	key, err := slotKey(r)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if err := c.Store.DeleteSlot(r.Context(), key.DoctorID, key.Date, r.PathValue("slotID")); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Slot deleted")
}

// BookSlot godoc
// @Summary Mark a slot as booked
// @Description Records an external booking. Booking an already booked slot succeeds without change.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param doctorID path string true "Doctor ID (UUID)"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param slotID path string true "Slot ID"
// @Success 200 {object} controllers.SlotResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /api/schedules/doctors/{doctorID}/dates/{date}/slots/{slotID}/book [patch]
func (c *ScheduleController) BookSlot(w http.ResponseWriter, r *http.Request) {
	key, err := slotKey(r)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	slot, err := c.Store.MarkBooked(r.Context(), key.DoctorID, key.Date, r.PathValue("slotID"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}
