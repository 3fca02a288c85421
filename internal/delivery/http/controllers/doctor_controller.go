package controllers

import (
	"log/slog"
	"net/http"

	"hospitaladmin/internal/delivery/http/helpers"
	"hospitaladmin/internal/domain"
)

// CreateDoctorRequest is the request body for POST /api/doctors.
type CreateDoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Hospital       *bool  `json:"hospital"`
	Availability   string `json:"availability"`
	Qualifications string `json:"qualifications"`
	Charges        string `json:"charges"`
	ProfilePicture string `json:"profilePicture"`
}

// Validate implements Validator. Field contents are checked by the service.
func (c CreateDoctorRequest) Validate() []string {
	if c.Hospital == nil {
		return []string{"hospital is required"}
	}
	return nil
}

func (c CreateDoctorRequest) toDoctor() *domain.Doctor {
	return &domain.Doctor{
		Name:           c.Name,
		Specialization: c.Specialization,
		Experience:     c.Experience,
		Contact:        c.Contact,
		Email:          c.Email,
		Hospital:       *c.Hospital,
		Availability:   c.Availability,
		Qualifications: c.Qualifications,
		Charges:        c.Charges,
		ProfilePicture: c.ProfilePicture,
	}
}

// UpdateDoctorRequest is the request body for PUT /api/doctors/{id}. Omitted fields are unchanged.
type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Experience     *string `json:"experience"`
	Contact        *string `json:"contact"`
	Email          *string `json:"email"`
	Hospital       *bool   `json:"hospital"`
	Availability   *string `json:"availability"`
	Qualifications *string `json:"qualifications"`
	Charges        *string `json:"charges"`
	ProfilePicture *string `json:"profilePicture"`
}

func (u UpdateDoctorRequest) apply(d *domain.Doctor) {
	setString(&d.Name, u.Name)
	setString(&d.Specialization, u.Specialization)
	setString(&d.Experience, u.Experience)
	setString(&d.Contact, u.Contact)
	setString(&d.Email, u.Email)
	setString(&d.Availability, u.Availability)
	setString(&d.Qualifications, u.Qualifications)
	setString(&d.Charges, u.Charges)
	setString(&d.ProfilePicture, u.ProfilePicture)
	if u.Hospital != nil {
		d.Hospital = *u.Hospital
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DoctorListResponse is the paginated envelope for GET /api/doctors.
type DoctorListResponse struct {
	Success    bool                   `json:"success"`
	Data       []*domain.Doctor       `json:"data"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// DoctorResponse is the success envelope for a single doctor.
type DoctorResponse struct {
	Success bool           `json:"success"`
	Data    *domain.Doctor `json:"data"`
}

type DoctorController struct {
	Logger  *slog.Logger
	Service domain.DoctorService
}

func NewDoctorController(logger *slog.Logger, svc domain.DoctorService) *DoctorController {
	return &DoctorController{Logger: logger, Service: svc}
}

// ListDoctors godoc
// @Summary List doctors
// @Tags doctors
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20 when paging, max 100; omit page and page_size to list all)"
// @Success 200 {object} controllers.DoctorListResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/doctors [get]
func (c *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	doctors, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONPage(w, doctors, helpers.NewPaginationMeta(params.Page, params.PageSize, total))
}

// GetDoctor godoc
// @Summary Get a doctor
// @Tags doctors
// @Produce json
// @Param id path string true "Doctor ID (UUID)"
// @Success 200 {object} controllers.DoctorResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/doctors/{id} [get]
func (c *DoctorController) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, doctor)
}

// CreateDoctor godoc
// @Summary Add a doctor
// @Description All fields are required. Emails are unique across doctors.
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param doctor body CreateDoctorRequest true "Doctor profile"
// @Success 201 {object} controllers.DoctorResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/doctors [post]
func (c *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req CreateDoctorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	doctor := req.toDoctor()
	if err := c.Service.Create(r.Context(), doctor); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, doctor)
}

// UpdateDoctor godoc
// @Summary Update a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID (UUID)"
// @Param doctor body UpdateDoctorRequest true "Fields to change"
// @Success 200 {object} controllers.DoctorResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/doctors/{id} [put]
func (c *DoctorController) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req UpdateDoctorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	doctor, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	req.apply(doctor)
	if err := c.Service.Update(r.Context(), doctor); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, doctor)
}

// DeleteDoctor godoc
// @Summary Delete a doctor
// @Description Also removes the doctor's schedules.
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID (UUID)"
// @Success 200 {object} helpers.APIResponse "message: Doctor deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/doctors/{id} [delete]
func (c *DoctorController) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Doctor deleted")
}
