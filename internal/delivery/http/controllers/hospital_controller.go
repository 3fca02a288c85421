package controllers

import (
	"log/slog"
	"net/http"

	"hospitaladmin/internal/delivery/http/helpers"
	"hospitaladmin/internal/domain"
)

// HospitalRequest is the request body for POST /api/hospitals.
type HospitalRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateHospitalRequest is the request body for PUT /api/hospitals/{id}.
type UpdateHospitalRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// HospitalListResponse is the paginated envelope for GET /api/hospitals.
type HospitalListResponse struct {
	Success    bool                   `json:"success"`
	Data       []*domain.Hospital     `json:"data"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// HospitalResponse is the success envelope for a single hospital.
type HospitalResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Hospital `json:"data"`
}

type HospitalController struct {
	Logger  *slog.Logger
	Service domain.HospitalService
}

func NewHospitalController(logger *slog.Logger, svc domain.HospitalService) *HospitalController {
	return &HospitalController{Logger: logger, Service: svc}
}

// ListHospitals godoc
// @Summary List hospitals
// @Tags hospitals
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20 when paging, max 100; omit page and page_size to list all)"
// @Success 200 {object} controllers.HospitalListResponse
// @Router /api/hospitals [get]
func (c *HospitalController) ListHospitals(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	hospitals, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONPage(w, hospitals, helpers.NewPaginationMeta(params.Page, params.PageSize, total))
}

// CreateHospital godoc
// @Summary Add a hospital
// @Tags hospitals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hospital body HospitalRequest true "Hospital"
// @Success 201 {object} controllers.HospitalResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/hospitals [post]
func (c *HospitalController) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req HospitalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	hospital := &domain.Hospital{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := c.Service.Create(r.Context(), hospital); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, hospital)
}

// UpdateHospital godoc
// @Summary Update a hospital
// @Tags hospitals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hospital ID (UUID)"
// @Param hospital body UpdateHospitalRequest true "Fields to change"
// @Success 200 {object} controllers.HospitalResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/hospitals/{id} [put]
func (c *HospitalController) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	var req UpdateHospitalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	hospital, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	setString(&hospital.Name, req.Name)
	setString(&hospital.Location, req.Location)
	setString(&hospital.Description, req.Description)
	setString(&hospital.Image, req.Image)
	if err := c.Service.Update(r.Context(), hospital); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, hospital)
}

// DeleteHospital godoc
// @Summary Delete a hospital
// @Tags hospitals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hospital ID (UUID)"
// @Success 200 {object} helpers.APIResponse "message: Hospital deleted"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/hospitals/{id} [delete]
func (c *HospitalController) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Hospital deleted")
}
