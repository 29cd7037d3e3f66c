package utils

import (
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.URLQueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.URLQueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildListAppointmentsQuery(r *http.Request) *requests.ListAppointmentsQuery {
	query := r.URL.Query()
	return &requests.ListAppointmentsQuery{
		DoctorID:   query.Get(constvars.URLQueryParamDoctorID),
		PatientID:  query.Get(constvars.URLQueryParamPatientID),
		Date:       query.Get(constvars.URLQueryParamDate),
		Status:     query.Get(constvars.URLQueryParamStatus),
		Pagination: *BuildPaginationRequest(r),
	}
}
