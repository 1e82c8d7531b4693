/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/artexam/results-portal/exam"

// ResultDTO represents one exam result in API responses.
type ResultDTO struct {
	NationalID      string  `json:"national_id"`
	FullName        string  `json:"full_name"`
	CandidateNumber string  `json:"candidate_number"`
	DateOfBirth     string  `json:"date_of_birth"`
	WrittenScore    float64 `json:"written_score"`
	PracticalScore  float64 `json:"practical_score"`
	TotalScore      float64 `json:"total_score"`
}

func toResultDTO(r *exam.Result) ResultDTO {
	return ResultDTO{
		NationalID:      r.NationalID,
		FullName:        r.FullName,
		CandidateNumber: r.CandidateNumber,
		DateOfBirth:     r.DateOfBirth,
		WrittenScore:    r.WrittenScore.InexactFloat64(),
		PracticalScore:  r.PracticalScore.InexactFloat64(),
		TotalScore:      r.TotalScore.InexactFloat64(),
	}
}

// LookupRequest is the public lookup form submission.
type LookupRequest struct {
	NationalID string `json:"national_id"`
}

// LoginRequest is the admin login form submission.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ImportResponse reports the outcome of a bulk import.
type ImportResponse struct {
	Accepted   int `json:"accepted"`
	Mismatched int `json:"mismatched"`
}

// StatusResponse reports store state on the admin dashboard.
type StatusResponse struct {
	Results int `json:"results"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
