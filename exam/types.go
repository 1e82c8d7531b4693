/*
Package exam contains the core domain logic for the exam results portal.

PURPOSE:
  This package is the heart of the system: the score calculation rule,
  the Result record and its integrity invariants, the import pipeline
  that turns loosely-typed spreadsheet rows into validated records, and
  the lookup service behind the public search form.

KEY CONCEPTS IN THIS FILE (types.go):
  - Result: One row per candidate, keyed by national ID
  - NewResult: Smart constructor that makes an inconsistent total
    impossible by construction
  - RawRow: Unvalidated header->cell mapping from a decoded spreadsheet

DESIGN PRINCIPLES:
  1. Derived data: TotalScore is always computed from the two sub-scores;
     no caller can set it independently
  2. Precision: Uses decimal.Decimal so 8.5 + 7.5 averages to exactly 8,
     with no binary floating-point drift
  3. Validation at the boundary: a Result cannot be constructed with an
     empty mandatory field

USAGE:
  res, err := exam.NewResult("001234567890", "Nguyen Van A", "MT0001",
      "01/01/2008", decimal.NewFromFloat(8.5), decimal.NewFromFloat(7.5))
  // res.TotalScore == 8

SEE ALSO:
  - score.go: ComputeTotal and score parsing
  - import.go: Spreadsheet row normalization and reconciliation
  - store.go: Persistence interface
*/
package exam

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT - One exam result per candidate
// =============================================================================

// Result is a single candidate's exam outcome. The zero ID means the record
// has not been persisted yet; the store assigns IDs and never reuses them.
type Result struct {
	ID              int64
	NationalID      string
	FullName        string
	CandidateNumber string
	DateOfBirth     string
	WrittenScore    decimal.Decimal
	PracticalScore  decimal.Decimal

	// TotalScore is always (WrittenScore + PracticalScore) / 2 rounded to
	// two decimal places. NewResult sets it and the store recomputes it on
	// every write, so a persisted record can never carry a stale total.
	TotalScore decimal.Decimal
}

// NewResult builds a Result with a consistent total. All four string fields
// are trimmed and must be non-empty.
func NewResult(nationalID, fullName, candidateNumber, dateOfBirth string, written, practical decimal.Decimal) (Result, error) {
	nationalID = strings.TrimSpace(nationalID)
	fullName = strings.TrimSpace(fullName)
	candidateNumber = strings.TrimSpace(candidateNumber)
	dateOfBirth = strings.TrimSpace(dateOfBirth)

	switch {
	case nationalID == "":
		return Result{}, ErrMissingField("national_id")
	case fullName == "":
		return Result{}, ErrMissingField("full_name")
	case candidateNumber == "":
		return Result{}, ErrMissingField("candidate_number")
	case dateOfBirth == "":
		return Result{}, ErrMissingField("date_of_birth")
	}

	return Result{
		NationalID:      nationalID,
		FullName:        fullName,
		CandidateNumber: candidateNumber,
		DateOfBirth:     dateOfBirth,
		WrittenScore:    written,
		PracticalScore:  practical,
		TotalScore:      ComputeTotal(written, practical),
	}, nil
}

// =============================================================================
// RAW ROW - Unvalidated spreadsheet input
// =============================================================================

// RawRow is one decoded spreadsheet row: header cell -> value cell, exactly
// as the upload layer produced it. Header spelling and casing are untrusted;
// the import pipeline resolves them through the synonym table.
type RawRow map[string]string

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	// Accepted is the number of rows that passed validation and were upserted.
	Accepted int

	// Mismatched counts rows whose supplied total differed from the computed
	// total by more than 0.01. Informational only: the computed value is
	// stored regardless.
	Mismatched int
}
