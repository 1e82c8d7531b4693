/*
import.go - Bulk import pipeline for spreadsheet rows

PURPOSE:
  Turns loosely-typed rows decoded from an uploaded spreadsheet into
  validated Results and drives the atomic upsert. Also reconciles any
  totals carried in the source data against the system-computed value.

PIPELINE:
  1. Normalize - resolve header synonyms to canonical fields, coerce scores
  2. Filter    - drop rows missing any mandatory field
  3. Validate  - fail with ErrNoValidRows if nothing survived
  4. Reconcile - count rows whose supplied total disagrees (> 0.01)
  5. Apply     - optional DeleteAll, then one atomic UpsertMany

HEADER SYNONYMS:
  Historical exports spell the same column several ways (CCCD sheets have
  been produced by at least three tools over the years). The synonym table
  maps each canonical field to every accepted spelling; matching is
  case-insensitive.

SEE ALSO:
  - score.go: ParseScore coercion rules
  - store.go: UpsertMany atomicity contract
*/
package exam

import (
	"context"
	"fmt"
	"strings"
)

// =============================================================================
// HEADER SYNONYM TABLE
// =============================================================================

// Canonical import fields.
const (
	FieldNationalID      = "national_id"
	FieldFullName        = "full_name"
	FieldCandidateNumber = "candidate_number"
	FieldDateOfBirth     = "date_of_birth"
	FieldWrittenScore    = "written_score"
	FieldPracticalScore  = "practical_score"
	FieldTotalScore      = "total_score"
)

// headerSynonyms maps each canonical field to the header spellings accepted
// for it, first entry being the one used in the downloadable template.
// Matching is case-insensitive.
var headerSynonyms = map[string][]string{
	FieldNationalID:      {"CCCD"},
	FieldFullName:        {"HoTen", "HọTên", "Họ và tên", "Ho va ten"},
	FieldCandidateNumber: {"SoBaoDanh", "SBD", "Số báo danh"},
	FieldDateOfBirth:     {"NgaySinh", "Ngày sinh", "DOB"},
	FieldWrittenScore:    {"Diem_TracNghiem", "DiemTracNghiem", "TracNghiem"},
	FieldPracticalScore:  {"Diem_VeTinhVat", "DiemVeTinhVat", "VeTinhVat"},
	FieldTotalScore: {"Diem_TongHop", "DiemTongHop", "Điểm tổng hợp",
		"Diem Tong Hop", "Diem_TongKet", "DiemTongKet"},
}

// TemplateHeaders returns the seven column headers of the import template,
// in sheet order. The total column is illustrative only; imports always
// recompute it.
func TemplateHeaders() []string {
	return []string{
		headerSynonyms[FieldNationalID][0],
		headerSynonyms[FieldFullName][0],
		headerSynonyms[FieldCandidateNumber][0],
		headerSynonyms[FieldDateOfBirth][0],
		headerSynonyms[FieldWrittenScore][0],
		headerSynonyms[FieldPracticalScore][0],
		headerSynonyms[FieldTotalScore][0],
	}
}

// cell resolves a canonical field against a raw row through the synonym
// table. Returns "" when no accepted header is present.
func (r RawRow) cell(field string) string {
	for _, syn := range headerSynonyms[field] {
		for header, value := range r {
			if strings.EqualFold(strings.TrimSpace(header), syn) {
				return value
			}
		}
	}
	return ""
}

// =============================================================================
// RECONCILER
// =============================================================================

// Reconciler validates, normalizes and persists uploaded rows.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// normalizedRow is a RawRow after header resolution. mismatch records that
// the source carried its own total and it disagreed with the computed one.
type normalizedRow struct {
	result   Result
	mismatch bool
}

// Import runs the full pipeline. On ErrNoValidRows (or any earlier failure)
// nothing has been written; a storage failure during Apply leaves the prior
// state intact thanks to the store's batch atomicity.
func (rc *Reconciler) Import(ctx context.Context, rows []RawRow, wipeFirst bool) (ImportSummary, error) {
	normalized := rc.normalize(rows)
	if len(normalized) == 0 {
		return ImportSummary{}, ErrNoValidRows
	}

	summary := ImportSummary{Accepted: len(normalized)}
	results := make([]Result, 0, len(normalized))
	for _, n := range normalized {
		if n.mismatch {
			summary.Mismatched++
		}
		results = append(results, n.result)
	}

	if wipeFirst {
		if err := rc.store.DeleteAll(ctx); err != nil {
			return ImportSummary{}, fmt.Errorf("failed to wipe results: %w", err)
		}
	}
	if err := rc.store.UpsertMany(ctx, results); err != nil {
		return ImportSummary{}, fmt.Errorf("failed to upsert results: %w", err)
	}
	return summary, nil
}

// normalize maps raw rows to validated Results, silently dropping rows that
// miss a mandatory field. Score cells that fail to parse become zero; a
// total cell that fails to parse counts as "not supplied".
func (rc *Reconciler) normalize(rows []RawRow) []normalizedRow {
	var out []normalizedRow
	for _, row := range rows {
		written := ParseScore(row.cell(FieldWrittenScore))
		practical := ParseScore(row.cell(FieldPracticalScore))

		result, err := NewResult(
			row.cell(FieldNationalID),
			row.cell(FieldFullName),
			row.cell(FieldCandidateNumber),
			row.cell(FieldDateOfBirth),
			written,
			practical,
		)
		if err != nil {
			continue // mandatory field missing, row excluded
		}

		n := normalizedRow{result: result}
		if supplied, ok := parseOptionalScore(row.cell(FieldTotalScore)); ok {
			n.mismatch = supplied.Sub(result.TotalScore).Abs().GreaterThan(mismatchTolerance)
		}
		out = append(out, n)
	}
	return out
}
