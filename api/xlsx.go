/*
xlsx.go - Spreadsheet decoding and template generation

PURPOSE:
  The bridge between uploaded bytes and exam.RawRow. Decoding is strictly
  structural: the first sheet's first row is treated as headers, every
  following row becomes a header->cell map. Header-name resolution and all
  validation live in the exam package, not here.

  Also produces the downloadable import template: the seven canonical
  columns plus two sample candidates whose totals demonstrate the
  averaging rule (8.5/7.5 -> 8, 7.0/9.0 -> 8).

SEE ALSO:
  - exam/import.go: Synonym table and pipeline consuming RawRows
*/
package api

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/artexam/results-portal/exam"
)

// decodeRows reads the first sheet of an xlsx upload into raw rows.
// Any decoding failure is reported as exam.ErrBadFormat so the handler
// can distinguish an unreadable file from a readable-but-empty one.
func decodeRows(upload io.Reader) ([]exam.RawRow, error) {
	f, err := excelize.OpenReader(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exam.ErrBadFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", exam.ErrBadFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exam.ErrBadFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header row", exam.ErrBadFormat)
	}

	// A headers-only sheet is not a format error; the import pipeline
	// reports it as having no valid rows.

	headers := rows[0]
	raw := make([]exam.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(exam.RawRow, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		raw = append(raw, row)
	}
	return raw, nil
}

const templateSheet = "KetQua"

// buildTemplate assembles the import template workbook.
func buildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), templateSheet)

	headers := exam.TemplateHeaders()
	if err := f.SetSheetRow(templateSheet, "A1", &headers); err != nil {
		return nil, err
	}

	samples := []struct {
		nationalID, fullName, candidateNumber, dateOfBirth string
		written, practical                                 float64
	}{
		{"001234567890", "Nguyễn Văn A", "MT0001", "01/01/2008", 8.5, 7.5},
		{"001234567891", "Trần Thị B", "MT0002", "02/02/2008", 7.0, 9.0},
	}

	for i, s := range samples {
		written := decimal.NewFromFloat(s.written)
		practical := decimal.NewFromFloat(s.practical)
		total := exam.ComputeTotal(written, practical)

		row := []interface{}{
			s.nationalID, s.fullName, s.candidateNumber, s.dateOfBirth,
			s.written, s.practical, total.InexactFloat64(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(templateSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
