/*
import_test.go - Specification tests for the import pipeline

PURPOSE:
  These tests document the import behaviors the admin panel relies on:
  header-synonym matching, mandatory-field filtering, total
  reconciliation, and the wipe/upsert semantics. They run against the
  in-memory store; the same contract is exercised against SQLite in
  store/sqlite.
*/
package exam_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artexam/results-portal/exam"
	"github.com/artexam/results-portal/exam/store"
)

// row builds a RawRow using the template's canonical headers.
func row(nationalID, fullName, candidateNumber, dob, written, practical, total string) exam.RawRow {
	return exam.RawRow{
		"CCCD":            nationalID,
		"HoTen":           fullName,
		"SoBaoDanh":       candidateNumber,
		"NgaySinh":        dob,
		"Diem_TracNghiem": written,
		"Diem_VeTinhVat":  practical,
		"Diem_TongHop":    total,
	}
}

func TestImport_RoundTripRecomputesTotal(t *testing.T) {
	// GIVEN: a row carrying a wrong total
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	summary, err := rc.Import(ctx, []exam.RawRow{
		row("001", "Nguyen Van A", "MT0001", "01/01/2008", "8.5", "7.5", "9.99"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Accepted)

	// THEN: the stored total is the computed average, not the supplied value
	got, err := mem.FindByNationalID(ctx, "001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "8", got.TotalScore.String())
	assert.True(t, got.TotalScore.Equal(exam.ComputeTotal(got.WrittenScore, got.PracticalScore)))
}

func TestImport_HeaderSynonymsAndCase(t *testing.T) {
	// Historical exports spell headers differently; all variants must land
	// on the same canonical fields, case-insensitively.
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	legacy := exam.RawRow{
		"cccd":         "002",
		"Họ và tên":    "Tran Thi B",
		"SBD":          "MT0002",
		"DOB":          "02/02/2008",
		"TracNghiem":   "7.0",
		"VeTinhVat":    "9.0",
		"Diem_TongKet": "8.0",
	}

	summary, err := rc.Import(ctx, []exam.RawRow{legacy}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, 0, summary.Mismatched, "supplied 8.0 matches computed 8.0")

	got, err := mem.FindByNationalID(ctx, "002")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tran Thi B", got.FullName)
	assert.Equal(t, "8", got.TotalScore.String())
}

func TestImport_MismatchCounting(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)

	summary, err := rc.Import(context.Background(), []exam.RawRow{
		// computed 8.0, supplied 10.0: difference 2.0 > 0.01, mismatch
		row("001", "A", "MT0001", "01/01/2008", "8.5", "7.5", "10.0"),
		// computed 8.0, supplied 8.00: agreement
		row("002", "B", "MT0002", "02/02/2008", "7.0", "9.0", "8.00"),
		// no supplied total: nothing to reconcile
		row("003", "C", "MT0003", "03/03/2008", "5", "5", ""),
	}, false)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Accepted)
	assert.Equal(t, 1, summary.Mismatched)
}

func TestImport_FiltersRowsMissingMandatoryFields(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	summary, err := rc.Import(ctx, []exam.RawRow{
		row("001", "A", "MT0001", "01/01/2008", "8", "8", ""),
		row("002", "   ", "MT0002", "02/02/2008", "8", "8", ""), // name is whitespace only
		row("", "C", "MT0003", "03/03/2008", "8", "8", ""),      // no national ID
	}, false)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Accepted)

	// The filtered rows never reach the store
	got, err := mem.FindByNationalID(ctx, "002")
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImport_EmptyScoresStillAccepted(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	_, err := rc.Import(ctx, []exam.RawRow{
		row("001", "A", "MT0001", "01/01/2008", "", "", ""),
	}, false)
	require.NoError(t, err)

	got, err := mem.FindByNationalID(ctx, "001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.WrittenScore.IsZero())
	assert.True(t, got.PracticalScore.IsZero())
	assert.True(t, got.TotalScore.IsZero())
}

func TestImport_AllRowsInvalidFailsWithoutWriting(t *testing.T) {
	// GIVEN: a store with prior data
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	_, err := rc.Import(ctx, []exam.RawRow{
		row("001", "A", "MT0001", "01/01/2008", "8", "8", ""),
	}, false)
	require.NoError(t, err)

	// WHEN: importing a batch where every row misses a mandatory field,
	// with the wipe flag set
	_, err = rc.Import(ctx, []exam.RawRow{
		row("", "B", "MT0002", "02/02/2008", "8", "8", ""),
		row("003", "", "MT0003", "03/03/2008", "8", "8", ""),
	}, true)

	// THEN: the distinct no-valid-rows failure, and the prior state is
	// untouched (the wipe must not have run either)
	assert.ErrorIs(t, err, exam.ErrNoValidRows)
	got, findErr := mem.FindByNationalID(ctx, "001")
	require.NoError(t, findErr)
	assert.NotNil(t, got, "prior record should survive a rejected import")
}

func TestImport_IdempotentWithoutWipe(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	batch := []exam.RawRow{
		row("001", "A", "MT0001", "01/01/2008", "8.5", "7.5", ""),
		row("002", "B", "MT0002", "02/02/2008", "7.0", "9.0", ""),
	}

	_, err := rc.Import(ctx, batch, false)
	require.NoError(t, err)
	first, err := mem.FindByNationalID(ctx, "001")
	require.NoError(t, err)

	_, err = rc.Import(ctx, batch, false)
	require.NoError(t, err)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "re-importing the same batch must not add records")

	second, err := mem.FindByNationalID(ctx, "001")
	require.NoError(t, err)
	assert.Equal(t, first.FullName, second.FullName)
	assert.True(t, first.TotalScore.Equal(second.TotalScore))
}

func TestImport_UpsertOverwritesByNationalID(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	_, err := rc.Import(ctx, []exam.RawRow{
		row("001", "Old Name", "MT0001", "01/01/2008", "5", "5", ""),
	}, false)
	require.NoError(t, err)

	_, err = rc.Import(ctx, []exam.RawRow{
		row("001", "New Name", "MT0099", "01/01/2008", "9", "9", ""),
	}, false)
	require.NoError(t, err)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same national ID must stay a single record")

	got, err := mem.FindByNationalID(ctx, "001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New Name", got.FullName)
	assert.Equal(t, "MT0099", got.CandidateNumber)
	assert.Equal(t, "9", got.TotalScore.String())
}

func TestImport_WipeReplacesEverything(t *testing.T) {
	mem := store.NewMemory()
	rc := exam.NewReconciler(mem)
	ctx := context.Background()

	var oldBatch []exam.RawRow
	for i := 0; i < 5; i++ {
		oldBatch = append(oldBatch,
			row(fmt.Sprintf("old-%d", i), "Old", fmt.Sprintf("MT%04d", i), "01/01/2008", "5", "5", ""))
	}
	_, err := rc.Import(ctx, oldBatch, false)
	require.NoError(t, err)

	_, err = rc.Import(ctx, []exam.RawRow{
		row("new-1", "New", "MT9999", "02/02/2008", "8", "8", ""),
	}, true)
	require.NoError(t, err)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "wipe-then-import leaves only the new batch")

	gone, err := mem.FindByNationalID(ctx, "old-0")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
