package exam_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artexam/results-portal/exam"
	"github.com/artexam/results-portal/exam/store"
)

func seededLookup(t *testing.T) *exam.LookupService {
	t.Helper()
	mem := store.NewMemory()

	r, err := exam.NewResult("001234567890", "Nguyen Van A", "MT0001", "01/01/2008",
		decimal.NewFromFloat(8.5), decimal.NewFromFloat(7.5))
	require.NoError(t, err)
	require.NoError(t, mem.UpsertMany(context.Background(), []exam.Result{r}))

	return exam.NewLookupService(mem)
}

func TestLookup_Found(t *testing.T) {
	svc := seededLookup(t)

	got, err := svc.Lookup(context.Background(), "001234567890")
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", got.FullName)
	assert.Equal(t, "8", got.TotalScore.String())
}

func TestLookup_TrimsInput(t *testing.T) {
	svc := seededLookup(t)

	got, err := svc.Lookup(context.Background(), "  001234567890  ")
	require.NoError(t, err)
	assert.Equal(t, "001234567890", got.NationalID)
}

func TestLookup_EmptyInputIsUserError(t *testing.T) {
	svc := seededLookup(t)

	_, err := svc.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, exam.ErrEmptyNationalID,
		"blank input must be distinguishable from a miss")
}

func TestLookup_AbsentKeyIsNotFound(t *testing.T) {
	svc := seededLookup(t)

	_, err := svc.Lookup(context.Background(), "999999999999")
	assert.ErrorIs(t, err, exam.ErrNotFound)
}
