package ledger

import (
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/stretchr/testify/assert"
)

func TestFilterSpecMerge_PreservesUnsetFields(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	current := FilterSpec{
		Period:    PeriodMonthly,
		Division:  DivisionOffice,
		Category:  "Food",
		StartDate: &start,
		Page:      3,
		Limit:     20,
	}

	merged := current.Merge(FilterPatch{Type: omit.From(TypeExpense)})

	assert.Equal(t, PeriodMonthly, merged.Period)
	assert.Equal(t, DivisionOffice, merged.Division)
	assert.Equal(t, "Food", merged.Category)
	assert.Equal(t, TypeExpense, merged.Type)
	assert.Equal(t, &start, merged.StartDate)
	assert.Equal(t, 20, merged.Limit)
	assert.Equal(t, 1, merged.Page, "a predicate change resets the page")
}

func TestFilterSpecMerge_PageOnly(t *testing.T) {
	current := FilterSpec{Period: PeriodWeekly, Page: 1, Limit: 20}

	merged := current.Merge(FilterPatch{Page: omit.From(4)})

	assert.Equal(t, 4, merged.Page)
	assert.Equal(t, PeriodWeekly, merged.Period)
}

func TestFilterSpecMerge_ClearsDates(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	current := FilterSpec{StartDate: &start, EndDate: &end}

	merged := current.Merge(FilterPatch{
		StartDate: omitnull.FromPtr[time.Time](nil),
		Division:  omit.From(DivisionNone),
	})

	assert.Nil(t, merged.StartDate)
	assert.Equal(t, &end, merged.EndDate)
	assert.Equal(t, DivisionNone, merged.Division)
}

func TestFilterSpecMerge_DoesNotAliasOriginal(t *testing.T) {
	current := FilterSpec{Category: "Food"}

	_ = current.Merge(FilterPatch{Category: omit.From("Rent")})

	assert.Equal(t, "Food", current.Category)
}

func TestPeriodBucketStart(t *testing.T) {
	// Thursday.
	ts := time.Date(2025, 6, 12, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), PeriodWeekly.BucketStart(ts))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), PeriodMonthly.BucketStart(ts))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), PeriodYearly.BucketStart(ts))
	assert.Equal(t, ts, PeriodNone.BucketStart(ts))

	sunday := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), PeriodWeekly.BucketStart(sunday))

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, PeriodWeekly.BucketStart(monday))
}

func TestPeriodPrevBucket(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), PeriodWeekly.PrevBucket(start))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), PeriodMonthly.PrevBucket(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), PeriodYearly.PrevBucket(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), PeriodMonthly.PrevBucket(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, PeriodMonthly, PeriodNone.Granularity())
}

func TestParseHelpers(t *testing.T) {
	typ, err := ParseTransactionType(" Income ")
	assert.NoError(t, err)
	assert.Equal(t, TypeIncome, typ)

	_, err = ParseTransactionType("")
	assert.Equal(t, KindInvalidType, KindOf(err))

	div, err := ParseDivision("")
	assert.NoError(t, err)
	assert.Equal(t, DivisionNone, div)

	p, err := ParsePeriod("yearly")
	assert.NoError(t, err)
	assert.Equal(t, PeriodYearly, p)

	_, err = ParsePeriod("daily")
	assert.Error(t, err)

	assert.Equal(t, KindLocked, ParseKind(KindLocked.String()))
	assert.Equal(t, KindUnknown, ParseKind("nope"))
}
