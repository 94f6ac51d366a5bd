package ledger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validateNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func expensePayload() Payload {
	return Payload{
		Type:        "expense",
		Amount:      "12.50",
		Description: "  Lunch  ",
		Category:    "Food",
		Account:     "cash",
	}
}

func TestValidate_ExpenseNormalized(t *testing.T) {
	tx, err := Validate(expensePayload(), nil, validateNow)
	require.NoError(t, err)

	assert.Equal(t, TypeExpense, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "Lunch", tx.Description)
	assert.Equal(t, "Food", tx.Category)
	assert.Equal(t, DivisionPersonal, tx.Division, "division defaults to personal")
	assert.Equal(t, "cash", tx.Account)
	assert.Empty(t, tx.ToAccount)
	assert.Equal(t, validateNow, tx.Date, "date defaults to now")
	assert.True(t, tx.IsEditable)
	assert.Equal(t, uuid.Nil, tx.ID)
}

func TestValidate_TransferForcesCategoryAndDropsDivision(t *testing.T) {
	date := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	tx, err := Validate(Payload{
		Type:        "transfer",
		Amount:      "50",
		Description: "Move to wallet",
		Category:    "Food",
		Division:    "office",
		Account:     "bank",
		ToAccount:   "wallet",
		Date:        &date,
	}, nil, validateNow)
	require.NoError(t, err)

	assert.Equal(t, TransferCategory, tx.Category)
	assert.Equal(t, DivisionNone, tx.Division)
	assert.Equal(t, "wallet", tx.ToAccount)
	assert.Equal(t, date, tx.Date)
}

func TestValidate_IncomeDropsToAccount(t *testing.T) {
	tx, err := Validate(Payload{
		Type:        "income",
		Amount:      "200",
		Description: "June salary",
		Category:    "Salary",
		Division:    "office",
		Account:     "cash",
		ToAccount:   "bank",
	}, nil, validateNow)
	require.NoError(t, err)

	assert.Equal(t, DivisionOffice, tx.Division)
	assert.Empty(t, tx.ToAccount)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Payload)
		kind   Kind
	}{
		{"empty amount", func(p *Payload) { p.Amount = "" }, KindInvalidAmount},
		{"non numeric amount", func(p *Payload) { p.Amount = "abc" }, KindInvalidAmount},
		{"zero amount", func(p *Payload) { p.Amount = "0" }, KindInvalidAmount},
		{"negative amount", func(p *Payload) { p.Amount = "-5" }, KindInvalidAmount},
		{"nan amount", func(p *Payload) { p.Amount = "NaN" }, KindInvalidAmount},
		{"missing category", func(p *Payload) { p.Category = "" }, KindMissingCategory},
		{"income category on expense", func(p *Payload) { p.Category = "Salary" }, KindMissingCategory},
		{"blank description", func(p *Payload) { p.Description = "   " }, KindMissingDescription},
		{"long description", func(p *Payload) { p.Description = strings.Repeat("x", 101) }, KindMissingDescription},
		{"unknown type", func(p *Payload) { p.Type = "refund" }, KindInvalidType},
		{"missing account", func(p *Payload) { p.Account = " " }, KindMissingAccount},
		{"unknown division", func(p *Payload) { p.Division = "family" }, KindInvalidDivision},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := expensePayload()
			tc.mutate(&p)

			_, err := Validate(p, nil, validateNow)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
			assert.True(t, tc.kind.IsValidation())
		})
	}
}

func TestValidate_DescriptionAtLimit(t *testing.T) {
	p := expensePayload()
	p.Description = strings.Repeat("é", MaxDescriptionLength)

	_, err := Validate(p, nil, validateNow)
	assert.NoError(t, err)
}

func TestValidate_TransferSameAccount(t *testing.T) {
	_, err := Validate(Payload{
		Type:        "transfer",
		Amount:      "10",
		Description: "Loop",
		Account:     "bank",
		ToAccount:   "bank",
	}, nil, validateNow)

	assert.True(t, errors.Is(err, ErrSameAccount))
}

func TestValidate_TransferMissingDestination(t *testing.T) {
	_, err := Validate(Payload{
		Type:        "transfer",
		Amount:      "10",
		Description: "Nowhere",
		Account:     "bank",
	}, nil, validateNow)

	assert.Equal(t, KindSameAccount, KindOf(err))
}

func TestValidate_AmountCheckedBeforeCategory(t *testing.T) {
	p := expensePayload()
	p.Amount = "0"
	p.Category = ""
	p.Description = ""

	_, err := Validate(p, nil, validateNow)
	assert.Equal(t, KindInvalidAmount, KindOf(err))

	errs := Check(p, nil)
	require.Len(t, errs, 3)
	assert.Equal(t, KindInvalidAmount, errs[0].Kind)
	assert.Equal(t, KindMissingCategory, errs[1].Kind)
	assert.Equal(t, KindMissingDescription, errs[2].Kind)
}

func TestValidate_UpdateKeepsIdentity(t *testing.T) {
	existing := &Transaction{
		ID:         uuid.Must(uuid.NewV4()),
		Seq:        7,
		Type:       TypeExpense,
		Amount:     decimal.NewFromInt(5),
		Date:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		IsEditable: true,
		CreatedAt:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	tx, err := Validate(expensePayload(), existing, validateNow)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, tx.ID)
	assert.Equal(t, existing.Seq, tx.Seq)
	assert.Equal(t, existing.CreatedAt, tx.CreatedAt)
	assert.Equal(t, existing.Date, tx.Date, "date is kept when the payload omits it")
}

func TestValidate_LockedWinsOverPayloadErrors(t *testing.T) {
	existing := &Transaction{ID: uuid.Must(uuid.NewV4()), IsEditable: false}

	_, err := Validate(expensePayload(), existing, validateNow)
	assert.True(t, errors.Is(err, ErrLocked))

	broken := expensePayload()
	broken.Amount = "-1"
	_, err = Validate(broken, existing, validateNow)
	assert.True(t, errors.Is(err, ErrLocked))
}

func TestEditableAt(t *testing.T) {
	created := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tx := Transaction{IsEditable: true, CreatedAt: created}

	assert.True(t, tx.EditableAt(created.Add(100*time.Hour), 0))
	assert.True(t, tx.EditableAt(created.Add(11*time.Hour), 12*time.Hour))
	assert.False(t, tx.EditableAt(created.Add(12*time.Hour), 12*time.Hour))

	tx.IsEditable = false
	assert.False(t, tx.EditableAt(created, 0))
}

func TestValidate_StructuralChecksPrecedeAmount(t *testing.T) {
	tests := map[string]struct {
		payload Payload
		kind    Kind
	}{
		"bad type and bad amount": {
			payload: Payload{Type: "refund", Amount: "abc", Description: "x", Category: "Food", Account: "cash"},
			kind:    KindInvalidType,
		},
		"missing account and bad amount": {
			payload: Payload{Type: "expense", Amount: "0", Description: "x", Category: "Food"},
			kind:    KindMissingAccount,
		},
		"bad division and bad amount": {
			payload: Payload{Type: "income", Amount: "-1", Description: "x", Category: "Salary", Account: "cash", Division: "home"},
			kind:    KindInvalidDivision,
		},
		"bad amount and missing category": {
			payload: Payload{Type: "expense", Amount: "abc", Description: "x", Account: "cash"},
			kind:    KindInvalidAmount,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(tc.payload, nil, validateNow)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestCheck_RuleOrder(t *testing.T) {
	errs := Check(Payload{Type: "expense", Amount: "abc", Division: "home"}, &Transaction{IsEditable: false})

	var kinds []Kind
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{
		KindLocked, KindMissingAccount, KindInvalidDivision,
		KindInvalidAmount, KindMissingCategory, KindMissingDescription,
	}, kinds)
}
