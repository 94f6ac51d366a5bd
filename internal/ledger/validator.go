package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds a trimmed description, in characters.
const MaxDescriptionLength = 100

// Validate checks a payload and returns the normalized transaction, or the
// first failure. existing is nil for creates. now supplies the default date.
//
// The returned transaction carries no ID, sequence or creation time for
// creates; for updates those are copied from existing.
func Validate(p Payload, existing *Transaction, now time.Time) (Transaction, error) {
	tx, errs := check(p, existing, now)
	if len(errs) > 0 {
		return Transaction{}, errs[0]
	}
	return tx, nil
}

// Check reports every validation failure of a payload in rule order.
func Check(p Payload, existing *Transaction) []*Error {
	_, errs := check(p, existing, time.Time{})
	return errs
}

func check(p Payload, existing *Transaction, now time.Time) (Transaction, []*Error) {
	var errs []*Error

	if existing != nil && !existing.IsEditable {
		errs = append(errs, &Error{Kind: KindLocked, Message: "transaction is locked"})
	}

	txType, err := ParseTransactionType(p.Type)
	if err != nil {
		errs = append(errs, err.(*Error))
	}

	account := strings.TrimSpace(p.Account)
	if account == "" {
		errs = append(errs, &Error{Kind: KindMissingAccount, Field: "account", Message: "account is required"})
	}

	division, err := ParseDivision(p.Division)
	if err != nil && txType != TypeTransfer {
		errs = append(errs, err.(*Error))
	}

	amount, amountErr := parseAmount(p.Amount)
	if amountErr != nil {
		errs = append(errs, amountErr)
	}

	category := strings.TrimSpace(p.Category)
	if txType == TypeIncome || txType == TypeExpense {
		if category == "" {
			errs = append(errs, &Error{Kind: KindMissingCategory, Field: "category", Message: "category is required"})
		} else if !IsAllowedCategory(txType, category) {
			errs = append(errs, &Error{
				Kind:    KindMissingCategory,
				Field:   "category",
				Message: fmt.Sprintf("%q is not a valid %s category", category, txType),
			})
		}
	}

	description := strings.TrimSpace(p.Description)
	if description == "" {
		errs = append(errs, &Error{Kind: KindMissingDescription, Field: "description", Message: "description is required"})
	} else if utf8.RuneCountInString(description) > MaxDescriptionLength {
		errs = append(errs, &Error{
			Kind:    KindMissingDescription,
			Field:   "description",
			Message: fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength),
		})
	}

	toAccount := strings.TrimSpace(p.ToAccount)
	if txType == TypeTransfer && (toAccount == "" || toAccount == account) {
		errs = append(errs, &Error{Kind: KindSameAccount, Field: "toAccount", Message: "source and destination accounts must differ"})
	}

	if len(errs) > 0 {
		return Transaction{}, errs
	}

	tx := Transaction{
		Type:        txType,
		Amount:      amount,
		Description: description,
		Account:     account,
		IsEditable:  true,
	}

	switch txType {
	case TypeIncome, TypeExpense:
		tx.Category = category
		tx.Division = division
		if tx.Division == DivisionNone {
			tx.Division = DivisionPersonal
		}
	case TypeTransfer:
		tx.Category = TransferCategory
		tx.ToAccount = toAccount
	}

	switch {
	case p.Date != nil:
		tx.Date = *p.Date
	case existing != nil:
		tx.Date = existing.Date
	default:
		tx.Date = now
	}

	if existing != nil {
		tx.ID = existing.ID
		tx.Seq = existing.Seq
		tx.CreatedAt = existing.CreatedAt
		tx.IsEditable = existing.IsEditable
	}

	return tx, nil
}

func parseAmount(s string) (decimal.Decimal, *Error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &Error{Kind: KindInvalidAmount, Field: "amount", Message: "amount is required"}
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &Error{Kind: KindInvalidAmount, Field: "amount", Message: "amount is not a number", Err: err}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &Error{Kind: KindInvalidAmount, Field: "amount", Message: "amount must be greater than zero"}
	}
	return amount, nil
}
