package ledger

import (
	"fmt"
	"strings"
)

// TransactionType is the closed set of transaction variants. The zero value
// means "unset" and is never stored on a Transaction.
type TransactionType uint8

const (
	TypeIncome TransactionType = iota + 1
	TypeExpense
	TypeTransfer
)

// TransactionTypes lists every variant in display order.
var TransactionTypes = []TransactionType{TypeIncome, TypeExpense, TypeTransfer}

func (t TransactionType) String() string {
	switch t {
	case TypeIncome:
		return "income"
	case TypeExpense:
		return "expense"
	case TypeTransfer:
		return "transfer"
	}
	return ""
}

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

// ParseTransactionType accepts the lower-case wire names.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	case "transfer":
		return TypeTransfer, nil
	}
	return 0, &Error{Kind: KindInvalidType, Field: "type", Message: fmt.Sprintf("unknown transaction type %q", s)}
}

// Division is the cost-center tag on income and expense transactions.
type Division uint8

const (
	DivisionNone Division = iota
	DivisionPersonal
	DivisionOffice
)

var Divisions = []Division{DivisionPersonal, DivisionOffice}

func (d Division) String() string {
	switch d {
	case DivisionPersonal:
		return "personal"
	case DivisionOffice:
		return "office"
	}
	return ""
}

// ParseDivision maps "" to DivisionNone.
func ParseDivision(s string) (Division, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DivisionNone, nil
	case "personal":
		return DivisionPersonal, nil
	case "office":
		return DivisionOffice, nil
	}
	return DivisionNone, &Error{Kind: KindInvalidDivision, Field: "division", Message: fmt.Sprintf("unknown division %q", s)}
}

// Period is a coarse time window used for default filtering and chart bucketing.
type Period uint8

const (
	PeriodNone Period = iota
	PeriodWeekly
	PeriodMonthly
	PeriodYearly
)

func (p Period) String() string {
	switch p {
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	case PeriodYearly:
		return "yearly"
	}
	return ""
}

// ParsePeriod maps "" to PeriodNone.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PeriodNone, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	}
	return PeriodNone, fmt.Errorf("unknown period %q", s)
}

// AccountType classifies an account. The account name remains its identity.
type AccountType int8

const (
	AccountTypeCash AccountType = iota
	AccountTypeBank
	AccountTypeWallet
	AccountTypeOther
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeCash:
		return "cash"
	case AccountTypeBank:
		return "bank"
	case AccountTypeWallet:
		return "wallet"
	}
	return "other"
}

// AccountTypeForName picks the type matching a well-known account name.
func AccountTypeForName(name string) AccountType {
	switch strings.ToLower(name) {
	case "cash":
		return AccountTypeCash
	case "bank":
		return AccountTypeBank
	case "wallet":
		return AccountTypeWallet
	}
	return AccountTypeOther
}
