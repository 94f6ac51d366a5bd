package common

import (
	"strings"
	"time"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const dateOnly = "2006-01-02"

// FilterQuery is the query string shared by list and dashboard operations.
type FilterQuery struct {
	Period    string `query:"period" doc:"weekly, monthly or yearly; empty for all time"`
	Division  string `query:"division" doc:"personal or office"`
	Category  string `query:"category" doc:"Exact category"`
	Type      string `query:"type" doc:"Transaction type"`
	StartDate string `query:"startDate" doc:"Inclusive start, YYYY-MM-DD or RFC3339"`
	EndDate   string `query:"endDate" doc:"Inclusive end, YYYY-MM-DD (whole day) or RFC3339"`
	Page      int    `query:"page" doc:"1-indexed page, default 1"`
	Limit     int    `query:"limit" doc:"Page size, default 20, at most 100"`
}

// Spec converts the query into a FilterSpec.
func (q FilterQuery) Spec() (ledger.FilterSpec, error) {
	spec := ledger.FilterSpec{
		Category: strings.TrimSpace(q.Category),
		Page:     q.Page,
		Limit:    q.Limit,
	}

	var err error
	if spec.Period, err = ledger.ParsePeriod(q.Period); err != nil {
		return spec, BadRequest("period", err)
	}
	if spec.Division, err = ledger.ParseDivision(q.Division); err != nil {
		return spec, Error(err, "invalid division")
	}
	if strings.TrimSpace(q.Type) != "" {
		if spec.Type, err = ledger.ParseTransactionType(q.Type); err != nil {
			return spec, Error(err, "invalid type")
		}
	}
	if spec.StartDate, err = ParseDate(q.StartDate, false); err != nil {
		return spec, BadRequest("startDate", err)
	}
	if spec.EndDate, err = ParseDate(q.EndDate, true); err != nil {
		return spec, BadRequest("endDate", err)
	}
	return spec, nil
}

// ParseDate accepts RFC3339 or a bare date. A bare end date covers the whole day.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// FormatQuery renders a filter back into query parameters.
func FormatQuery(spec ledger.FilterSpec) map[string]string {
	out := make(map[string]string)
	if spec.Period != ledger.PeriodNone {
		out["period"] = spec.Period.String()
	}
	if spec.Division != ledger.DivisionNone {
		out["division"] = spec.Division.String()
	}
	if spec.Category != "" {
		out["category"] = spec.Category
	}
	if spec.Type != 0 {
		out["type"] = spec.Type.String()
	}
	if spec.StartDate != nil {
		out["startDate"] = spec.StartDate.Format(time.RFC3339Nano)
	}
	if spec.EndDate != nil {
		out["endDate"] = spec.EndDate.Format(time.RFC3339Nano)
	}
	return out
}
