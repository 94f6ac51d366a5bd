package ledger

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

// FilterPatch is a partial FilterSpec. Unset fields keep their current value;
// the dates can also be set to null to clear a range bound.
type FilterPatch struct {
	Period    omit.Val[Period]
	Division  omit.Val[Division]
	Category  omit.Val[string]
	Type      omit.Val[TransactionType]
	StartDate omitnull.Val[time.Time]
	EndDate   omitnull.Val[time.Time]
	Page      omit.Val[int]
	Limit     omit.Val[int]
}

// Merge returns f with every set field of p applied. Changing any predicate
// without an explicit page sends the query back to page 1.
func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	out := f
	changed := false

	if v, ok := p.Period.Get(); ok {
		out.Period = v
		changed = true
	}
	if v, ok := p.Division.Get(); ok {
		out.Division = v
		changed = true
	}
	if v, ok := p.Category.Get(); ok {
		out.Category = v
		changed = true
	}
	if v, ok := p.Type.Get(); ok {
		out.Type = v
		changed = true
	}
	if !p.StartDate.IsUnset() {
		out.StartDate = p.StartDate.MustPtr()
		changed = true
	}
	if !p.EndDate.IsUnset() {
		out.EndDate = p.EndDate.MustPtr()
		changed = true
	}
	if v, ok := p.Limit.Get(); ok {
		out.Limit = v
		changed = true
	}

	if v, ok := p.Page.Get(); ok {
		out.Page = v
	} else if changed {
		out.Page = 1
	}

	return out
}
