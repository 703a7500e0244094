package balance

import (
	"slices"

	"github.com/shopspring/decimal"
)

const (
	TypeAnnual      = "annual"
	TypeSick        = "sick"
	TypeCasual      = "casual"
	TypeMaternity   = "maternity"
	TypePaternity   = "paternity"
	TypeBereavement = "bereavement"
	TypeStudy       = "study"
	TypeJury        = "jury"
	TypeMilitary    = "military"
	TypeOther       = "other"
)

// LeaveTypes is the fixed enumeration of leave categories.
var LeaveTypes = []string{
	TypeAnnual, TypeSick, TypeCasual, TypeMaternity, TypePaternity,
	TypeBereavement, TypeStudy, TypeJury, TypeMilitary, TypeOther,
}

// defaultReported are always present in a balance view, even without a
// ledger row.
var defaultReported = []string{TypeAnnual, TypeSick, TypeCasual}

func IsKnownType(leaveType string) bool {
	return slices.Contains(LeaveTypes, leaveType)
}

// Policy decides which leave types are checked against the ledger and what
// an employee gets when no allocation was stored.
type Policy struct {
	gated    map[string]bool
	defaults map[string]decimal.Decimal
}

func NewPolicy(gatedTypes []string, defaultTotals map[string]decimal.Decimal) Policy {
	p := Policy{
		gated:    make(map[string]bool, len(gatedTypes)),
		defaults: make(map[string]decimal.Decimal, len(defaultTotals)),
	}
	for _, t := range gatedTypes {
		p.gated[t] = true
	}
	for t, total := range defaultTotals {
		p.defaults[t] = total
	}
	return p
}

// DefaultPolicy gates annual and casual leave with 21/10/7 day defaults.
func DefaultPolicy() Policy {
	return NewPolicy(
		[]string{TypeAnnual, TypeCasual},
		map[string]decimal.Decimal{
			TypeAnnual: decimal.NewFromInt(21),
			TypeSick:   decimal.NewFromInt(10),
			TypeCasual: decimal.NewFromInt(7),
		},
	)
}

func (p Policy) IsGated(leaveType string) bool {
	return p.gated[leaveType]
}

// DefaultTotal is zero for types without a configured default.
func (p Policy) DefaultTotal(leaveType string) decimal.Decimal {
	return p.defaults[leaveType]
}

func (p Policy) GatedTypes() []string {
	out := make([]string, 0, len(p.gated))
	for _, t := range LeaveTypes {
		if p.gated[t] {
			out = append(out, t)
		}
	}
	return out
}
