package registration

import (
	"fmt"
	"math"
)

// Plan is a subscription tier.
type Plan struct {
	ID           string
	Name         string
	MaxUsers     int     // 0 means unlimited
	MonthlyPrice float64 // 0 with Custom set means priced on request
	Custom       bool
	Features     []string
}

// Plans in display order.
var Plans = []Plan{
	{
		ID:           "basico",
		Name:         "Básico",
		MaxUsers:     3,
		MonthlyPrice: 49,
		Features:     []string{"Hasta 3 usuarios", "Gestión de citas", "Resultados básicos", "Soporte por email"},
	},
	{
		ID:           "profesional",
		Name:         "Profesional",
		MaxUsers:     10,
		MonthlyPrice: 129,
		Features:     []string{"Hasta 10 usuarios", "Gestión completa", "Reportes avanzados", "Soporte prioritario", "API de integración"},
	},
	{
		ID:       "enterprise",
		Name:     "Enterprise",
		Custom:   true,
		Features: []string{"Usuarios ilimitados", "Todas las funciones", "Soporte dedicado 24/7", "Personalización total", "SLA garantizado"},
	},
}

const (
	DefaultPlanID      = "profesional"
	DefaultUsers       = 5
	DefaultLeaseMonths = 12
)

// PlanByID looks a plan up by id.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PriceLabel renders the plan price for menus.
func (p Plan) PriceLabel() string {
	if p.Custom {
		return "Personalizado"
	}
	return fmt.Sprintf("$%.0f/mes", p.MonthlyPrice)
}

// UsersLabel renders the user limit.
func (p Plan) UsersLabel() string {
	if p.MaxUsers == 0 {
		return "ilimitado"
	}
	return fmt.Sprintf("%d", p.MaxUsers)
}

// LeaseOption is a contract length with its discount.
type LeaseOption struct {
	Months          int
	DiscountPercent int
}

var LeaseOptions = []LeaseOption{
	{Months: 1, DiscountPercent: 0},
	{Months: 3, DiscountPercent: 5},
	{Months: 6, DiscountPercent: 10},
	{Months: 12, DiscountPercent: 20},
	{Months: 24, DiscountPercent: 30},
}

// LeaseByMonths looks a lease option up by length.
func LeaseByMonths(months int) (LeaseOption, bool) {
	for _, l := range LeaseOptions {
		if l.Months == months {
			return l, true
		}
	}
	return LeaseOption{}, false
}

func (l LeaseOption) Label() string {
	if l.Months == 1 {
		return "1 mes"
	}
	if l.DiscountPercent == 0 {
		return fmt.Sprintf("%d meses", l.Months)
	}
	return fmt.Sprintf("%d meses (%d%% dto.)", l.Months, l.DiscountPercent)
}

// Quote is the price of a plan over a lease. Custom plans carry no amounts.
type Quote struct {
	Plan     Plan
	Lease    LeaseOption
	Users    int
	Subtotal float64
	Discount float64
	Total    float64
}

// NewQuote prices planID for users over months. Amounts are rounded to
// cents.
func NewQuote(planID string, users, months int) (Quote, error) {
	plan, ok := PlanByID(planID)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}
	lease, ok := LeaseByMonths(months)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %d months", ErrInvalidLease, months)
	}
	if users < 1 || (plan.MaxUsers > 0 && users > plan.MaxUsers) {
		return Quote{}, fmt.Errorf("%w: %d (maximum %s for %s)", ErrTooManyUsers, users, plan.UsersLabel(), plan.Name)
	}

	q := Quote{Plan: plan, Lease: lease, Users: users}
	if plan.Custom {
		return q, nil
	}
	q.Subtotal = roundCents(plan.MonthlyPrice * float64(months))
	q.Discount = roundCents(q.Subtotal * float64(lease.DiscountPercent) / 100)
	q.Total = roundCents(q.Subtotal - q.Discount)
	return q, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// String renders the quote for the confirmation step.
func (q Quote) String() string {
	if q.Plan.Custom {
		return fmt.Sprintf("%s, %s, %d usuarios: precio personalizado", q.Plan.Name, q.Lease.Label(), q.Users)
	}
	return fmt.Sprintf("%s, %s, %d usuarios: $%.2f - $%.2f = $%.2f",
		q.Plan.Name, q.Lease.Label(), q.Users, q.Subtotal, q.Discount, q.Total)
}
