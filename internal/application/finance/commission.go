package finance

import (
	"github.com/edipub/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CommissionBase derives the discount ratio applied to line amounts when
// computing commissions. Injectable so the commission base can be changed
// without touching the settlement workflow.
type CommissionBase interface {
	Ratio(o *order.Order) decimal.Decimal
}

// TotalOverSubtotal is the default commission base: the ratio of the
// order total (after tax and discount) to the effective subtotal. Orders
// with no usable subtotal get a ratio of one.
type TotalOverSubtotal struct{}

// Ratio implements CommissionBase
func (TotalOverSubtotal) Ratio(o *order.Order) decimal.Decimal {
	subtotal := o.EffectiveSubtotal()
	if !subtotal.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return o.Total.Div(subtotal)
}
