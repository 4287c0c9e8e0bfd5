package pricing

import (
	"fmt"

	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TierDiscount maps a client tier to its catalog discount percentage
type TierDiscount struct {
	ClientType      string          `json:"client_type"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// TierMinimum is the minimum order policy for a client tier. Zero values
// disable the corresponding check.
type TierMinimum struct {
	ClientType  string          `json:"client_type"`
	MinQuantity int             `json:"min_quantity"`
	MinTotal    decimal.Decimal `json:"min_total"`
}

// ClientTierPricing resolves reference prices per client tier and
// enforces the minimum order policy for resellers.
type ClientTierPricing struct {
	discounts map[string]decimal.Decimal
	minimums  map[string]TierMinimum
}

// NewClientTierPricing creates a pricing strategy from explicit tier tables
func NewClientTierPricing(discounts []TierDiscount, minimums []TierMinimum) *ClientTierPricing {
	discountMap := make(map[string]decimal.Decimal, len(discounts))
	for _, d := range discounts {
		discountMap[d.ClientType] = d.DiscountPercent
	}
	minimumMap := make(map[string]TierMinimum, len(minimums))
	for _, m := range minimums {
		minimumMap[m.ClientType] = m
	}
	return &ClientTierPricing{discounts: discountMap, minimums: minimumMap}
}

// DefaultClientTierPricing creates the strategy with the standard tiers:
// - PARTICULIER: catalog price, no minimum
// - ECOLE: 10% discount, no minimum
// - LIBRAIRIE: 15% discount, minimum 5 copies per order
// - GROSSISTE: 25% discount, minimum 10 copies per order
func DefaultClientTierPricing() *ClientTierPricing {
	return NewClientTierPricing(
		[]TierDiscount{
			{ClientType: identity.ClientTypeParticulier, DiscountPercent: decimal.Zero},
			{ClientType: identity.ClientTypeEcole, DiscountPercent: decimal.NewFromInt(10)},
			{ClientType: identity.ClientTypeLibrairie, DiscountPercent: decimal.NewFromInt(15)},
			{ClientType: identity.ClientTypeGrossiste, DiscountPercent: decimal.NewFromInt(25)},
		},
		[]TierMinimum{
			{ClientType: identity.ClientTypeLibrairie, MinQuantity: 5},
			{ClientType: identity.ClientTypeGrossiste, MinQuantity: 10},
		},
	)
}

// ReferencePrice returns the tier price for a work's base price
func (p *ClientTierPricing) ReferencePrice(basePrice decimal.Decimal, clientType string) decimal.Decimal {
	discount, ok := p.discounts[clientType]
	if !ok || discount.IsZero() {
		return basePrice
	}
	multiplier := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	return basePrice.Mul(multiplier).Round(2)
}

// CheckOrderMinimums enforces the tier's minimum order policy
func (p *ClientTierPricing) CheckOrderMinimums(clientType string, totalQuantity int, total decimal.Decimal) error {
	minimum, ok := p.minimums[clientType]
	if !ok {
		return nil
	}
	if minimum.MinQuantity > 0 && totalQuantity < minimum.MinQuantity {
		return shared.NewInvalidInputError(
			fmt.Sprintf("Quantité minimale non atteinte: %d exemplaires requis pour ce type de client", minimum.MinQuantity))
	}
	if minimum.MinTotal.IsPositive() && total.LessThan(minimum.MinTotal) {
		return shared.NewInvalidInputError(
			fmt.Sprintf("Montant minimal non atteint: %s FCFA requis pour ce type de client", minimum.MinTotal.StringFixed(0)))
	}
	return nil
}
