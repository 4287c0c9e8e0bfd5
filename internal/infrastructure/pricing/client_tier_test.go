package pricing

import (
	"testing"

	"github.com/edipub/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClientTierPricing_ReferencePrice(t *testing.T) {
	p := DefaultClientTierPricing()
	base := decimal.NewFromInt(5000)

	t.Run("particulier pays catalog price", func(t *testing.T) {
		assert.Equal(t, "5000", p.ReferencePrice(base, identity.ClientTypeParticulier).String())
	})

	t.Run("ecole gets 10 percent off", func(t *testing.T) {
		assert.Equal(t, "4500", p.ReferencePrice(base, identity.ClientTypeEcole).String())
	})

	t.Run("librairie gets 15 percent off", func(t *testing.T) {
		assert.Equal(t, "4250", p.ReferencePrice(base, identity.ClientTypeLibrairie).String())
	})

	t.Run("grossiste gets 25 percent off", func(t *testing.T) {
		assert.Equal(t, "3750", p.ReferencePrice(base, identity.ClientTypeGrossiste).String())
	})

	t.Run("unknown tier falls back to catalog price", func(t *testing.T) {
		assert.Equal(t, "5000", p.ReferencePrice(base, "AUTRE").String())
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		price := p.ReferencePrice(decimal.NewFromInt(3333), identity.ClientTypeLibrairie)
		assert.Equal(t, "2833.05", price.String())
	})
}

func TestClientTierPricing_CheckOrderMinimums(t *testing.T) {
	p := DefaultClientTierPricing()

	t.Run("particulier has no minimum", func(t *testing.T) {
		assert.NoError(t, p.CheckOrderMinimums(identity.ClientTypeParticulier, 1, decimal.NewFromInt(5000)))
	})

	t.Run("librairie needs at least five copies", func(t *testing.T) {
		assert.Error(t, p.CheckOrderMinimums(identity.ClientTypeLibrairie, 4, decimal.NewFromInt(100000)))
		assert.NoError(t, p.CheckOrderMinimums(identity.ClientTypeLibrairie, 5, decimal.NewFromInt(100000)))
	})

	t.Run("grossiste needs at least ten copies", func(t *testing.T) {
		assert.Error(t, p.CheckOrderMinimums(identity.ClientTypeGrossiste, 9, decimal.NewFromInt(100000)))
		assert.NoError(t, p.CheckOrderMinimums(identity.ClientTypeGrossiste, 10, decimal.NewFromInt(100000)))
	})

	t.Run("minimum total is enforced when configured", func(t *testing.T) {
		custom := NewClientTierPricing(nil, []TierMinimum{
			{ClientType: identity.ClientTypeGrossiste, MinTotal: decimal.NewFromInt(50000)},
		})
		assert.Error(t, custom.CheckOrderMinimums(identity.ClientTypeGrossiste, 20, decimal.NewFromInt(40000)))
		assert.NoError(t, custom.CheckOrderMinimums(identity.ClientTypeGrossiste, 20, decimal.NewFromInt(50000)))
	})
}
