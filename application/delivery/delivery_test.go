package delivery_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yogapit/eshop/application/delivery"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

func TestParseWeightRange(t *testing.T) {
	tests := []struct {
		in     string
		lo, hi float64
	}{
		{"Do 2 kg", 0, 2},
		{"Do 5 kg", 0, 5},
		{"5kg-15kg", 5, 15},
		{"10kg-15kg", 10, 15},
		{"individually", 0, 0},
	}
	for _, tt := range tests {
		lo, hi := delivery.ParseWeightRange(tt.in)
		assert.Equal(t, tt.lo, lo, tt.in)
		assert.Equal(t, tt.hi, hi, tt.in)
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		weight   float64
		provider string
		want     string
	}{
		{"post small letter", delivery.CountrySlovakia, 1.5, delivery.ProviderPost, "3.5"},
		{"post boundary stays in first tier", delivery.CountrySlovakia, 2, delivery.ProviderPost, "3.5"},
		{"post parcel", delivery.CountrySlovakia, 4, delivery.ProviderPost, "5"},
		{"post heavy", delivery.CountrySlovakia, 12, delivery.ProviderPost, "10"},
		{"packeta sk", delivery.CountrySlovakia, 3, delivery.ProviderPacketa, "4.5"},
		{"packeta sk heavy", delivery.CountrySlovakia, 7, delivery.ProviderPacketa, "7.5"},
		{"packeta cz", delivery.CountryCzechia, 1, delivery.ProviderPacketa, "5"},
		{"no post to cz", delivery.CountryCzechia, 1, delivery.ProviderPost, "0"},
		{"over limit", delivery.CountrySlovakia, 20, delivery.ProviderPacketa, "0"},
		{"unknown country", "Polska", 1, "", "0"},
		{"any provider takes first tier", delivery.CountrySlovakia, 1, "", "3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := delivery.Price(tt.country, tt.weight, tt.provider)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestQuotePrice(t *testing.T) {
	q := delivery.QuotePrice(constant.DeliveryMethodPersonal, delivery.CountrySlovakia, 3)
	assert.True(t, q.Price.IsZero())

	q = delivery.QuotePrice(constant.DeliveryMethodPacketa, delivery.CountrySlovakia, 3)
	assert.True(t, decimal.RequireFromString("4.50").Equal(q.Price))

	q = delivery.QuotePrice(constant.DeliveryMethodPost, delivery.CountrySlovakia, 3)
	assert.True(t, decimal.RequireFromString("5.00").Equal(q.Price))
}

func TestOptions(t *testing.T) {
	assert.Len(t, delivery.Options(delivery.CountrySlovakia), 6)
	assert.Len(t, delivery.Options(delivery.CountryCzechia), 2)
	assert.Nil(t, delivery.Options("Polska"))
}

func TestCartWeightKg(t *testing.T) {
	lines := []model.CartLine{
		{Quantity: 2, WeightGrams: 750},
		{Quantity: 3},
	}
	assert.InDelta(t, 1.8, delivery.CartWeightKg(lines), 1e-9)
	assert.Equal(t, 0.0, delivery.CartWeightKg(nil))
}
