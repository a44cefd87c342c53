package mongodb

import (
	"errors"
	"testing"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type priced struct {
	Amount decimal.Decimal `bson:"amount"`
}

func TestDecimalCodec(t *testing.T) {
	reg := NewRegistry()
	in := priced{Amount: decimal.RequireFromString("129.60")}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.Amount.Equal(out.Amount), "got %s", out.Amount)
}

func TestDecimalCodec_FromLegacyNumbers(t *testing.T) {
	reg := NewRegistry()
	raw, err := bson.Marshal(bson.M{"amount": 64.5})
	require.NoError(t, err)

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, decimal.RequireFromString("64.5").Equal(out.Amount))
}

func TestDecimalCodec_AcceptedPricesFitDecimal128(t *testing.T) {
	reg := NewRegistry()

	_, err := domain.ParsePrice("$19.999999999999999999999999999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	price, err := domain.ParsePrice("$999,999,999.99")
	require.NoError(t, err)
	subtotal := price.Mul(decimal.NewFromInt(1000))
	pricing := domain.PriceSubtotal(subtotal)

	raw, err := bson.MarshalWithRegistry(reg, bson.M{
		"subtotal": pricing.Subtotal,
		"tax":      pricing.Tax,
		"total":    pricing.Total,
	})
	require.NoError(t, err)

	var out struct {
		Total decimal.Decimal `bson:"total"`
	}
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, pricing.Total.Equal(out.Total), "got %s", out.Total)
}
