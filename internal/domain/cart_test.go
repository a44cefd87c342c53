package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartInput(id, price string) CartItemInput {
	return CartItemInput{CraftID: id, CraftTitle: "Craft " + id, CraftPrice: price, CraftImage: "/uploads/" + id + ".png"}
}

func addTo(t *testing.T, c *Cart, in CartItemInput) {
	t.Helper()
	price, err := in.Validate()
	require.NoError(t, err)
	c.AddItem(in, price)
}

func TestCart_AddItem(t *testing.T) {
	c := NewCart("u1", time.Now())
	require.True(t, c.IsEmpty())

	addTo(t, c, cartInput("a", "$30"))
	addTo(t, c, cartInput("b", "$45"))
	addTo(t, c, cartInput("b", "$45"))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 2, c.Items[1].Quantity)
	assert.True(t, dec("120").Equal(c.TotalAmount))
}

func TestCart_RepeatAddIgnoresRequestedQuantity(t *testing.T) {
	c := NewCart("u1", time.Now())
	in := cartInput("a", "10")
	in.Quantity = 5
	addTo(t, c, in)
	addTo(t, c, in)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, dec("20").Equal(c.TotalAmount))
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart("u1", time.Now())
	addTo(t, c, cartInput("a", "$30"))
	addTo(t, c, cartInput("b", "$45"))

	c.RemoveItem("missing")
	assert.Len(t, c.Items, 2)
	assert.True(t, dec("75").Equal(c.TotalAmount))

	c.RemoveItem("a")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "b", c.Items[0].CraftID)
	assert.True(t, dec("45").Equal(c.TotalAmount))
}

func TestCart_Clear(t *testing.T) {
	c := NewCart("u1", time.Now())
	addTo(t, c, cartInput("a", "₹1,000"))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
	assert.True(t, c.TotalAmount.IsZero())
}

func TestCart_Clone(t *testing.T) {
	c := NewCart("u1", time.Now())
	addTo(t, c, cartInput("a", "5"))

	cp := c.Clone()
	cp.Items[0].Quantity = 9
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestCartItemInput_Validate(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		in := CartItemInput{CraftID: "a", CraftPrice: "$3"}
		_, err := in.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "craftTitle")
		assert.Contains(t, err.Error(), "craftImage")
	})

	t.Run("unparseable price", func(t *testing.T) {
		in := cartInput("a", "free")
		_, err := in.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
