package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_ToOrder(t *testing.T) {
	t.Run("Maps references and details", func(t *testing.T) {
		delivery := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		p := &Payload{
			User:            &EntityRef{ID: 5},
			ShippingAddress: &EntityRef{ID: 3},
			PaymentMethod:   &EntityRef{ID: 2},
			Status:          StatusShipped,
			ShippingNumber:  "SN-1",
			DeliveryDate:    &delivery,
			TotalAmount:     99.9,
			OrderDetails: []DetailPayload{
				{ProductID: 9, ProductName: "X", Quantity: 2, Price: 9.5},
			},
		}

		o := p.ToOrder()

		require.NotNil(t, o.User)
		assert.Equal(t, uint(5), o.User.ID)
		require.NotNil(t, o.ShippingAddress)
		assert.Equal(t, uint(3), o.ShippingAddress.ID)
		require.NotNil(t, o.PaymentMethod)
		assert.Equal(t, uint(2), o.PaymentMethod.ID)
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, "SN-1", o.ShippingNumber)
		assert.Equal(t, &delivery, o.DeliveryDate)
		assert.Equal(t, 99.9, o.TotalAmount)
		require.Len(t, o.Details, 1)
		assert.Equal(t, "X", o.Details[0].ProductName)
	})

	t.Run("Absent references stay nil", func(t *testing.T) {
		o := (&Payload{}).ToOrder()

		assert.Nil(t, o.User)
		assert.Nil(t, o.ShippingAddress)
		assert.Nil(t, o.PaymentMethod)
		assert.Empty(t, o.Details)
	})

	t.Run("Reference without id survives as zero-id object", func(t *testing.T) {
		// The update rules distinguish a missing address from an address
		// object that carries no id; the mapper must not collapse the two.
		var p Payload
		err := json.Unmarshal([]byte(`{"shippingAddress":{}}`), &p)
		require.NoError(t, err)

		o := p.ToOrder()
		require.NotNil(t, o.ShippingAddress)
		assert.Zero(t, o.ShippingAddress.ID)
	})
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCanceled.Valid())
	assert.False(t, OrderStatus("UNKNOWN").Valid())
	assert.False(t, OrderStatus("").Valid())
}
