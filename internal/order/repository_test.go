package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"neonix-orders/internal/address"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRef(id uint) *user.User {
	return &user.User{ID: id}
}

var orderColumns = []string{
	"id", "status", "shipping_number", "delivery_date", "total_amount",
	"order_date", "created_at", "updated_at",
	"shipping_address_id", "payment_method_id",
	"u_id", "u_name", "u_email", "u_phone", "u_role", "u_created_at",
}

var detailColumns = []string{
	"id", "order_id", "product_id", "product_name", "quantity", "price",
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success with details", func(t *testing.T) {
		rows := sqlmock.NewRows(orderColumns).AddRow(
			1, "PENDING", "SN-001", nil, 250.0,
			now, now, now,
			nil, nil,
			5, "John", "john@mail.com", nil, "USER", now,
		)

		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = \\$1").
			WithArgs(uint(1)).
			WillReturnRows(rows)

		mock.ExpectQuery("SELECT .* FROM order_details WHERE order_id = ANY\\(\\$1\\)").
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(100, 1, 9, "X", 2, 9.5))

		res, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.Equal(t, uint(1), res.ID)
		assert.Equal(t, StatusPending, res.Status)
		require.NotNil(t, res.User)
		assert.Equal(t, uint(5), res.User.ID)
		require.Len(t, res.Details, 1)
		assert.Equal(t, uint(1), res.Details[0].OrderID)
		assert.Nil(t, res.ShippingAddress)
		assert.Nil(t, res.PaymentMethod)
	})

	t.Run("Success with references", func(t *testing.T) {
		rows := sqlmock.NewRows(orderColumns).AddRow(
			2, "SHIPPED", "SN-002", now, 99.0,
			now, now, now,
			int64(3), int64(4),
			5, "John", "john@mail.com", nil, "USER", now,
		)

		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = \\$1").
			WithArgs(uint(2)).
			WillReturnRows(rows)

		mock.ExpectQuery("SELECT .* FROM addresses WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "street1", "street2",
				"city", "province", "postal_code", "country", "is_default",
			}).AddRow(3, 5, "Street 1", nil, "Monterrey", "NL", "64000", "MX", true))

		mock.ExpectQuery("SELECT .* FROM payment_methods WHERE id = \\$1").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "type", "provider", "last4", "is_default",
			}).AddRow(4, 5, "CARD", "visa", "4242", true))

		mock.ExpectQuery("SELECT .* FROM order_details WHERE order_id = ANY\\(\\$1\\)").
			WillReturnRows(sqlmock.NewRows(detailColumns))

		res, err := repo.FindByID(context.Background(), 2)
		require.NoError(t, err)
		require.NotNil(t, res)

		require.NotNil(t, res.ShippingAddress)
		assert.Equal(t, "Monterrey", res.ShippingAddress.City)
		require.NotNil(t, res.PaymentMethod)
		assert.Equal(t, "visa", res.PaymentMethod.Provider)
		assert.Empty(t, res.Details)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = \\$1").
			WithArgs(uint(7)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		res, err := repo.FindByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = \\$1").
			WithArgs(uint(1)).
			WillReturnError(errors.New("db error"))

		res, err := repo.FindByID(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestRepository_Save_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	o := &Order{
		User:      userRef(5),
		Status:    StatusPending,
		OrderDate: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Details: []OrderDetail{
			{ProductID: 9, ProductName: "X", Quantity: 2, Price: 9.5},
			{ProductID: 8, ProductName: "Y", Quantity: 1, Price: 3.0},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO order_details").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery("INSERT INTO order_details").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectCommit()

	res, err := repo.Save(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, uint(10), res.ID)
	assert.Equal(t, uint(10), res.Details[0].OrderID)
	assert.Equal(t, uint(10), res.Details[1].OrderID)
	assert.Equal(t, uint(100), res.Details[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_InsertRollsBackOnDetailFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	o := &Order{
		User:    userRef(5),
		Status:  StatusPending,
		Details: []OrderDetail{{ProductID: 9, Quantity: 2}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO order_details").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	res, err := repo.Save(context.Background(), o)
	assert.Error(t, err)
	assert.Nil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	o := &Order{
		ID:              7,
		User:            userRef(5),
		ShippingAddress: &address.Address{ID: 3},
		PaymentMethod:   &payment.PaymentMethod{ID: 4},
		Status:          StatusShipped,
		ShippingNumber:  "SN-007",
		TotalAmount:     120,
		UpdatedAt:       time.Now(),
	}

	mock.ExpectExec("UPDATE orders SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := repo.Save(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, uint(7), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = repo.ExistsByID(context.Background(), 4)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Deletes details then order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM order_details WHERE order_id = \\$1").
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM orders WHERE id = \\$1").
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteByID(context.Background(), 3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back on failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM order_details WHERE order_id = \\$1").
			WithArgs(uint(3)).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.DeleteByID(context.Background(), 3)
		assert.Error(t, err)
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Groups details per order", func(t *testing.T) {
		rows := sqlmock.NewRows(orderColumns).
			AddRow(1, "PENDING", "", nil, 10.0, now, now, now, nil, nil,
				5, "John", "john@mail.com", nil, "USER", now).
			AddRow(2, "SHIPPED", "SN-2", nil, 20.0, now, now, now, nil, nil,
				5, "John", "john@mail.com", nil, "USER", now)

		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.user_id = \\$1").
			WithArgs(uint(5)).
			WillReturnRows(rows)

		mock.ExpectQuery("SELECT .* FROM order_details WHERE order_id = ANY\\(\\$1\\)").
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(100, 1, 9, "X", 2, 9.5).
				AddRow(101, 2, 8, "Y", 1, 3.0).
				AddRow(102, 2, 7, "Z", 4, 1.0))

		res, err := repo.FindByUserID(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Len(t, res[0].Details, 1)
		assert.Len(t, res[1].Details, 2)
	})

	t.Run("Empty result is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id WHERE o.user_id = \\$1").
			WithArgs(uint(6)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		res, err := repo.FindByUserID(context.Background(), 6)
		assert.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestRepository_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(orderColumns).
		AddRow(1, "PENDING", "", nil, 10.0, now, now, now, nil, nil,
			5, "John", "john@mail.com", nil, "USER", now)

	mock.ExpectQuery("SELECT .* FROM orders o JOIN users u ON u.id = o.user_id ORDER BY o.id").
		WillReturnRows(rows)

	mock.ExpectQuery("SELECT .* FROM order_details WHERE order_id = ANY\\(\\$1\\)").
		WillReturnRows(sqlmock.NewRows(detailColumns))

	res, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, res, 1)
}
