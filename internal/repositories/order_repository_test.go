package repositories

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstore/internal/models"
)

func newOrderRepoMock(t *testing.T) (OrderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepository(db), mock
}

func TestGetByIDLoadsItems(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, user_id, status, shipping_method_id, total, created_at`).
		WithArgs(5).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "status", "shipping_method_id", "total", "created_at"}).
			AddRow(5, 1, models.OrderStatusPending, 1, 250.0, created))
	mock.ExpectQuery(`SELECT id, order_id, product_id, material_option_id, quantity, unit_price`).
		WithArgs(5).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "order_id", "product_id", "material_option_id", "quantity", "unit_price"}).
			AddRow(10, 5, 7, 3, 2, 120.0).
			AddRow(11, 5, 8, nil, 1, 10.0))

	order, err := repo.GetByID(5)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 250.0, order.Total)

	require.Len(t, order.Items, 2)
	require.NotNil(t, order.Items[0].MaterialOptionID)
	assert.Equal(t, 3, *order.Items[0].MaterialOptionID)
	assert.Nil(t, order.Items[1].MaterialOptionID, "NULL option column maps to a nil pointer")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingOrder(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectQuery(`SELECT id, user_id, status, shipping_method_id, total, created_at`).
		WithArgs(42).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "status", "shipping_method_id", "total", "created_at"}))

	order, err := repo.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserReturnsSummaries(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// one query only: items are intentionally not loaded for listings
	mock.ExpectQuery(`SELECT id, user_id, status, shipping_method_id, total, created_at`).
		WithArgs(1).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_id", "status", "shipping_method_id", "total", "created_at"}).
			AddRow(5, 1, models.OrderStatusPaid, 1, 250.0, created).
			AddRow(6, 1, models.OrderStatusPending, 2, 60.0, created))

	orders, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Nil(t, o.Items)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
