package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstore/internal/models"
)

type fakeCatalogRepo struct {
	products map[int]*models.Product
	options  map[int]*models.MaterialOption
}

func (f *fakeCatalogRepo) CreateCategory(c *models.Category) error        { return nil }
func (f *fakeCatalogRepo) ListCategories() ([]*models.Category, error)    { return nil, nil }
func (f *fakeCatalogRepo) GetCategory(id int) (*models.Category, error)   { return nil, nil }
func (f *fakeCatalogRepo) DeleteCategory(id int) error                    { return nil }
func (f *fakeCatalogRepo) CreateSubCategory(sc *models.SubCategory) error { return nil }
func (f *fakeCatalogRepo) CreateProduct(p *models.Product) error          { return nil }
func (f *fakeCatalogRepo) GetProduct(id int) (*models.Product, error)     { return f.products[id], nil }
func (f *fakeCatalogRepo) ListProducts(subCategoryID int, activeOnly bool) ([]*models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) UpdateProduct(p *models.Product) error       { return nil }
func (f *fakeCatalogRepo) DeleteProduct(id int) error                  { return nil }
func (f *fakeCatalogRepo) AddMaterialOption(o *models.MaterialOption) error { return nil }
func (f *fakeCatalogRepo) GetMaterialOption(id int) (*models.MaterialOption, error) {
	return f.options[id], nil
}

type fakeOrderRepo struct {
	shipping map[int]*models.ShippingMethod
	created  []*models.Order
	statuses map[int]string

	reportCount    int
	reportRevenue  float64
	reportByStatus map[string]int
	reportTop      []models.ProductSalesLine
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = len(f.created) + 1
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id int) (*models.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUser(userID int) ([]*models.Order, error) { return nil, nil }

func (f *fakeOrderRepo) UpdateStatus(id int, status string) error {
	if f.statuses == nil {
		f.statuses = map[int]string{}
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeOrderRepo) GetShippingMethod(id int) (*models.ShippingMethod, error) {
	return f.shipping[id], nil
}

func (f *fakeOrderRepo) ListShippingMethods() ([]*models.ShippingMethod, error) { return nil, nil }

func (f *fakeOrderRepo) CountAndRevenueBetween(from, to time.Time) (int, float64, error) {
	return f.reportCount, f.reportRevenue, nil
}

func (f *fakeOrderRepo) CountByStatusBetween(from, to time.Time) (map[string]int, error) {
	return f.reportByStatus, nil
}

func (f *fakeOrderRepo) TopProductsBetween(from, to time.Time, limit int) ([]models.ProductSalesLine, error) {
	return f.reportTop, nil
}

func newOrderFixture() (*fakeOrderRepo, *fakeCatalogRepo, OrderService) {
	orders := &fakeOrderRepo{
		shipping: map[int]*models.ShippingMethod{
			1: {ID: 1, Name: "Courier", Price: 10},
		},
	}
	catalog := &fakeCatalogRepo{
		products: map[int]*models.Product{
			7: {ID: 7, Name: "Business cards", Price: 100, Active: true},
			8: {ID: 8, Name: "Old flyer", Price: 50, Active: false},
		},
		options: map[int]*models.MaterialOption{
			3: {ID: 3, ProductID: 7, Name: "Glossy", Surcharge: 20},
			4: {ID: 4, ProductID: 99, Name: "Foreign", Surcharge: 5},
		},
	}
	return orders, catalog, NewOrderService(orders, catalog, &fakeEmailService{})
}

func TestPlaceOrderComputesTotalsServerSide(t *testing.T) {
	_, _, svc := newOrderFixture()
	user := &models.User{ID: 1, Email: "a@x.com", FullName: "A"}
	opt := 3

	order, err := svc.PlaceOrder(user, models.OrderRequest{
		ShippingMethodID: 1,
		Items: []models.OrderItemRequest{
			{ProductID: 7, MaterialOptionID: &opt, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 120.0, order.Items[0].UnitPrice, "unit = price + surcharge")
	assert.Equal(t, 250.0, order.Total, "total = 2*120 + shipping 10")
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 1, order.ID)
}

func TestPlaceOrderRejectsInactiveProduct(t *testing.T) {
	orders, _, svc := newOrderFixture()
	user := &models.User{ID: 1}

	_, err := svc.PlaceOrder(user, models.OrderRequest{
		ShippingMethodID: 1,
		Items:            []models.OrderItemRequest{{ProductID: 8, Quantity: 1}},
	})
	assert.Error(t, err)
	assert.Empty(t, orders.created)
}

func TestPlaceOrderRejectsForeignMaterialOption(t *testing.T) {
	orders, _, svc := newOrderFixture()
	user := &models.User{ID: 1}
	opt := 4 // belongs to product 99, not 7

	_, err := svc.PlaceOrder(user, models.OrderRequest{
		ShippingMethodID: 1,
		Items:            []models.OrderItemRequest{{ProductID: 7, MaterialOptionID: &opt, Quantity: 1}},
	})
	assert.Error(t, err)
	assert.Empty(t, orders.created)
}

func TestPlaceOrderRejectsUnknownShippingMethod(t *testing.T) {
	_, _, svc := newOrderFixture()
	user := &models.User{ID: 1}

	_, err := svc.PlaceOrder(user, models.OrderRequest{
		ShippingMethodID: 42,
		Items:            []models.OrderItemRequest{{ProductID: 7, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	orders, _, svc := newOrderFixture()

	assert.Error(t, svc.UpdateStatus(1, "TELEPORTED"))
	require.NoError(t, svc.UpdateStatus(1, models.OrderStatusShipped))
	assert.Equal(t, models.OrderStatusShipped, orders.statuses[1])
}

func TestOrderReportAggregation(t *testing.T) {
	orders := &fakeOrderRepo{
		reportCount:    4,
		reportRevenue:  1000,
		reportByStatus: map[string]int{models.OrderStatusPaid: 3, models.OrderStatusCancelled: 1},
		reportTop: []models.ProductSalesLine{
			{ProductID: 7, ProductName: "Business cards", Quantity: 10, Revenue: 800},
		},
	}
	svc := NewReportService(orders)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	report, err := svc.OrderReport(from, to)
	require.NoError(t, err)

	assert.Equal(t, 4, report.OrderCount)
	assert.Equal(t, 250.0, report.AverageTotal)
	assert.Equal(t, 3, report.ByStatus[models.OrderStatusPaid])
	require.Len(t, report.TopProducts, 1)
}

func TestOrderReportEmptyPeriod(t *testing.T) {
	svc := NewReportService(&fakeOrderRepo{})

	report, err := svc.OrderReport(time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Zero(t, report.OrderCount)
	assert.Zero(t, report.AverageTotal, "no division by zero on an empty period")
}
