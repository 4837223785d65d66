package services

import (
	"fmt"
	"log"

	"printstore/internal/models"
	"printstore/internal/repositories"
)

type OrderService interface {
	// PlaceOrder prices every line server-side, persists the order with its
	// items in one transaction and sends a best-effort confirmation email.
	PlaceOrder(user *models.User, req models.OrderRequest) (*models.Order, error)
	GetOrder(id int) (*models.Order, error)
	ListOrdersByUser(userID int) ([]*models.Order, error)
	UpdateStatus(id int, status string) error
	ListShippingMethods() ([]*models.ShippingMethod, error)
}

type orderService struct {
	orders  repositories.OrderRepository
	catalog repositories.CatalogRepository
	emails  EmailService
}

func NewOrderService(orders repositories.OrderRepository, catalog repositories.CatalogRepository, emails EmailService) OrderService {
	return &orderService{orders: orders, catalog: catalog, emails: emails}
}

var validStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusPaid:      true,
	models.OrderStatusShipped:   true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

func (s *orderService) PlaceOrder(user *models.User, req models.OrderRequest) (*models.Order, error) {
	shipping, err := s.orders.GetShippingMethod(req.ShippingMethodID)
	if err != nil {
		return nil, err
	}
	if shipping == nil {
		return nil, fmt.Errorf("shipping method %d not found", req.ShippingMethodID)
	}

	order := &models.Order{
		UserID:           user.ID,
		Status:           models.OrderStatusPending,
		ShippingMethodID: shipping.ID,
	}
	total := shipping.Price

	for _, line := range req.Items {
		product, err := s.catalog.GetProduct(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, fmt.Errorf("product %d not available", line.ProductID)
		}

		unit := product.Price
		if line.MaterialOptionID != nil {
			opt, err := s.catalog.GetMaterialOption(*line.MaterialOptionID)
			if err != nil {
				return nil, err
			}
			if opt == nil || opt.ProductID != product.ID {
				return nil, fmt.Errorf("material option %d not valid for product %d", *line.MaterialOptionID, product.ID)
			}
			unit += opt.Surcharge
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:        product.ID,
			MaterialOptionID: line.MaterialOptionID,
			Quantity:         line.Quantity,
			UnitPrice:        unit,
		})
		total += unit * float64(line.Quantity)
	}
	order.Total = total

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	log.Printf("[orders] order placed id=%d userID=%d total=%.2f items=%d", order.ID, user.ID, order.Total, len(order.Items))

	if err := s.emails.SendOrderConfirmationEmail(user.Email, user.FullName, order.ID, order.Total); err != nil {
		log.Printf("[orders] confirmation email failed for order %d: %v", order.ID, err)
	}
	return order, nil
}

func (s *orderService) GetOrder(id int) (*models.Order, error) {
	return s.orders.GetByID(id)
}

func (s *orderService) ListOrdersByUser(userID int) ([]*models.Order, error) {
	return s.orders.ListByUser(userID)
}

func (s *orderService) UpdateStatus(id int, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.orders.UpdateStatus(id, status)
}

func (s *orderService) ListShippingMethods() ([]*models.ShippingMethod, error) {
	return s.orders.ListShippingMethods()
}
