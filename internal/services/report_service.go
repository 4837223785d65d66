package services

import (
	"time"

	"printstore/internal/models"
	"printstore/internal/repositories"
)

const topProductsLimit = 10

type ReportService interface {
	OrderReport(from, to time.Time) (*models.OrderReport, error)
}

type reportService struct {
	orders repositories.OrderRepository
}

func NewReportService(orders repositories.OrderRepository) ReportService {
	return &reportService{orders: orders}
}

func (s *reportService) OrderReport(from, to time.Time) (*models.OrderReport, error) {
	count, revenue, err := s.orders.CountAndRevenueBetween(from, to)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orders.CountByStatusBetween(from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.orders.TopProductsBetween(from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}

	report := &models.OrderReport{
		From:        from,
		To:          to,
		OrderCount:  count,
		Revenue:     revenue,
		ByStatus:    byStatus,
		TopProducts: top,
	}
	if count > 0 {
		report.AverageTotal = revenue / float64(count)
	}
	return report, nil
}
