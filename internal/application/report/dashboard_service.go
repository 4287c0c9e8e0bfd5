package report

import (
	"context"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/order"
)

// LowStockWork is a catalog entry at or below its minimum stock
type LowStockWork struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// Dashboard aggregates the figures shown on the staff home screen
type Dashboard struct {
	OrdersByStatus map[order.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders    int64                       `json:"total_orders"`
	Revenue        float64                     `json:"revenue"`
	LowStockWorks  []LowStockWork              `json:"low_stock_works"`
}

// DashboardService builds the staff dashboard
type DashboardService struct {
	orders order.OrderRepository
	works  catalog.WorkRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orders order.OrderRepository, works catalog.WorkRepository) *DashboardService {
	return &DashboardService{orders: orders, works: works}
}

// Build assembles the dashboard figures
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	revenue, err := s.orders.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.works.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStockWorks := make([]LowStockWork, len(lowStock))
	for i := range lowStock {
		lowStockWorks[i] = LowStockWork{
			ID:       lowStock[i].ID.String(),
			Title:    lowStock[i].Title,
			Stock:    lowStock[i].Stock,
			MinStock: lowStock[i].MinStock,
		}
	}

	return &Dashboard{
		OrdersByStatus: byStatus,
		TotalOrders:    total,
		Revenue:        revenue,
		LowStockWorks:  lowStockWorks,
	}, nil
}
