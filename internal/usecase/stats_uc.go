package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/phenrril/shopmarket/internal/domain"
)

type StatsUC struct {
	Catalog *ProductUC
	Users   domain.UserRepo
	Orders  *OrderUC
}

// Dashboard derives the admin counters on every call.
func (uc *StatsUC) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	products, err := uc.Catalog.All(ctx)
	if err != nil {
		return s, err
	}
	s.TotalProducts = len(products)
	for _, p := range products {
		if p.StockCount < domain.LowStockThreshold {
			s.LowStockProducts++
		}
	}
	users, err := uc.Users.Count(ctx)
	if err != nil {
		return s, err
	}
	s.TotalUsers = int(users)

	orders, err := uc.Orders.AllOrders(ctx)
	if err != nil {
		return s, err
	}
	revenue := decimal.Zero
	for _, o := range orders {
		s.TotalOrders++
		if o.Status == domain.OrderStatusPending {
			s.PendingOrders++
		}
		if o.Status != domain.OrderStatusCancelled {
			revenue = revenue.Add(decimal.NewFromFloat(o.Total))
		}
	}
	s.TotalRevenue = revenue.Round(2).InexactFloat64()
	return s, nil
}
