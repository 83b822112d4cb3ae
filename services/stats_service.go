package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
)

// StatsSummary is the admin dashboard aggregate. All sums are zero, never
// null, when nothing matches.
type StatsSummary struct {
	OrderCounts struct {
		New           int64 `json:"new"`
		Pending       int64 `json:"pending"`
		PendingDriver int64 `json:"pending_driver"`
		Delivered     int64 `json:"delivered"`
		Completed     int64 `json:"completed"`
		Cancelled     int64 `json:"cancelled"`
	} `json:"order_counts"`
	TotalSalesToday          float64 `json:"total_sales_today"`
	TotalSalesLastWeek       float64 `json:"total_sales_last_week"`
	TotalItemsSoldLastWeek   int64   `json:"total_items_sold_last_week"`
	DistinctProductsLastWeek int64   `json:"distinct_products_last_week"`
}

// StatsService is a read-only aggregator over committed orders. It takes
// no locks; a snapshot that races with order mutations is acceptable.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// ComputeStats buckets orders by status and sums sales over the current
// day and a rolling 7-day window. A nil storeID aggregates every branch.
func (s *StatsService) ComputeStats(storeID *uint) (*StatsSummary, error) {
	var stats StatsSummary

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Order{})
		if storeID != nil {
			q = q.Where("nearby_store_address_id = ?", *storeID)
		}
		return q
	}

	statusCounts := []struct {
		status int
		dest   *int64
	}{
		{models.OrderStatusNew, &stats.OrderCounts.New},
		{models.OrderStatusAdminAccepted, &stats.OrderCounts.Pending},
		{models.OrderStatusTransit, &stats.OrderCounts.PendingDriver},
		{models.OrderStatusDelivered, &stats.OrderCounts.Delivered},
		{models.OrderStatusCompleted, &stats.OrderCounts.Completed},
		{models.OrderStatusCancelled, &stats.OrderCounts.Cancelled},
	}
	for _, sc := range statusCounts {
		if err := scoped().Where("status = ?", sc.status).Count(sc.dest).Error; err != nil {
			return nil, err
		}
	}

	now := time.Now()
	startOfDay := startOfLocalDay(now)
	weekAgo := now.AddDate(0, 0, -7)

	if err := scoped().
		Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, startOfDay).
		Select("COALESCE(SUM(total_order_price), 0)").
		Row().Scan(&stats.TotalSalesToday); err != nil {
		return nil, err
	}

	if err := scoped().
		Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, weekAgo).
		Select("COALESCE(SUM(total_order_price), 0)").
		Row().Scan(&stats.TotalSalesLastWeek); err != nil {
		return nil, err
	}

	itemsQuery := s.db.Model(&models.CartItem{}).
		Joins("JOIN orders ON orders.id = cart_items.order_id").
		Where("orders.status = ? AND orders.created_at >= ?", models.OrderStatusCompleted, weekAgo)
	if storeID != nil {
		itemsQuery = itemsQuery.Where("orders.nearby_store_address_id = ?", *storeID)
	}

	if err := itemsQuery.
		Select("COALESCE(SUM(cart_items.quantity), 0)").
		Row().Scan(&stats.TotalItemsSoldLastWeek); err != nil {
		return nil, err
	}

	distinctQuery := s.db.Model(&models.CartItem{}).
		Joins("JOIN orders ON orders.id = cart_items.order_id").
		Where("orders.status = ? AND orders.created_at >= ?", models.OrderStatusCompleted, weekAgo)
	if storeID != nil {
		distinctQuery = distinctQuery.Where("orders.nearby_store_address_id = ?", *storeID)
	}

	if err := distinctQuery.
		Select("COUNT(DISTINCT cart_items.product_id)").
		Row().Scan(&stats.DistinctProductsLastWeek); err != nil {
		return nil, err
	}

	return &stats, nil
}
