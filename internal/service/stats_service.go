package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/producttracker/internal/calculator"
	"github.com/mmynk/producttracker/internal/storage"
)

// StatsService derives the monthly figures from the current month's records.
// Nothing is cached; every call reads the store again.
type StatsService struct {
	store    storage.Store
	settings *SettingsService
}

// NewStatsService creates a new StatsService with the given storage backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store, settings: NewSettingsService(store)}
}

// ComputeSalary applies the salary formula to this month's records.
func (s *StatsService) ComputeSalary(ctx context.Context) (*calculator.Salary, error) {
	records, err := s.store.CurrentMonthRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current month records: %w", err)
	}
	params, err := s.settings.SalaryParams(ctx)
	if err != nil {
		return nil, err
	}

	salary := calculator.CalculateSalary(records, params)
	slog.Debug("Salary computed",
		"records_count", len(records),
		"sales_amount", salary.SalesAmount,
		"net_salary", salary.NetSalary,
	)
	return salary, nil
}

// ComputeProductionStats aggregates this month's records by product.
func (s *StatsService) ComputeProductionStats(ctx context.Context) (*calculator.ProductionStats, error) {
	records, err := s.store.CurrentMonthRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current month records: %w", err)
	}

	stats := calculator.CalculateProductionStats(records)
	slog.Debug("Production stats computed",
		"records_count", stats.RecordsCount,
		"best_product", calculator.BestProduct(stats),
	)
	return stats, nil
}
