package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/calculator"
	"github.com/mmynk/producttracker/internal/models"
	"github.com/mmynk/producttracker/internal/storage"
)

// SettingsService reads and validates user settings.
type SettingsService struct {
	store storage.Store
}

// NewSettingsService creates a new SettingsService with the given storage backend.
func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// SalaryParams returns the stored salary inputs, with defaults for unset ones.
func (s *SettingsService) SalaryParams(ctx context.Context) (calculator.SalaryParams, error) {
	var params calculator.SalaryParams
	var err error

	if params.BaseSalary, err = storage.GetSetting(ctx, s.store, models.SettingBaseSalary, decimal.Zero); err != nil {
		return params, fmt.Errorf("failed to read base salary: %w", err)
	}
	if params.AdvancePayment, err = storage.GetSetting(ctx, s.store, models.SettingAdvancePayment, decimal.Zero); err != nil {
		return params, fmt.Errorf("failed to read advance payment: %w", err)
	}
	if params.TaxRate, err = storage.GetSetting(ctx, s.store, models.SettingTaxRate, decimal.NewFromInt(models.DefaultTaxRate)); err != nil {
		return params, fmt.Errorf("failed to read tax rate: %w", err)
	}
	return params, nil
}

// SetSalaryParams validates and stores the salary inputs.
func (s *SettingsService) SetSalaryParams(ctx context.Context, params calculator.SalaryParams) error {
	slog.Info("SetSalaryParams request received",
		"base_salary", params.BaseSalary,
		"advance_payment", params.AdvancePayment,
		"tax_rate", params.TaxRate,
	)

	if err := params.Validate(); err != nil {
		return &ValidationError{Field: "salary", Message: err.Error()}
	}

	for key, value := range map[string]decimal.Decimal{
		models.SettingBaseSalary:     params.BaseSalary,
		models.SettingAdvancePayment: params.AdvancePayment,
		models.SettingTaxRate:        params.TaxRate,
	} {
		// Stored as JSON numbers, the way the browser app writes them.
		if err := s.store.SetSetting(ctx, key, json.Number(value.String())); err != nil {
			slog.Error("SetSalaryParams failed", "key", key, "error", err)
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

// Theme returns the current theme and whether the user chose it explicitly.
func (s *SettingsService) Theme(ctx context.Context) (string, bool, error) {
	theme, err := storage.GetSetting(ctx, s.store, models.SettingTheme, models.ThemeLight)
	if err != nil {
		return "", false, fmt.Errorf("failed to read theme: %w", err)
	}
	manual, err := storage.GetSetting(ctx, s.store, models.SettingThemeSetManually, false)
	if err != nil {
		return "", false, fmt.Errorf("failed to read theme flag: %w", err)
	}
	return theme, manual, nil
}

// SetTheme stores a theme chosen by the user.
func (s *SettingsService) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return &ValidationError{Field: "theme", Message: fmt.Sprintf("must be %q or %q", models.ThemeLight, models.ThemeDark)}
	}
	if err := s.store.SetSetting(ctx, models.SettingTheme, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	if err := s.store.SetSetting(ctx, models.SettingThemeSetManually, true); err != nil {
		return fmt.Errorf("failed to save theme flag: %w", err)
	}
	slog.Info("Theme set", "theme", theme)
	return nil
}

// ResetTheme clears the manual choice so the theme follows the system again.
func (s *SettingsService) ResetTheme(ctx context.Context) error {
	if err := s.store.SetSetting(ctx, models.SettingThemeSetManually, false); err != nil {
		return fmt.Errorf("failed to reset theme flag: %w", err)
	}
	return nil
}
