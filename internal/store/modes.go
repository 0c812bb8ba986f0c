package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"
)

// LoadForecastModes returns every month's Final/Forecast flag.
func (s *Store) LoadForecastModes(ctx context.Context) (model.ForecastModes, error) {
	return loadForecastModes(ctx, s.db)
}

// SetForecastMode records a month's mode.
func (s *Store) SetForecastMode(ctx context.Context, year, month int, mode model.Mode) error {
	if !model.ValidMonth(month) {
		return fmt.Errorf("invalid month %d", month)
	}
	final := 0
	if mode == model.ModeFinal {
		final = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO forecast_modes (year, month, final, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET final = excluded.final, updated_at = excluded.updated_at`,
		year, month, final, s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("setting forecast mode: %w", err)
	}
	s.logger.InfoContext(ctx, "forecast mode set",
		log.FieldOperation, log.OpToggle,
		log.FieldYear, year, log.FieldMonth, month, log.FieldMode, mode.String())
	return nil
}

// ToggleForecastMode flips a month's mode and returns the new one.
func (s *Store) ToggleForecastMode(ctx context.Context, year, month int) (model.Mode, error) {
	modes, err := s.LoadForecastModes(ctx)
	if err != nil {
		return model.ModeForecast, err
	}
	next := modes.Toggle(year, month).Mode(year, month)
	if err := s.SetForecastMode(ctx, year, month, next); err != nil {
		return model.ModeForecast, err
	}
	return next, nil
}

// LoadYearlyTargets returns every configured annual target.
func (s *Store) LoadYearlyTargets(ctx context.Context) (model.YearlyTargets, error) {
	return loadYearlyTargets(ctx, s.db)
}

// SetYearlyTarget stores the annual budget target for year.
func (s *Store) SetYearlyTarget(ctx context.Context, year int, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("target must not be negative: %s", amount)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO yearly_targets (year, amount, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		year, amount, s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("setting target: %w", err)
	}
	s.logger.InfoContext(ctx, "yearly target set",
		log.FieldOperation, log.OpTarget, log.FieldYear, year, log.FieldAmount, amount.String())
	return nil
}

// ClearYearlyTarget removes the target for year so KPIs fall back to summed budgets.
func (s *Store) ClearYearlyTarget(ctx context.Context, year int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM yearly_targets WHERE year = ?", year)
	return err
}

func loadForecastModes(ctx context.Context, q querier) (model.ForecastModes, error) {
	rows, err := q.QueryContext(ctx, "SELECT year, month FROM forecast_modes WHERE final = 1")
	if err != nil {
		return model.ForecastModes{}, err
	}
	defer func() { _ = rows.Close() }()

	final := make(map[model.YearMonth]bool)
	for rows.Next() {
		var ym model.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return model.ForecastModes{}, err
		}
		final[ym] = true
	}
	if err := rows.Err(); err != nil {
		return model.ForecastModes{}, err
	}
	return model.NewForecastModes(final), nil
}

func loadYearlyTargets(ctx context.Context, q querier) (model.YearlyTargets, error) {
	rows, err := q.QueryContext(ctx, "SELECT year, amount FROM yearly_targets")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	targets := make(model.YearlyTargets)
	for rows.Next() {
		var (
			year   int
			amount decimal.Decimal
		)
		if err := rows.Scan(&year, &amount); err != nil {
			return nil, err
		}
		targets[year] = amount
	}
	return targets, rows.Err()
}
