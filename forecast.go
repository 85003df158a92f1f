package fintrack

import (
	"fmt"
	"time"
)

// ScheduledDeposit is a planned one-off deposit. Completed is only changed
// by the user.
type ScheduledDeposit struct {
	ID            DepositID   `json:"id"`
	Amount        Money       `json:"amount"`
	Source        MoneySource `json:"source"`
	ScheduledDate Date        `json:"scheduledDate"`
	Description   string      `json:"description"`
	Completed     bool        `json:"completed"`
}

// Validate checks the amount and the source.
func (d ScheduledDeposit) Validate() error {
	if !d.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if !d.Source.Valid() {
		return invalid("source", fmt.Errorf("%w: %q", ErrUnknownSource, d.Source))
	}
	if d.ScheduledDate.IsZero() {
		return invalid("date", fmt.Errorf("scheduled date is missing"))
	}
	return nil
}

// MonthlyDepositConfig describes a deposit recurring every month on DayOfMonth.
type MonthlyDepositConfig struct {
	Enabled    bool        `json:"enabled"`
	Amount     Money       `json:"amount"`
	Source     MoneySource `json:"source"`
	DayOfMonth int         `json:"dayOfMonth"`
	LastRun    *time.Time  `json:"lastRun,omitempty"`
}

// Validate checks the amount, the source and the day of month.
func (c MonthlyDepositConfig) Validate() error {
	if !c.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	if !c.Source.Valid() {
		return invalid("source", fmt.Errorf("%w: %q", ErrUnknownSource, c.Source))
	}
	if c.DayOfMonth < 1 || c.DayOfMonth > 28 {
		return invalid("day", fmt.Errorf("%w, got %d", ErrInvalidDay, c.DayOfMonth))
	}
	return nil
}

// ForecastBreakdown explains a projected amount.
type ForecastBreakdown struct {
	CurrentBalance Money
	Scheduled      Money
	ScheduledCount int
	Monthly        Money
	MonthlyCount   int
}

// Forecast is the projected total balance on Date, as seen on Today.
type Forecast struct {
	Date      Date
	Today     Date
	Amount    Money
	Breakdown ForecastBreakdown
}

func (f Forecast) IsPast() bool   { return f.Date.Before(f.Today) }
func (f Forecast) IsToday() bool  { return f.Date == f.Today }
func (f Forecast) IsFuture() bool { return f.Date.After(f.Today) }

// Project projects the total balance on asOf from today.
func Project(reg Registry, asOf Date, cfg *MonthlyDepositConfig, deps []ScheduledDeposit) Forecast {
	return ProjectFrom(Today(), reg, asOf, cfg, deps)
}

// ProjectFrom projects the total balance on asOf, as seen on today.
//
// A past asOf returns the current total. Otherwise the projection adds every
// pending scheduled deposit due on or before asOf, and the monthly amount once
// for each day in [today, asOf] whose day of month is the configured one.
// Nothing is mutated.
func ProjectFrom(today Date, reg Registry, asOf Date, cfg *MonthlyDepositConfig, deps []ScheduledDeposit) Forecast {
	f := Forecast{Date: asOf, Today: today}
	f.Breakdown.CurrentBalance = reg.Total()
	f.Amount = f.Breakdown.CurrentBalance
	if asOf.Before(today) {
		return f
	}

	for _, d := range deps {
		if d.Completed || d.ScheduledDate.After(asOf) {
			continue
		}
		f.Breakdown.Scheduled = f.Breakdown.Scheduled.Add(d.Amount)
		f.Breakdown.ScheduledCount++
	}

	if cfg != nil && cfg.Enabled {
		for day := range (Range{From: today, To: asOf}).Days() {
			if day.Day() == cfg.DayOfMonth {
				f.Breakdown.MonthlyCount++
			}
		}
		f.Breakdown.Monthly = cfg.Amount.MulInt(f.Breakdown.MonthlyCount)
	}

	f.Amount = f.Amount.Add(f.Breakdown.Scheduled).Add(f.Breakdown.Monthly)
	return f
}

// Pending returns the deposits not completed yet, in their original order.
func Pending(deps []ScheduledDeposit) []ScheduledDeposit {
	var out []ScheduledDeposit
	for _, d := range deps {
		if !d.Completed {
			out = append(out, d)
		}
	}
	return out
}
