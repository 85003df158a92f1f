package renderer

import "github.com/etnz/fintrack"

// Forecast is a projection with the plans it is made of.
type Forecast struct {
	fintrack.Forecast
	Monthly *fintrack.MonthlyDepositConfig
	Pending []fintrack.ScheduledDeposit
}

// RenderForecast renders the projection, the monthly deposit and the pending
// scheduled deposits.
func RenderForecast(f *Forecast) string {
	partials := map[string]string{
		"forecast_monthly":  "forecast_monthly.md",
		"forecast_schedule": "forecast_schedule.md",
	}
	return renderTemplate("forecast", "forecast.md", partials, f)
}
