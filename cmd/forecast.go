package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kommunalcrm/treasury/internal/export"
	"github.com/kommunalcrm/treasury/internal/forecast"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/kommunalcrm/treasury/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagOrganization  string
	flagOverrides     string
	flagHorizon       int
	flagHistoryMonths int
	flagMonth         string
	flagCSV           bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the cash flow forecast of an organization",
	Long: `Print the cash flow forecast of an organization as JSON or CSV.

Plan overrides from a TOML file replace the stored overrides of the same
category for this run only. They are not saved.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&flagOrganization, "organization", "o", "", "Name of the organization")
	forecastCmd.Flags().StringVar(&flagOverrides, "overrides", "", "TOML file with plan overrides")
	forecastCmd.Flags().IntVar(&flagHorizon, "horizon", -1, "Number of months to project. Defaults to FORECAST_HORIZON")
	forecastCmd.Flags().IntVar(&flagHistoryMonths, "history", -1, "Number of historical months. Defaults to FORECAST_HISTORY_MONTHS")
	forecastCmd.Flags().StringVar(&flagMonth, "month", "", "The current month in YYYY-MM format. Defaults to this month")
	forecastCmd.Flags().BoolVar(&flagCSV, "csv", false, "Print CSV instead of JSON")
	_ = forecastCmd.MarkFlagRequired("organization")

	rootCmd.AddCommand(forecastCmd)
}

// forecastOptions returns the projection options from the flags and configuration.
func forecastOptions(now time.Time) (forecast.Options, error) {
	opts := forecast.Options{
		Now:           now,
		Horizon:       cfg.Forecast.Horizon,
		HistoryMonths: cfg.Forecast.HistoryMonths,
	}

	if flagHorizon >= 0 {
		opts.Horizon = flagHorizon
	}

	if flagHistoryMonths >= 0 {
		opts.HistoryMonths = flagHistoryMonths
	}

	if flagMonth != "" {
		month, err := types.ParseMonth(flagMonth)
		if err != nil {
			return forecast.Options{}, fmt.Errorf("invalid month %q: %w", flagMonth, err)
		}
		opts.Now = month.Start()
	}

	return opts, nil
}

func runForecast(cmd *cobra.Command, _ []string) error {
	opts, err := forecastOptions(time.Now().In(time.UTC))
	if err != nil {
		return err
	}

	if err := connect(); err != nil {
		return err
	}

	snapshot, err := forecast.Load(cmd.Context(), models.NewStore(models.DB), flagOrganization)
	if err != nil {
		return err
	}

	if flagOverrides != "" {
		f, err := os.Open(flagOverrides)
		if err != nil {
			return err
		}
		defer f.Close()

		overrides, err := parseOverrides(f, flagOrganization)
		if err != nil {
			return err
		}
		snapshot.Overrides = mergeOverrides(snapshot.Overrides, overrides)
	}

	result, err := forecast.Run(snapshot, opts)
	if err != nil {
		return err
	}

	if flagCSV {
		return export.Write(cmd.OutOrStdout(), export.Forecast(result.Forecast))
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
