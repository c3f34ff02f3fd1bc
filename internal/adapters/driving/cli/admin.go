package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/core/services"
)

var (
	sourceFlag         string
	stationsSourceFlag string
	addPassesFlag      bool
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the health of the system",
	Long:  `Report the API server and database status. No login is required.`,
	Args:  cobra.NoArgs,
	RunE:  runHealthcheck,
}

var resetStationsCmd = &cobra.Command{
	Use:   "resetstations",
	Short: "Reset toll stations from a CSV file",
	Long: `Reload the toll station catalogue from a local CSV file.

Without --source, tollstations2024.csv in the working directory is used.`,
	Args: cobra.NoArgs,
	RunE: requireAuth(runResetStations),
}

var resetPassesCmd = &cobra.Command{
	Use:   "resetpasses",
	Short: "Delete all pass records",
	Args:  cobra.NoArgs,
	RunE:  requireAuth(runResetPasses),
}

var adminCmd = &cobra.Command{
	Use:     "admin",
	Short:   "Administrative operations",
	Example: "  se2460 admin --addpasses --source passes-2022.csv",
	Args:    cobra.NoArgs,
	RunE:    runAdmin,
}

var addPassesCmd = &cobra.Command{
	Use:     "addpasses",
	Short:   "Upload pass events from a CSV file",
	Example: "  se2460 addpasses --source passes-2022.csv",
	Args:    cobra.NoArgs,
	RunE:    requireAuth(runAddPasses),
}

func init() {
	addFormatFlag(healthcheckCmd)

	resetStationsCmd.Flags().StringVar(&stationsSourceFlag, "source", services.DefaultStationsSource, "CSV file with toll stations")
	addFormatFlag(resetStationsCmd)

	addFormatFlag(resetPassesCmd)

	adminCmd.Flags().BoolVar(&addPassesFlag, "addpasses", false, "Upload pass events from a CSV file")
	adminCmd.Flags().StringVar(&sourceFlag, "source", "", "CSV file with pass events")

	addPassesCmd.Flags().StringVar(&sourceFlag, "source", "", "CSV file with pass events")

	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(resetStationsCmd)
	rootCmd.AddCommand(resetPassesCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(addPassesCmd)
}

func runHealthcheck(cmd *cobra.Command, _ []string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.HealthCheck(cmd.Context(), apiKeyFlag, formatFlag)
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Healthcheck result:", "")
	return nil
}

func runResetStations(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.ResetStations(cmd.Context(), credential, stationsSourceFlag)
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Reset stations result:", "")
	return nil
}

func runResetPasses(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.ResetPasses(cmd.Context(), credential, formatFlag)
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Reset passes result:", "")
	return nil
}

func runAdmin(cmd *cobra.Command, args []string) error {
	if !addPassesFlag {
		return nil
	}
	if sourceFlag == "" {
		output(cmd).MissingSource()
		return nil
	}
	return requireAuth(runAddPasses)(cmd, args)
}

func runAddPasses(cmd *cobra.Command, _ []string, credential string) error {
	if sourceFlag == "" {
		output(cmd).MissingSource()
		return nil
	}
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.AddPasses(cmd.Context(), credential, sourceFlag)
	if err != nil {
		return handleError(cmd, err)
	}

	p := output(cmd)
	if outcome.Err() != nil {
		p.Report(outcome)
		return nil
	}
	p.Success("Pass events uploaded successfully.")
	return nil
}
