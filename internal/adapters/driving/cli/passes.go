package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// Flag values shared by the pass queries.
var (
	stationFlag   string
	stationOpFlag string
	tagOpFlag     string
	opIDFlag      string
	fromFlag      string
	toFlag        string
	formatFlag    string
)

var tollStationPassesCmd = &cobra.Command{
	Use:   "tollstationpasses",
	Short: "List the passes recorded at a toll station",
	Long: `List every pass recorded at one toll station in a period.

Dates are YYYYMMDD, both ends inclusive.`,
	Example: "  se2460 tollstationpasses --station AM08 --from 20220101 --to 20220131",
	Args:    cobra.NoArgs,
	RunE:    requireAuth(runTollStationPasses),
}

var passAnalysisCmd = &cobra.Command{
	Use:     "passanalysis",
	Short:   "List passes of one operator's tags at another operator's stations",
	Example: "  se2460 passanalysis --stationop AM --tagop NAO --from 20220101 --to 20220131",
	Args:    cobra.NoArgs,
	RunE:    requireAuth(runPassAnalysis),
}

var passesCostCmd = &cobra.Command{
	Use:     "passescost",
	Short:   "Show what a tag operator owes a station operator",
	Example: "  se2460 passescost --stationop AM --tagop NAO --from 20220101 --to 20220131 --format csv",
	Args:    cobra.NoArgs,
	RunE:    requireAuth(runPassesCost),
}

var chargesByCmd = &cobra.Command{
	Use:     "chargesby",
	Short:   "Show what every visiting operator owes an operator",
	Example: "  se2460 chargesby --opid AM --from 20220101 --to 20220131",
	Args:    cobra.NoArgs,
	RunE:    requireAuth(runChargesBy),
}

func init() {
	tollStationPassesCmd.Flags().StringVar(&stationFlag, "station", "", "Toll station ID")
	_ = tollStationPassesCmd.MarkFlagRequired("station")

	for _, cmd := range []*cobra.Command{passAnalysisCmd, passesCostCmd} {
		cmd.Flags().StringVar(&stationOpFlag, "stationop", "", "Station operator ID")
		cmd.Flags().StringVar(&tagOpFlag, "tagop", "", "Tag operator ID")
		_ = cmd.MarkFlagRequired("stationop")
		_ = cmd.MarkFlagRequired("tagop")
	}

	chargesByCmd.Flags().StringVar(&opIDFlag, "opid", "", "Operator ID")
	_ = chargesByCmd.MarkFlagRequired("opid")

	for _, cmd := range []*cobra.Command{tollStationPassesCmd, passAnalysisCmd, passesCostCmd, chargesByCmd} {
		addPeriodFlags(cmd)
		addFormatFlag(cmd)
		rootCmd.AddCommand(cmd)
	}
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fromFlag, "from", "", "Start date (YYYYMMDD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End date (YYYYMMDD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&formatFlag, "format", domain.FormatJSON, "Output format (json or csv)")
}

func period() domain.Period {
	return domain.Period{From: fromFlag, To: toFlag}
}

func runTollStationPasses(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.TollStationPasses(cmd.Context(), credential, domain.StationPassesQuery{
		StationID: stationFlag,
		Period:    period(),
		Format:    formatFlag,
	})
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Toll station passes:", "")
	return nil
}

func runPassAnalysis(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.PassAnalysis(cmd.Context(), credential, operatorPair())
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Pass analysis:", "")
	return nil
}

func runPassesCost(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.PassesCost(cmd.Context(), credential, operatorPair())
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Passes cost:", "")
	return nil
}

func runChargesBy(cmd *cobra.Command, _ []string, credential string) error {
	if tollService == nil {
		return errors.New("toll service not configured")
	}

	outcome, err := tollService.ChargesBy(cmd.Context(), credential, domain.ChargesQuery{
		OpID:   opIDFlag,
		Period: period(),
		Format: formatFlag,
	})
	if err != nil {
		return handleError(cmd, err)
	}

	output(cmd).Present(outcome, formatFlag, "Charges by other operators:", "")
	return nil
}

func operatorPair() domain.OperatorPairQuery {
	return domain.OperatorPairQuery{
		StationOpID: stationOpFlag,
		TagOpID:     tagOpFlag,
		Period:      period(),
		Format:      formatFlag,
	}
}
