package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/filter"
	"github.com/s0up4200/atmo/netatmo"
)

var (
	statusHome        string
	statusDeviceTypes string
	statusFilter      string
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the heating state of every room of a home",
	Long: `Show the measured temperature, setpoint and mode of every room of a home.

  atmo status --filter 'Temperature < Setpoint - 1'
  atmo status --filter 'OpenWindow'`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusHome, "home", "", "home id (default netatmo.home_id)")
	statusCmd.Flags().StringVar(&statusDeviceTypes, "device-types", "", "comma separated gateway types")
	statusCmd.Flags().StringVarP(&statusFilter, "filter", "f", "", "filter preset or expression")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	homeID := firstNonEmpty(statusHome, cfg.Netatmo.HomeID)
	if homeID == "" {
		return fmt.Errorf("--home or netatmo.home_id is required")
	}

	params := netatmo.NewHomeStatusParams().HomeID(homeID)
	if statusDeviceTypes != "" {
		types, err := parseGatewayTypes(statusDeviceTypes)
		if err != nil {
			return err
		}
		params = params.DeviceTypes(types...)
	}

	match, err := resolveFilter(statusFilter)
	if err != nil {
		return err
	}

	client, store, err := session(ctx)
	if err != nil {
		return err
	}

	status, err := client.GetHomeStatus(ctx, params)
	if err != nil {
		return handleAPIError(ctx, store, err)
	}

	if jsonOutput && match == nil {
		return printJSON(cmd.OutOrStdout(), status)
	}

	// Room names only come with the topology
	homes, err := client.GetHomesData(ctx, netatmo.NewHomesDataParams().HomeID(homeID))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch room names")
		homes = nil
	}

	rooms := filter.Select(match, filter.RoomsFromHomeStatus(status, homes))
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), rooms)
	}

	out := cmd.OutOrStdout()
	if len(rooms) == 0 {
		fmt.Fprintln(out, "No rooms found")
		return nil
	}

	for _, room := range rooms {
		s := room.State
		fmt.Fprintf(out, "%-20s %5.1f°C  setpoint %5.1f°C  %-8s heating %3d%%",
			room.Name, s.ThermMeasuredTemperature, s.ThermSetpointTemperature, s.ThermSetpointMode, s.HeatingPowerRequest)
		if s.ThermSetpointEndTime > 0 {
			fmt.Fprintf(out, "  until %s", formatUnix(s.ThermSetpointEndTime))
		}
		if s.OpenWindow {
			fmt.Fprint(out, "  window open")
		}
		if !s.Reachable {
			fmt.Fprint(out, "  unreachable")
		}
		fmt.Fprintln(out)
	}
	return nil
}
