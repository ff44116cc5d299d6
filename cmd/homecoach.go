package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/filter"
	"github.com/s0up4200/atmo/netatmo"
)

var (
	homecoachDevice string
	homecoachFilter string
)

// homecoachCmd represents the homecoach command
var homecoachCmd = &cobra.Command{
	Use:     "homecoach",
	Aliases: []string{"coach"},
	Short:   "Show Healthy Home Coach readings",
	RunE:    runHomecoach,
}

func init() {
	homecoachCmd.Flags().StringVar(&homecoachDevice, "device", "", "Home Coach MAC address")
	homecoachCmd.Flags().StringVarP(&homecoachFilter, "filter", "f", "", "filter preset or expression")

	rootCmd.AddCommand(homecoachCmd)
}

func runHomecoach(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	match, err := resolveFilter(homecoachFilter)
	if err != nil {
		return err
	}

	client, store, err := session(ctx)
	if err != nil {
		return err
	}

	params := netatmo.NewHomecoachsDataParams()
	if homecoachDevice != "" {
		params = params.DeviceID(homecoachDevice)
	}

	data, err := client.GetHomecoachsData(ctx, params)
	if err != nil {
		return handleAPIError(ctx, store, err)
	}

	if jsonOutput && match == nil {
		return printJSON(cmd.OutOrStdout(), data)
	}

	coaches := make([]filter.ModuleSubject, 0, len(data.Body.Devices))
	for _, device := range data.Body.Devices {
		coaches = append(coaches, filter.HomecoachSubject(device))
	}
	coaches = filter.Select(match, coaches)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), coaches)
	}
	printModules(cmd, coaches)
	return nil
}
