package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/netatmo"
)

var (
	homesHome         string
	homesGatewayTypes string
)

// homesCmd represents the homes command
var homesCmd = &cobra.Command{
	Use:   "homes",
	Short: "Show homes with their rooms and modules",
	RunE:  runHomes,
}

func init() {
	homesCmd.Flags().StringVar(&homesHome, "home", "", "only show this home")
	homesCmd.Flags().StringVar(&homesGatewayTypes, "gateway-types", "", "comma separated gateway types, e.g. NAPLUG,NACamera")

	rootCmd.AddCommand(homesCmd)
}

func runHomes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	params := netatmo.NewHomesDataParams()
	if homesHome != "" {
		params = params.HomeID(homesHome)
	}
	if homesGatewayTypes != "" {
		types, err := parseGatewayTypes(homesGatewayTypes)
		if err != nil {
			return err
		}
		params = params.GatewayTypes(types...)
	}

	client, store, err := session(ctx)
	if err != nil {
		return err
	}

	data, err := client.GetHomesData(ctx, params)
	if err != nil {
		return handleAPIError(ctx, store, err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), data)
	}

	out := cmd.OutOrStdout()
	if len(data.Body.Homes) == 0 {
		fmt.Fprintln(out, "No homes found")
		return nil
	}

	for _, home := range data.Body.Homes {
		separator(out)
		fmt.Fprintf(out, "%s (%s)\n", home.Name, home.ID)
		if home.ThermMode != "" {
			fmt.Fprintf(out, "  mode: %s\n", home.ThermMode)
		}
		for _, room := range home.Rooms {
			fmt.Fprintf(out, "  room %s (%s, %s)\n", room.Name, room.ID, room.Type)
		}
		for _, module := range home.Modules {
			fmt.Fprintf(out, "  module %s (%s, %s)\n", module.Name, module.Type, module.ID)
		}
		for _, schedule := range home.ThermSchedules {
			marker := " "
			if schedule.Selected {
				marker = "*"
			}
			fmt.Fprintf(out, "  %s schedule %s (%s)\n", marker, schedule.Name, schedule.ID)
		}
	}
	separator(out)
	return nil
}

func parseGatewayTypes(s string) ([]netatmo.GatewayType, error) {
	var types []netatmo.GatewayType
	for _, name := range splitList(s) {
		t, ok := netatmo.ParseGatewayType(name)
		if !ok {
			return nil, fmt.Errorf("unknown gateway type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}
