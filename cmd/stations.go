package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/filter"
	"github.com/s0up4200/atmo/netatmo"
)

var (
	stationDevice    string
	stationFavorites bool
	stationFilter    string
)

// stationsCmd represents the stations command
var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Show weather stations and their last readings",
	Long: `Show the weather stations of the account and the last readings of every
module. Use --filter with a preset name or an expression to narrow the list:

  atmo stations --filter 'Temperature < 5'
  atmo stations --filter 'has("CO2") && CO2 > 1000'`,
	RunE: runStations,
}

func init() {
	stationsCmd.Flags().StringVar(&stationDevice, "device", "", "station MAC address (default netatmo.device_id)")
	stationsCmd.Flags().BoolVar(&stationFavorites, "favorites", false, "include favorite stations")
	stationsCmd.Flags().StringVarP(&stationFilter, "filter", "f", "", "filter preset or expression")

	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	match, err := resolveFilter(stationFilter)
	if err != nil {
		return err
	}

	client, store, err := session(ctx)
	if err != nil {
		return err
	}

	params := netatmo.NewStationDataParams()
	if id := firstNonEmpty(stationDevice, cfg.Netatmo.DeviceID); id != "" {
		params = params.DeviceID(id)
	}
	if stationFavorites {
		params = params.GetFavorites(true)
	}

	data, err := client.GetStationData(ctx, params)
	if err != nil {
		return handleAPIError(ctx, store, err)
	}

	if jsonOutput && match == nil {
		return printJSON(cmd.OutOrStdout(), data)
	}

	modules := filter.Select(match, filter.ModulesFromStationData(data))
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), modules)
	}

	printModules(cmd, modules)
	return nil
}

func printModules(cmd *cobra.Command, modules []filter.ModuleSubject) {
	out := cmd.OutOrStdout()
	if len(modules) == 0 {
		fmt.Fprintln(out, "No modules found")
		return
	}

	for _, m := range modules {
		separator(out)
		fmt.Fprintf(out, "%s (%s, %s)\n", m.Label(), m.Type, m.ID)
		if !m.Reachable {
			fmt.Fprintln(out, "  unreachable")
		}

		d := m.Data
		var readings []string
		if d.Temperature != nil {
			readings = append(readings, "temp "+formatFloat(d.Temperature, "°C"))
		}
		if d.Humidity != nil {
			readings = append(readings, "humidity "+formatInt(d.Humidity, "%"))
		}
		if d.CO2 != nil {
			readings = append(readings, "CO2 "+formatInt(d.CO2, "ppm"))
		}
		if d.Noise != nil {
			readings = append(readings, "noise "+formatInt(d.Noise, "dB"))
		}
		if d.Pressure != nil {
			readings = append(readings, "pressure "+formatFloat(d.Pressure, "mbar"))
		}
		if d.Rain != nil {
			readings = append(readings, "rain "+formatFloat(d.Rain, "mm"))
		}
		if d.WindStrength != nil {
			readings = append(readings, "wind "+formatInt(d.WindStrength, "km/h"))
		}
		if d.HealthIdx != nil {
			readings = append(readings, "health "+formatInt(d.HealthIdx, ""))
		}
		if len(readings) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(readings, ", "))
		}
		if m.Battery != nil {
			fmt.Fprintf(out, "  battery %d%%\n", *m.Battery)
		}
		if d.TimeUTC != nil {
			fmt.Fprintf(out, "  updated %s\n", formatUnix(*d.TimeUTC))
		}
	}
	separator(out)
	fmt.Fprintf(out, "%d module(s)\n", len(modules))
}

// resolveFilter returns nil when nameOrExpr is empty
func resolveFilter(nameOrExpr string) (filter.Filter, error) {
	if nameOrExpr == "" {
		return nil, nil
	}
	f, err := filters.Resolve(nameOrExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	logger.Debug().Str("expression", f.Expression()).Msg("Using filter")
	return f, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
