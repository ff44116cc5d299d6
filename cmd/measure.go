package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/netatmo"
)

var (
	measureDevice   string
	measureModule   string
	measureScale    string
	measureTypes    string
	measureBegin    string
	measureEnd      string
	measureLimit    int
	measureRealTime bool
)

// measureCmd represents the measure command
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Show the measurement history of a station or module",
	Long: `Show the measurement history of a station or one of its modules.

--begin and --end accept an RFC 3339 time, a Unix timestamp or a duration
in the past such as 24h:

  atmo measure --type Temperature,Humidity --scale 1hour --begin 24h`,
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().StringVar(&measureDevice, "device", "", "station MAC address (default netatmo.device_id)")
	measureCmd.Flags().StringVar(&measureModule, "module", "", "module MAC address (default the station itself)")
	measureCmd.Flags().StringVar(&measureScale, "scale", "max", "max, 30min, 1hour, 3hours, 1day, 1week or 1month")
	measureCmd.Flags().StringVar(&measureTypes, "type", "Temperature", "comma separated measurement types")
	measureCmd.Flags().StringVar(&measureBegin, "begin", "", "start of the range")
	measureCmd.Flags().StringVar(&measureEnd, "end", "", "end of the range")
	measureCmd.Flags().IntVar(&measureLimit, "limit", 0, "maximum number of measurements (at most 1024)")
	measureCmd.Flags().BoolVar(&measureRealTime, "real-time", false, "do not shift timestamps to the middle of the scale interval")

	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	params, types, err := measureParams(time.Now())
	if err != nil {
		return err
	}

	client, store, err := session(ctx)
	if err != nil {
		return err
	}

	measure, err := client.GetMeasure(ctx, params)
	if err != nil {
		return handleAPIError(ctx, store, err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), measure)
	}

	out := cmd.OutOrStdout()
	timestamps := measure.Timestamps()
	if len(timestamps) == 0 {
		fmt.Fprintln(out, "No measurements in range")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"TIME"}
	for _, t := range types {
		header = append(header, strings.ToUpper(t.String()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, ts := range timestamps {
		row := []string{formatUnix(ts)}
		for _, v := range measure.Values[ts] {
			row = append(row, formatFloat(v, ""))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// measureParams builds the request from the command flags
func measureParams(now time.Time) (netatmo.MeasureParams, []netatmo.MeasureType, error) {
	var params netatmo.MeasureParams

	device := firstNonEmpty(measureDevice, cfg.Netatmo.DeviceID)
	if device == "" {
		return params, nil, fmt.Errorf("--device or netatmo.device_id is required")
	}

	scale, ok := netatmo.ParseScale(measureScale)
	if !ok {
		return params, nil, fmt.Errorf("unknown scale %q", measureScale)
	}

	var types []netatmo.MeasureType
	for _, name := range splitList(measureTypes) {
		t, ok := netatmo.ParseMeasureType(name)
		if !ok {
			return params, nil, fmt.Errorf("unknown measurement type %q", name)
		}
		types = append(types, t)
	}
	if len(types) == 0 {
		return params, nil, fmt.Errorf("at least one --type is required")
	}

	if measureModule != "" {
		params = netatmo.NewModuleMeasureParams(device, measureModule, scale, types)
	} else {
		params = netatmo.NewMeasureParams(device, scale, types)
	}

	if measureBegin != "" {
		ts, err := parseTime(measureBegin, now)
		if err != nil {
			return params, nil, fmt.Errorf("invalid --begin: %w", err)
		}
		params = params.DateBegin(ts)
	}
	if measureEnd != "" {
		ts, err := parseTime(measureEnd, now)
		if err != nil {
			return params, nil, fmt.Errorf("invalid --end: %w", err)
		}
		params = params.DateEnd(ts)
	}
	if measureLimit > 0 {
		params = params.Limit(measureLimit)
	}
	if measureRealTime {
		params = params.RealTime(true)
	}

	return params, types, nil
}
