package netatmo

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

const (
	measureURL = "https://api.netatmo.com/api/getmeasure"
	opMeasure  = "get_measure"
)

// Scale is the aggregation interval of a measurement.
type Scale int

const (
	ScaleMax Scale = iota
	Scale30Min
	Scale1Hour
	Scale3Hours
	Scale1Day
	Scale1Week
	Scale1Month
)

// String returns the form the API expects
func (s Scale) String() string {
	switch s {
	case ScaleMax:
		return "max"
	case Scale30Min:
		return "30min"
	case Scale1Hour:
		return "1hour"
	case Scale3Hours:
		return "3hours"
	case Scale1Day:
		return "1day"
	case Scale1Week:
		return "1week"
	case Scale1Month:
		return "1month"
	default:
		return "max"
	}
}

// ParseScale parses the API form of a scale.
func ParseScale(s string) (Scale, bool) {
	for _, scale := range []Scale{ScaleMax, Scale30Min, Scale1Hour, Scale3Hours, Scale1Day, Scale1Week, Scale1Month} {
		if scale.String() == s {
			return scale, true
		}
	}
	return 0, false
}

// MeasureType is a quantity that can be requested from getmeasure.
type MeasureType int

const (
	MeasureTemperature MeasureType = iota
	MeasureHumidity
	MeasureCO2
	MeasurePressure
	MeasureNoise
)

// String returns the form the API expects
func (t MeasureType) String() string {
	switch t {
	case MeasureTemperature:
		return "Temperature"
	case MeasureHumidity:
		return "Humidity"
	case MeasureCO2:
		return "CO2"
	case MeasurePressure:
		return "Pressure"
	case MeasureNoise:
		return "Noise"
	default:
		return "Temperature"
	}
}

// ParseMeasureType parses a measurement type, case-insensitively.
func ParseMeasureType(s string) (MeasureType, bool) {
	for _, t := range []MeasureType{MeasureTemperature, MeasureHumidity, MeasureCO2, MeasurePressure, MeasureNoise} {
		if strings.EqualFold(t.String(), s) {
			return t, true
		}
	}
	return 0, false
}

// MeasureParams selects a measurement history.
type MeasureParams struct {
	deviceID  string
	moduleID  string
	scale     Scale
	types     []MeasureType
	dateBegin *int64
	dateEnd   *int64
	limit     *int
	realTime  *bool
}

// NewMeasureParams requests measurements of the station itself.
func NewMeasureParams(deviceID string, scale Scale, types []MeasureType) MeasureParams {
	return NewModuleMeasureParams(deviceID, deviceID, scale, types)
}

// NewModuleMeasureParams requests measurements of a module paired with the station.
func NewModuleMeasureParams(deviceID, moduleID string, scale Scale, types []MeasureType) MeasureParams {
	return MeasureParams{
		deviceID: deviceID,
		moduleID: moduleID,
		scale:    scale,
		types:    append([]MeasureType(nil), types...),
	}
}

// DateBegin sets the first timestamp (UTC seconds) to return.
func (p MeasureParams) DateBegin(dateBegin int64) MeasureParams {
	p.dateBegin = &dateBegin
	return p
}

// DateEnd sets the last timestamp (UTC seconds) to return.
func (p MeasureParams) DateEnd(dateEnd int64) MeasureParams {
	p.dateEnd = &dateEnd
	return p
}

// Limit caps the number of returned measurements (max 1024).
func (p MeasureParams) Limit(limit int) MeasureParams {
	p.limit = &limit
	return p
}

// RealTime disables the timestamp offset applied to scaled measurements.
func (p MeasureParams) RealTime(realTime bool) MeasureParams {
	p.realTime = &realTime
	return p
}

// Fields renders the parameters for the request body. optimize is always
// false so the response is keyed by timestamp.
func (p MeasureParams) Fields() map[string]string {
	types := make([]string, len(p.types))
	for i, t := range p.types {
		types[i] = t.String()
	}

	m := map[string]string{
		"device_id": p.deviceID,
		"module_id": p.moduleID,
		"scale":     p.scale.String(),
		"type":      strings.Join(types, ","),
		"optimize":  "false",
	}
	if p.dateBegin != nil {
		m["date_begin"] = strconv.FormatInt(*p.dateBegin, 10)
	}
	if p.dateEnd != nil {
		m["date_end"] = strconv.FormatInt(*p.dateEnd, 10)
	}
	if p.limit != nil {
		m["limit"] = strconv.Itoa(*p.limit)
	}
	if p.realTime != nil {
		m["real_time"] = strconv.FormatBool(*p.realTime)
	}
	return m
}

// Measure is the response of getmeasure. Values maps a timestamp to one
// value per requested type, in request order; a nil value is a gap.
type Measure struct {
	Status   string               `json:"status"`
	TimeExec float64              `json:"time_exec"`
	Values   map[int64][]*float64 `json:"body"`
}

// Timestamps returns the timestamps of Values in ascending order.
func (m *Measure) Timestamps() []int64 {
	ts := make([]int64, 0, len(m.Values))
	for t := range m.Values {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// GetMeasure returns the measurement history of a station or module.
func (c *AuthenticatedClient) GetMeasure(ctx context.Context, params MeasureParams) (*Measure, error) {
	if params.deviceID == "" {
		return nil, attribute(opMeasure, ErrEmptyDeviceID)
	}

	var measure Measure
	if err := c.call(ctx, opMeasure, measureURL, params.Fields(), &measure); err != nil {
		return nil, err
	}
	return &measure, nil
}
