package netatmo

import (
	"context"
	"strconv"
)

const (
	stationDataURL = "https://api.netatmo.com/api/getstationsdata"
	opStationData  = "get_station_data"
)

// StationDataParams selects the weather stations to return.
type StationDataParams struct {
	deviceID     *string
	getFavorites *bool
}

// NewStationDataParams returns parameters matching every station of the user.
func NewStationDataParams() StationDataParams {
	return StationDataParams{}
}

// DeviceID restricts the response to a single station.
func (p StationDataParams) DeviceID(deviceID string) StationDataParams {
	p.deviceID = &deviceID
	return p
}

// GetFavorites includes the user's favorite stations.
func (p StationDataParams) GetFavorites(getFavorites bool) StationDataParams {
	p.getFavorites = &getFavorites
	return p
}

// Fields renders the parameters for the request body.
func (p StationDataParams) Fields() map[string]string {
	m := make(map[string]string, 2)
	if p.deviceID != nil {
		m["device_id"] = *p.deviceID
	}
	if p.getFavorites != nil {
		m["get_favorites"] = strconv.FormatBool(*p.getFavorites)
	}
	return m
}

// StationData is the response of getstationsdata.
type StationData struct {
	Body       StationDataBody `json:"body"`
	Status     string          `json:"status"`
	TimeExec   float64         `json:"time_exec"`
	TimeServer int64           `json:"time_server"`
}

// StationDataBody holds the stations and the owning user.
type StationDataBody struct {
	Devices []StationDevice `json:"devices"`
	User    StationUser     `json:"user"`
}

// StationDevice is a main weather station module.
type StationDevice struct {
	ID              string          `json:"_id"`
	CipherID        string          `json:"cipher_id,omitempty"`
	CO2Calibrating  bool            `json:"co2_calibrating"`
	DateSetup       int64           `json:"date_setup"`
	Firmware        int64           `json:"firmware"`
	LastSetup       int64           `json:"last_setup"`
	LastStatusStore int64           `json:"last_status_store"`
	LastUpgrade     int64           `json:"last_upgrade"`
	ModuleName      string          `json:"module_name"`
	Reachable       bool            `json:"reachable"`
	StationName     string          `json:"station_name"`
	Type            string          `json:"type"`
	WifiStatus      float64         `json:"wifi_status"`
	DashboardData   DashboardData   `json:"dashboard_data"`
	DataType        []string        `json:"data_type"`
	Modules         []StationModule `json:"modules"`
	Place           Place           `json:"place"`
}

// StationModule is an additional module paired with a station.
type StationModule struct {
	ID             string        `json:"_id"`
	BatteryPercent int64         `json:"battery_percent"`
	BatteryVP      int64         `json:"battery_vp"`
	DashboardData  DashboardData `json:"dashboard_data"`
	DataType       []string      `json:"data_type"`
	Firmware       int64         `json:"firmware"`
	LastMessage    int64         `json:"last_message"`
	LastSeen       int64         `json:"last_seen"`
	LastSetup      int64         `json:"last_setup"`
	ModuleName     string        `json:"module_name"`
	Reachable      bool          `json:"reachable"`
	RFStatus       int64         `json:"rf_status"`
	Type           string        `json:"type"`
}

// DashboardData holds the last readings of a module. Which fields are
// present depends on the module type.
type DashboardData struct {
	AbsolutePressure *float64 `json:"AbsolutePressure,omitempty"`
	CO2              *int64   `json:"CO2,omitempty"`
	Humidity         *int64   `json:"Humidity,omitempty"`
	Noise            *int64   `json:"Noise,omitempty"`
	Pressure         *float64 `json:"Pressure,omitempty"`
	Temperature      *float64 `json:"Temperature,omitempty"`
	DateMaxTemp      *int64   `json:"date_max_temp,omitempty"`
	DateMinTemp      *int64   `json:"date_min_temp,omitempty"`
	MaxTemp          *float64 `json:"max_temp,omitempty"`
	MinTemp          *float64 `json:"min_temp,omitempty"`
	PressureTrend    *string  `json:"pressure_trend,omitempty"`
	TempTrend        *string  `json:"temp_trend,omitempty"`
	TimeUTC          *int64   `json:"time_utc,omitempty"`
	Rain             *float64 `json:"Rain,omitempty"`
	SumRain1         *float64 `json:"sum_rain_1,omitempty"`
	SumRain24        *float64 `json:"sum_rain_24,omitempty"`
	WindStrength     *int64   `json:"WindStrength,omitempty"`
	WindAngle        *int64   `json:"WindAngle,omitempty"`
	GustStrength     *int64   `json:"GustStrength,omitempty"`
	GustAngle        *int64   `json:"GustAngle,omitempty"`
	HealthIdx        *int64   `json:"health_idx,omitempty"`
}

// Place is where a station is installed.
type Place struct {
	Altitude int64     `json:"altitude"`
	City     string    `json:"city"`
	Country  string    `json:"country"`
	Location []float64 `json:"location"`
	Timezone string    `json:"timezone"`
}

// StationUser is the owner of the stations.
type StationUser struct {
	Administrative Administrative `json:"administrative"`
	Mail           string         `json:"mail"`
}

// Administrative holds the user's unit and locale preferences.
type Administrative struct {
	FeelLikeAlgo int64  `json:"feel_like_algo"`
	Lang         string `json:"lang"`
	PressureUnit int64  `json:"pressureunit"`
	RegLocale    string `json:"reg_locale"`
	Unit         int64  `json:"unit"`
	WindUnit     int64  `json:"windunit"`
}

// GetStationData returns the weather stations and their last readings.
func (c *AuthenticatedClient) GetStationData(ctx context.Context, params StationDataParams) (*StationData, error) {
	var data StationData
	if err := c.call(ctx, opStationData, stationDataURL, params.Fields(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
