package netatmo

import "context"

const (
	homeStatusURL = "https://api.netatmo.com/api/homestatus"
	opHomeStatus  = "get_home_status"
)

// HomeStatusParams selects the home whose status is returned.
type HomeStatusParams struct {
	homeID      *string
	deviceTypes []GatewayType
}

// NewHomeStatusParams returns empty parameters; the API requires HomeID.
func NewHomeStatusParams() HomeStatusParams {
	return HomeStatusParams{}
}

// HomeID selects the home.
func (p HomeStatusParams) HomeID(homeID string) HomeStatusParams {
	p.homeID = &homeID
	return p
}

// DeviceTypes restricts the response to the given gateway types.
func (p HomeStatusParams) DeviceTypes(types ...GatewayType) HomeStatusParams {
	p.deviceTypes = append([]GatewayType(nil), types...)
	return p
}

// Fields renders the parameters for the request body.
func (p HomeStatusParams) Fields() map[string]string {
	m := make(map[string]string, 2)
	if p.homeID != nil {
		m["home_id"] = *p.homeID
	}
	if p.deviceTypes != nil {
		m["device_types"] = joinGatewayTypes(p.deviceTypes)
	}
	return m
}

// HomeStatus is the response of homestatus.
type HomeStatus struct {
	Status     string         `json:"status"`
	TimeServer int64          `json:"time_server"`
	Body       HomeStatusBody `json:"body"`
}

// HomeStatusBody wraps the home.
type HomeStatusBody struct {
	Home HomeState `json:"home"`
}

// HomeState is the live state of a home's modules and rooms.
type HomeState struct {
	ID      string        `json:"id"`
	Modules []ModuleState `json:"modules"`
	Rooms   []RoomState   `json:"rooms"`
}

// ModuleState is the live state of a module. Fields depend on the module type.
type ModuleState struct {
	ID                         string  `json:"id"`
	Type                       string  `json:"type"`
	FirmwareRevision           int64   `json:"firmware_revision"`
	RFStrength                 *int64  `json:"rf_strength,omitempty"`
	WifiStrength               *int64  `json:"wifi_strength,omitempty"`
	Reachable                  *bool   `json:"reachable,omitempty"`
	BatteryLevel               *int64  `json:"battery_level,omitempty"`
	BoilerValveComfortBoost    *bool   `json:"boiler_valve_comfort_boost,omitempty"`
	BoilerStatus               *bool   `json:"boiler_status,omitempty"`
	Anticipating               *bool   `json:"anticipating,omitempty"`
	Bridge                     *string `json:"bridge,omitempty"`
	BatteryState               *string `json:"battery_state,omitempty"`
	StatusActive               *bool   `json:"status_active,omitempty"`
	StatusTampered             *bool   `json:"status_tampered,omitempty"`
	TestMode                   *bool   `json:"test_mode,omitempty"`
	HushMode                   *bool   `json:"hush_mode,omitempty"`
	SmokeDetected              *bool   `json:"smoke_detected,omitempty"`
	DetectionChamberStatus     *string `json:"detection_chamber_status,omitempty"`
	BatteryAlarmState          *string `json:"battery_alarm_state,omitempty"`
	BatteryPercent             *int64  `json:"battery_percent,omitempty"`
	WifiStatus                 *int64  `json:"wifi_status,omitempty"`
	LastSmokeDetectedStartTime *int64  `json:"last_smoke_detected_start_time,omitempty"`
	LastSmokeDetectedEndTime   *int64  `json:"last_smoke_detected_end_time,omitempty"`
	LastSeen                   *int64  `json:"last_seen,omitempty"`
	LastWifiConnection         *int64  `json:"last_wifi_connection,omitempty"`
}

// RoomState is the live heating state of a room.
type RoomState struct {
	ID                       string  `json:"id"`
	Reachable                bool    `json:"reachable"`
	ThermMeasuredTemperature float64 `json:"therm_measured_temperature"`
	HeatingPowerRequest      int64   `json:"heating_power_request"`
	ThermSetpointTemperature float64 `json:"therm_setpoint_temperature"`
	ThermSetpointMode        string  `json:"therm_setpoint_mode"`
	ThermSetpointStartTime   int64   `json:"therm_setpoint_start_time"`
	ThermSetpointEndTime     int64   `json:"therm_setpoint_end_time"`
	Anticipating             bool    `json:"anticipating"`
	OpenWindow               bool    `json:"open_window"`
}

// GetHomeStatus returns the live state of a home.
func (c *AuthenticatedClient) GetHomeStatus(ctx context.Context, params HomeStatusParams) (*HomeStatus, error) {
	if params.homeID == nil || *params.homeID == "" {
		return nil, attribute(opHomeStatus, ErrEmptyHomeID)
	}

	var status HomeStatus
	if err := c.call(ctx, opHomeStatus, homeStatusURL, params.Fields(), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
