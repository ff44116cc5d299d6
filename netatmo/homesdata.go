package netatmo

import (
	"context"
	"strings"
)

const (
	homesDataURL = "https://api.netatmo.com/api/homesdata"
	opHomesData  = "get_homes_data"
)

// GatewayType is a Netatmo gateway product, rendered as its vendor type code.
type GatewayType int

const (
	GatewayThermostatValve GatewayType = iota
	GatewayThermostat
	GatewayValve
	GatewayWelcome
	GatewayPresence
	GatewaySmokeDetector
	GatewayDoorbell
)

// String returns the vendor type code
func (g GatewayType) String() string {
	switch g {
	case GatewayThermostatValve:
		return "NAPLUG"
	case GatewayThermostat:
		return "NATherm1"
	case GatewayValve:
		return "NRV"
	case GatewayWelcome:
		return "NACamera"
	case GatewayPresence:
		return "NOC"
	case GatewaySmokeDetector:
		return "NSD"
	case GatewayDoorbell:
		return "NDB"
	default:
		return "NAPLUG"
	}
}

// ParseGatewayType parses a vendor type code, case-insensitively.
func ParseGatewayType(s string) (GatewayType, bool) {
	for _, g := range []GatewayType{GatewayThermostatValve, GatewayThermostat, GatewayValve, GatewayWelcome, GatewayPresence, GatewaySmokeDetector, GatewayDoorbell} {
		if strings.EqualFold(g.String(), s) {
			return g, true
		}
	}
	return 0, false
}

func joinGatewayTypes(types []GatewayType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

// HomesDataParams selects the homes to return.
type HomesDataParams struct {
	homeID       *string
	gatewayTypes []GatewayType
}

// NewHomesDataParams returns parameters matching every home of the user.
func NewHomesDataParams() HomesDataParams {
	return HomesDataParams{}
}

// HomeID restricts the response to a single home.
func (p HomesDataParams) HomeID(homeID string) HomesDataParams {
	p.homeID = &homeID
	return p
}

// GatewayTypes restricts the response to the given gateway types.
func (p HomesDataParams) GatewayTypes(types ...GatewayType) HomesDataParams {
	p.gatewayTypes = append([]GatewayType(nil), types...)
	return p
}

// Fields renders the parameters for the request body.
func (p HomesDataParams) Fields() map[string]string {
	m := make(map[string]string, 2)
	if p.homeID != nil {
		m["home_id"] = *p.homeID
	}
	if p.gatewayTypes != nil {
		m["gateway_types"] = joinGatewayTypes(p.gatewayTypes)
	}
	return m
}

// HomesData is the response of homesdata.
type HomesData struct {
	Body       HomesDataBody `json:"body"`
	Status     string        `json:"status"`
	TimeExec   float64       `json:"time_exec"`
	TimeServer int64         `json:"time_server"`
}

// HomesDataBody holds the homes and the owning user.
type HomesDataBody struct {
	Homes []Home    `json:"homes"`
	User  HomesUser `json:"user"`
}

// Home is the topology of a home: rooms, modules and heating schedules.
type Home struct {
	ID                           string          `json:"id"`
	Name                         string          `json:"name"`
	Timezone                     string          `json:"timezone"`
	Rooms                        []HomeRoom      `json:"rooms"`
	Modules                      []HomeModule    `json:"modules"`
	ThermSchedules               []ThermSchedule `json:"therm_schedules"`
	ThermSetpointDefaultDuration int64           `json:"therm_setpoint_default_duration"`
	ThermMode                    string          `json:"therm_mode"`
	Schedules                    []ThermSchedule `json:"schedules"`
}

// HomeRoom is a room of a home.
type HomeRoom struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	ModuleIDs []string `json:"module_ids"`
}

// HomeModule is a device installed in a home.
type HomeModule struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	SetupDate      int64    `json:"setup_date"`
	ModulesBridged []string `json:"modules_bridged,omitempty"`
	RoomID         *string  `json:"room_id,omitempty"`
	Bridge         *string  `json:"bridge,omitempty"`
}

// ThermSchedule is a weekly heating schedule.
type ThermSchedule struct {
	Timetable []Timetable `json:"timetable"`
	Zones     []Zone      `json:"zones"`
	Name      string      `json:"name"`
	Default   bool        `json:"default"`
	AwayTemp  float64     `json:"away_temp"`
	HgTemp    float64     `json:"hg_temp"`
	ID        string      `json:"id"`
	Selected  bool        `json:"selected"`
	Type      string      `json:"type"`
}

// Timetable switches to a zone at an offset in minutes from Monday 00:00.
type Timetable struct {
	ZoneID  int64 `json:"zone_id"`
	MOffset int64 `json:"m_offset"`
}

// Zone is a set of per-room temperatures used by a schedule.
type Zone struct {
	Name      string      `json:"name"`
	ID        int64       `json:"id"`
	Type      int64       `json:"type"`
	RoomsTemp []RoomsTemp `json:"rooms_temp"`
	Rooms     []RoomTemp  `json:"rooms,omitempty"`
}

// RoomsTemp is the temperature of a room within a zone.
type RoomsTemp struct {
	RoomID string  `json:"room_id"`
	Temp   float64 `json:"temp"`
}

// RoomTemp is the setpoint of a room within a zone.
type RoomTemp struct {
	ID                       string  `json:"id"`
	ThermSetpointTemperature float64 `json:"therm_setpoint_temperature"`
}

// HomesUser is the owner of the homes.
type HomesUser struct {
	Email             string `json:"email"`
	Language          string `json:"language"`
	Locale            string `json:"locale"`
	FeelLikeAlgorithm int64  `json:"feel_like_algorithm"`
	UnitPressure      int64  `json:"unit_pressure"`
	UnitSystem        int64  `json:"unit_system"`
	UnitWind          int64  `json:"unit_wind"`
	ID                string `json:"id"`
}

// GetHomesData returns the topology of the user's homes.
func (c *AuthenticatedClient) GetHomesData(ctx context.Context, params HomesDataParams) (*HomesData, error) {
	var data HomesData
	if err := c.call(ctx, opHomesData, homesDataURL, params.Fields(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
