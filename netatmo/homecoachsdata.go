package netatmo

import "context"

const (
	homecoachsDataURL = "https://api.netatmo.com/api/gethomecoachsdata"
	opHomecoachsData  = "get_homecoachs_data"
)

// HomecoachsDataParams selects the Healthy Home Coaches to return.
type HomecoachsDataParams struct {
	deviceID *string
}

// NewHomecoachsDataParams returns parameters matching every coach of the user.
func NewHomecoachsDataParams() HomecoachsDataParams {
	return HomecoachsDataParams{}
}

// DeviceID restricts the response to a single coach.
func (p HomecoachsDataParams) DeviceID(deviceID string) HomecoachsDataParams {
	p.deviceID = &deviceID
	return p
}

// Fields renders the parameters for the request body.
func (p HomecoachsDataParams) Fields() map[string]string {
	m := make(map[string]string, 1)
	if p.deviceID != nil {
		m["device_id"] = *p.deviceID
	}
	return m
}

// HomecoachsData is the response of gethomecoachsdata.
type HomecoachsData struct {
	Body       HomecoachsDataBody `json:"body"`
	Status     string             `json:"status"`
	TimeExec   float64            `json:"time_exec"`
	TimeServer int64              `json:"time_server"`
}

// HomecoachsDataBody holds the coaches and the owning user.
type HomecoachsDataBody struct {
	Devices []Homecoach `json:"devices"`
	User    StationUser `json:"user"`
}

// Homecoach is an indoor air quality monitor. DashboardData.HealthIdx holds
// the health index (0 healthy, 4 unhealthy).
type Homecoach struct {
	ID              string        `json:"_id"`
	CipherID        string        `json:"cipher_id,omitempty"`
	DateSetup       int64         `json:"date_setup"`
	Firmware        int64         `json:"firmware"`
	LastSetup       int64         `json:"last_setup"`
	LastStatusStore int64         `json:"last_status_store"`
	LastUpgrade     int64         `json:"last_upgrade"`
	ModuleName      string        `json:"module_name"`
	Name            string        `json:"name"`
	Reachable       bool          `json:"reachable"`
	StationName     string        `json:"station_name"`
	Type            string        `json:"type"`
	WifiStatus      int64         `json:"wifi_status"`
	DashboardData   DashboardData `json:"dashboard_data"`
	DataType        []string      `json:"data_type"`
	Place           Place         `json:"place"`
}

// GetHomecoachsData returns the Healthy Home Coaches and their last readings.
func (c *AuthenticatedClient) GetHomecoachsData(ctx context.Context, params HomecoachsDataParams) (*HomecoachsData, error) {
	var data HomecoachsData
	if err := c.call(ctx, opHomecoachsData, homecoachsDataURL, params.Fields(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
