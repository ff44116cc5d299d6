package netatmo

import (
	"context"
	"strconv"
)

const (
	setRoomThermpointURL = "https://api.netatmo.com/api/setroomthermpoint"
	opSetRoomThermpoint  = "set_room_thermpoint"
)

// ThermMode is the setpoint mode of a room.
type ThermMode int

const (
	// ThermModeManual holds Temp until EndTime.
	ThermModeManual ThermMode = iota
	// ThermModeMax heats at full power until EndTime.
	ThermModeMax
	// ThermModeHome returns the room to the home schedule.
	ThermModeHome
)

// String returns the form the API expects
func (m ThermMode) String() string {
	switch m {
	case ThermModeManual:
		return "manual"
	case ThermModeMax:
		return "max"
	case ThermModeHome:
		return "home"
	default:
		return "home"
	}
}

// ParseThermMode parses the API form of a mode.
func ParseThermMode(s string) (ThermMode, bool) {
	for _, m := range []ThermMode{ThermModeManual, ThermModeMax, ThermModeHome} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// SetRoomThermpointParams describes a setpoint change.
type SetRoomThermpointParams struct {
	homeID  string
	roomID  string
	mode    ThermMode
	temp    *float64
	endTime *int64
}

// NewSetRoomThermpointParams sets the mode of a room.
func NewSetRoomThermpointParams(homeID, roomID string, mode ThermMode) SetRoomThermpointParams {
	return SetRoomThermpointParams{homeID: homeID, roomID: roomID, mode: mode}
}

// Temp sets the target temperature in °C, used with ThermModeManual.
func (p SetRoomThermpointParams) Temp(temp float64) SetRoomThermpointParams {
	p.temp = &temp
	return p
}

// EndTime sets when the setpoint expires (UTC seconds).
func (p SetRoomThermpointParams) EndTime(endTime int64) SetRoomThermpointParams {
	p.endTime = &endTime
	return p
}

// Fields renders the parameters for the request body.
func (p SetRoomThermpointParams) Fields() map[string]string {
	m := map[string]string{
		"home_id": p.homeID,
		"room_id": p.roomID,
		"mode":    p.mode.String(),
	}
	if p.temp != nil {
		m["temp"] = strconv.FormatFloat(*p.temp, 'f', -1, 64)
	}
	if p.endTime != nil {
		m["endtime"] = strconv.FormatInt(*p.endTime, 10)
	}
	return m
}

// SetRoomThermpointResponse is the response of setroomthermpoint.
type SetRoomThermpointResponse struct {
	Status     string `json:"status"`
	TimeServer int64  `json:"time_server"`
}

// SetRoomThermpoint changes the setpoint of a room.
func (c *AuthenticatedClient) SetRoomThermpoint(ctx context.Context, params SetRoomThermpointParams) (*SetRoomThermpointResponse, error) {
	switch {
	case params.homeID == "":
		return nil, attribute(opSetRoomThermpoint, ErrEmptyHomeID)
	case params.roomID == "":
		return nil, attribute(opSetRoomThermpoint, ErrEmptyRoomID)
	}

	var resp SetRoomThermpointResponse
	if err := c.call(ctx, opSetRoomThermpoint, setRoomThermpointURL, params.Fields(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
