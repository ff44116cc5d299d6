package filter

import (
	"time"

	"github.com/s0up4200/atmo/netatmo"
)

// ModuleSubject is a weather station module and its last readings.
type ModuleSubject struct {
	Station   string
	Name      string
	ID        string
	Type      string
	Reachable bool
	Battery   *int64
	Data      netatmo.DashboardData
}

// ModulesFromStationData flattens stations and their paired modules.
func ModulesFromStationData(data *netatmo.StationData) []ModuleSubject {
	if data == nil {
		return nil
	}

	var subjects []ModuleSubject
	for _, device := range data.Body.Devices {
		subjects = append(subjects, ModuleSubject{
			Station:   device.StationName,
			Name:      device.ModuleName,
			ID:        device.ID,
			Type:      device.Type,
			Reachable: device.Reachable,
			Data:      device.DashboardData,
		})
		for _, module := range device.Modules {
			battery := module.BatteryPercent
			subjects = append(subjects, ModuleSubject{
				Station:   device.StationName,
				Name:      module.ModuleName,
				ID:        module.ID,
				Type:      module.Type,
				Reachable: module.Reachable,
				Battery:   &battery,
				Data:      module.DashboardData,
			})
		}
	}
	return subjects
}

// HomecoachSubject adapts a Healthy Home Coach to a ModuleSubject.
func HomecoachSubject(coach netatmo.Homecoach) ModuleSubject {
	name := coach.Name
	if name == "" {
		name = coach.ModuleName
	}
	return ModuleSubject{
		Station:   coach.StationName,
		Name:      name,
		ID:        coach.ID,
		Type:      coach.Type,
		Reachable: coach.Reachable,
		Data:      coach.DashboardData,
	}
}

// Label returns "station/module"
func (m ModuleSubject) Label() string {
	if m.Station == "" || m.Station == m.Name {
		return m.Name
	}
	return m.Station + "/" + m.Name
}

// Env exposes the module. Readings the module does not report are absent.
func (m ModuleSubject) Env() map[string]any {
	env := map[string]any{
		"Station":   m.Station,
		"Name":      m.Name,
		"ID":        m.ID,
		"Type":      m.Type,
		"Reachable": m.Reachable,
	}
	if m.Battery != nil {
		env["Battery"] = float64(*m.Battery)
	}

	d := m.Data
	setFloat(env, "Temperature", d.Temperature)
	setFloat(env, "MinTemp", d.MinTemp)
	setFloat(env, "MaxTemp", d.MaxTemp)
	setFloat(env, "Pressure", d.Pressure)
	setFloat(env, "AbsolutePressure", d.AbsolutePressure)
	setFloat(env, "Rain", d.Rain)
	setFloat(env, "SumRain1", d.SumRain1)
	setFloat(env, "SumRain24", d.SumRain24)
	setInt(env, "Humidity", d.Humidity)
	setInt(env, "CO2", d.CO2)
	setInt(env, "Noise", d.Noise)
	setInt(env, "WindStrength", d.WindStrength)
	setInt(env, "WindAngle", d.WindAngle)
	setInt(env, "GustStrength", d.GustStrength)
	setInt(env, "GustAngle", d.GustAngle)
	setInt(env, "HealthIdx", d.HealthIdx)
	if d.TempTrend != nil {
		env["TempTrend"] = *d.TempTrend
	}
	if d.PressureTrend != nil {
		env["PressureTrend"] = *d.PressureTrend
	}
	if d.TimeUTC != nil {
		env["Updated"] = time.Unix(*d.TimeUTC, 0)
	}
	return env
}

// RoomSubject is a room of a home with its live heating state.
type RoomSubject struct {
	HomeID string
	Name   string
	State  netatmo.RoomState
}

// RoomsFromHomeStatus lists the rooms of a home. Room names are taken from
// homes when given; unknown rooms are labelled by id.
func RoomsFromHomeStatus(status *netatmo.HomeStatus, homes *netatmo.HomesData) []RoomSubject {
	if status == nil {
		return nil
	}

	names := make(map[string]string)
	if homes != nil {
		for _, home := range homes.Body.Homes {
			if home.ID != status.Body.Home.ID {
				continue
			}
			for _, room := range home.Rooms {
				names[room.ID] = room.Name
			}
		}
	}

	subjects := make([]RoomSubject, 0, len(status.Body.Home.Rooms))
	for _, room := range status.Body.Home.Rooms {
		name := names[room.ID]
		if name == "" {
			name = room.ID
		}
		subjects = append(subjects, RoomSubject{
			HomeID: status.Body.Home.ID,
			Name:   name,
			State:  room,
		})
	}
	return subjects
}

// Label returns the room name
func (r RoomSubject) Label() string {
	return r.Name
}

// Env exposes the room
func (r RoomSubject) Env() map[string]any {
	s := r.State
	env := map[string]any{
		"ID":           s.ID,
		"Name":         r.Name,
		"Reachable":    s.Reachable,
		"Temperature":  s.ThermMeasuredTemperature,
		"Setpoint":     s.ThermSetpointTemperature,
		"Mode":         s.ThermSetpointMode,
		"HeatingPower": float64(s.HeatingPowerRequest),
		"OpenWindow":   s.OpenWindow,
		"Anticipating": s.Anticipating,
	}
	if s.ThermSetpointEndTime > 0 {
		env["SetpointEnd"] = time.Unix(s.ThermSetpointEndTime, 0)
	}
	return env
}

func setFloat(env map[string]any, key string, v *float64) {
	if v != nil {
		env[key] = *v
	}
}

func setInt(env map[string]any, key string, v *int64) {
	if v != nil {
		env[key] = float64(*v)
	}
}
