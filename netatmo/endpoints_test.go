package netatmo

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationDataFixture = `{
  "body": {
    "devices": [
      {
        "_id": "12:34:56:78:90:AB",
        "cipher_id": "enc:16:icj48gjlkt399g+dkkdklj490999 lkfkjfgjkjklk3440fjjj300cxq2399dkdd",
        "co2_calibrating": false,
        "dashboard_data": {
          "AbsolutePressure": 1013.3,
          "CO2": 455,
          "Humidity": 43,
          "Noise": 40,
          "Pressure": 1019.3,
          "Temperature": 20.3,
          "date_max_temp": 1556437566,
          "date_min_temp": 1556448808,
          "max_temp": 22.3,
          "min_temp": 20.2,
          "pressure_trend": "up",
          "temp_trend": "stable",
          "time_utc": 1556451224
        },
        "data_type": ["Temperature", "CO2", "Humidity", "Noise", "Pressure"],
        "date_setup": 1556295333,
        "firmware": 140,
        "last_setup": 1556295333,
        "last_status_store": 1556451233,
        "last_upgrade": 1556295520,
        "module_name": "Inside",
        "modules": [
          {
            "_id": "12:34:56:78:90:CD",
            "battery_percent": 100,
            "battery_vp": 6190,
            "dashboard_data": {
              "Humidity": 53,
              "Temperature": 13.8,
              "date_max_temp": 1556450543,
              "date_min_temp": 1556425125,
              "max_temp": 13.8,
              "min_temp": 10,
              "temp_trend": "up",
              "time_utc": 1556451208
            },
            "data_type": ["Temperature", "Humidity"],
            "firmware": 46,
            "last_message": 1556451228,
            "last_seen": 1556451208,
            "last_setup": 1556295333,
            "module_name": "Outside",
            "reachable": true,
            "rf_status": 86,
            "type": "NAModule1"
          }
        ],
        "place": {
          "altitude": 50,
          "city": "Alert",
          "country": "CAN",
          "location": [82.5057837, -62.5575262],
          "timezone": "EDT"
        },
        "reachable": true,
        "station_name": "Home",
        "type": "NAMain",
        "wifi_status": 50
      }
    ],
    "user": {
      "administrative": {
        "feel_like_algo": 0,
        "lang": "en-US",
        "pressureunit": 0,
        "reg_locale": "en-US",
        "unit": 0,
        "windunit": 0
      },
      "mail": "user@example.com"
    }
  },
  "status": "ok",
  "time_exec": 0.13046002388,
  "time_server": 1556451492
}`

const homesDataFixture = `{
  "body": {
    "homes": [
      {
        "id": "5c8a6b0f",
        "name": "Home",
        "timezone": "Europe/Berlin",
        "rooms": [
          {"id": "2255", "name": "Living room", "type": "livingroom", "module_ids": ["04:00:00:00:00:01"]}
        ],
        "modules": [
          {"id": "70:ee:50:00:00:10", "type": "NAPlug", "name": "Relay", "setup_date": 1552574000, "modules_bridged": ["04:00:00:00:00:01"]},
          {"id": "04:00:00:00:00:01", "type": "NRV", "name": "Valve", "setup_date": 1552574100, "room_id": "2255", "bridge": "70:ee:50:00:00:10"}
        ],
        "therm_schedules": [
          {
            "timetable": [{"zone_id": 0, "m_offset": 0}, {"zone_id": 1, "m_offset": 420}],
            "zones": [
              {"name": "Comfort", "id": 0, "type": 0, "rooms_temp": [{"room_id": "2255", "temp": 21}]},
              {"name": "Night", "id": 1, "type": 1, "rooms_temp": [{"room_id": "2255", "temp": 17}]}
            ],
            "name": "Default",
            "default": true,
            "away_temp": 12,
            "hg_temp": 7,
            "id": "5c8a6b0f0001",
            "selected": true,
            "type": "therm"
          }
        ],
        "therm_setpoint_default_duration": 180,
        "therm_mode": "schedule"
      }
    ],
    "user": {
      "email": "user@example.com",
      "language": "en-US",
      "locale": "en-US",
      "feel_like_algorithm": 0,
      "unit_pressure": 0,
      "unit_system": 0,
      "unit_wind": 0,
      "id": "5c8a6a0e"
    }
  },
  "status": "ok",
  "time_exec": 0.021,
  "time_server": 1556451492
}`

const homeStatusFixture = `{
  "status": "ok",
  "time_server": 1556451492,
  "body": {
    "home": {
      "id": "5c8a6b0f",
      "modules": [
        {"id": "70:ee:50:00:00:10", "type": "NAPlug", "firmware_revision": 211, "rf_strength": 107, "wifi_strength": 38},
        {"id": "04:00:00:00:00:01", "type": "NRV", "firmware_revision": 79, "rf_strength": 70, "reachable": true, "battery_level": 2850, "battery_state": "full", "bridge": "70:ee:50:00:00:10"}
      ],
      "rooms": [
        {
          "id": "2255",
          "reachable": true,
          "therm_measured_temperature": 20.5,
          "heating_power_request": 0,
          "therm_setpoint_temperature": 21,
          "therm_setpoint_mode": "schedule",
          "therm_setpoint_start_time": 1556445600,
          "therm_setpoint_end_time": 0,
          "anticipating": false,
          "open_window": false
        }
      ]
    }
  }
}`

const homecoachsDataFixture = `{
  "body": {
    "devices": [
      {
        "_id": "70:ee:50:00:00:03",
        "date_setup": 1513956000,
        "firmware": 45,
        "last_setup": 1513956000,
        "last_status_store": 1556451233,
        "last_upgrade": 1513956100,
        "module_name": "Bedroom",
        "name": "Bedroom",
        "reachable": true,
        "station_name": "Bedroom",
        "type": "NHC",
        "wifi_status": 58,
        "dashboard_data": {
          "AbsolutePressure": 1008.4,
          "CO2": 812,
          "Humidity": 51,
          "Noise": 36,
          "Pressure": 1021.1,
          "Temperature": 21.2,
          "health_idx": 1,
          "time_utc": 1556451224
        },
        "data_type": ["Temperature", "CO2", "Humidity", "Noise", "Pressure", "health_idx"],
        "place": {"altitude": 34, "city": "Berlin", "country": "DE", "location": [13.4, 52.5], "timezone": "Europe/Berlin"}
      }
    ],
    "user": {
      "administrative": {"feel_like_algo": 0, "lang": "de-DE", "pressureunit": 0, "reg_locale": "de-DE", "unit": 0, "windunit": 0},
      "mail": "user@example.com"
    }
  },
  "status": "ok",
  "time_exec": 0.04,
  "time_server": 1556451492
}`

// endpointServer serves body on path and checks the token and every expected form field.
func endpointServer(t *testing.T, path string, wantForm map[string]string, body string) Option {
	t.Helper()

	return newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "token-123", r.PostForm.Get("access_token"))
		for k, v := range wantForm {
			assert.Equal(t, v, r.PostForm.Get(k), "form field %s", k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestGetStationData(t *testing.T) {
	opt := endpointServer(t, "/api/getstationsdata", map[string]string{"device_id": "12:34:56:78:90:AB"}, stationDataFixture)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	data, err := client.GetStationData(context.Background(), NewStationDataParams().DeviceID("12:34:56:78:90:AB"))
	require.NoError(t, err)

	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, int64(1556451492), data.TimeServer)
	require.Len(t, data.Body.Devices, 1)

	device := data.Body.Devices[0]
	assert.Equal(t, "12:34:56:78:90:AB", device.ID)
	assert.Equal(t, "NAMain", device.Type)
	assert.Equal(t, "Alert", device.Place.City)
	require.NotNil(t, device.DashboardData.CO2)
	assert.Equal(t, int64(455), *device.DashboardData.CO2)
	require.NotNil(t, device.DashboardData.Temperature)
	assert.InDelta(t, 20.3, *device.DashboardData.Temperature, 0.001)
	assert.Nil(t, device.DashboardData.Rain)

	require.Len(t, device.Modules, 1)
	outside := device.Modules[0]
	assert.Equal(t, "Outside", outside.ModuleName)
	assert.Nil(t, outside.DashboardData.CO2)
	require.NotNil(t, outside.DashboardData.MinTemp)
	assert.InDelta(t, 10.0, *outside.DashboardData.MinTemp, 0.001)

	assert.Equal(t, "en-US", data.Body.User.Administrative.Lang)
}

func TestGetMeasure(t *testing.T) {
	body := `{"body":{"1556451224":[20.3,455],"1556449424":[20.1,null]},"status":"ok","time_exec":0.03}`
	opt := endpointServer(t, "/api/getmeasure", map[string]string{
		"device_id": "12:34:56:78:90:AB",
		"module_id": "12:34:56:78:90:AB",
		"scale":     "30min",
		"type":      "Temperature,CO2",
		"optimize":  "false",
	}, body)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	measure, err := client.GetMeasure(context.Background(),
		NewMeasureParams("12:34:56:78:90:AB", Scale30Min, []MeasureType{MeasureTemperature, MeasureCO2}))
	require.NoError(t, err)

	assert.Equal(t, []int64{1556449424, 1556451224}, measure.Timestamps())
	latest := measure.Values[1556451224]
	require.Len(t, latest, 2)
	assert.InDelta(t, 20.3, *latest[0], 0.001)
	assert.Nil(t, measure.Values[1556449424][1])
}

func TestGetHomesData(t *testing.T) {
	opt := endpointServer(t, "/api/homesdata", map[string]string{"gateway_types": "NAPLUG"}, homesDataFixture)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	data, err := client.GetHomesData(context.Background(), NewHomesDataParams().GatewayTypes(GatewayThermostatValve))
	require.NoError(t, err)

	require.Len(t, data.Body.Homes, 1)
	home := data.Body.Homes[0]
	assert.Equal(t, "Europe/Berlin", home.Timezone)
	require.Len(t, home.Rooms, 1)
	assert.Equal(t, []string{"04:00:00:00:00:01"}, home.Rooms[0].ModuleIDs)
	require.Len(t, home.Modules, 2)
	assert.Nil(t, home.Modules[0].RoomID)
	require.NotNil(t, home.Modules[1].RoomID)
	assert.Equal(t, "2255", *home.Modules[1].RoomID)
	require.Len(t, home.ThermSchedules, 1)
	assert.Equal(t, int64(420), home.ThermSchedules[0].Timetable[1].MOffset)
	assert.Equal(t, "5c8a6a0e", data.Body.User.ID)
}

func TestGetHomeStatus(t *testing.T) {
	opt := endpointServer(t, "/api/homestatus", map[string]string{"home_id": "5c8a6b0f"}, homeStatusFixture)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	status, err := client.GetHomeStatus(context.Background(), NewHomeStatusParams().HomeID("5c8a6b0f"))
	require.NoError(t, err)

	home := status.Body.Home
	assert.Equal(t, "5c8a6b0f", home.ID)
	require.Len(t, home.Modules, 2)
	assert.Nil(t, home.Modules[0].BatteryLevel)
	require.NotNil(t, home.Modules[1].BatteryState)
	assert.Equal(t, "full", *home.Modules[1].BatteryState)
	require.Len(t, home.Rooms, 1)
	assert.InDelta(t, 20.5, home.Rooms[0].ThermMeasuredTemperature, 0.001)
	assert.Equal(t, "schedule", home.Rooms[0].ThermSetpointMode)
}

func TestSetRoomThermpoint(t *testing.T) {
	opt := endpointServer(t, "/api/setroomthermpoint", map[string]string{
		"home_id": "5c8a6b0f",
		"room_id": "2255",
		"mode":    "manual",
		"temp":    "22.5",
		"endtime": "1556460000",
	}, `{"status":"ok","time_server":1556451492}`)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	resp, err := client.SetRoomThermpoint(context.Background(),
		NewSetRoomThermpointParams("5c8a6b0f", "2255", ThermModeManual).Temp(22.5).EndTime(1556460000))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(1556451492), resp.TimeServer)
}

func TestGetHomecoachsData(t *testing.T) {
	opt := endpointServer(t, "/api/gethomecoachsdata", nil, homecoachsDataFixture)
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	data, err := client.GetHomecoachsData(context.Background(), NewHomecoachsDataParams())
	require.NoError(t, err)

	require.Len(t, data.Body.Devices, 1)
	coach := data.Body.Devices[0]
	assert.Equal(t, "NHC", coach.Type)
	require.NotNil(t, coach.DashboardData.HealthIdx)
	assert.Equal(t, int64(1), *coach.DashboardData.HealthIdx)
}

func TestEndpoints_RequiredIdentifiers(t *testing.T) {
	ft := &fakeTransport{status: http.StatusOK, body: `{}`}
	client := NewFromToken(Token{AccessToken: "a"}, WithTransport(ft))
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantOp  string
		wantErr error
	}{
		{
			name: "measure without device",
			call: func() error {
				_, err := client.GetMeasure(ctx, NewMeasureParams("", ScaleMax, []MeasureType{MeasureTemperature}))
				return err
			},
			wantOp:  opMeasure,
			wantErr: ErrEmptyDeviceID,
		},
		{
			name: "home status without home",
			call: func() error {
				_, err := client.GetHomeStatus(ctx, NewHomeStatusParams())
				return err
			},
			wantOp:  opHomeStatus,
			wantErr: ErrEmptyHomeID,
		},
		{
			name: "setpoint without room",
			call: func() error {
				_, err := client.SetRoomThermpoint(ctx, NewSetRoomThermpointParams("home", "", ThermModeHome))
				return err
			},
			wantOp:  opSetRoomThermpoint,
			wantErr: ErrEmptyRoomID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, KindAPICallFailed, e.Kind)
			assert.Equal(t, tt.wantOp, e.Name)
		})
	}
	assert.Zero(t, ft.calls)
}

func TestEndpoints_VendorError(t *testing.T) {
	opt := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":13,"message":"Operation forbidden"}}`))
	}))
	client := NewFromToken(Token{AccessToken: "token-123"}, opt)

	_, err := client.SetRoomThermpoint(context.Background(), NewSetRoomThermpointParams("home", "room", ThermModeMax))
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, opSetRoomThermpoint, apiErr.Name)
	assert.Equal(t, 13, apiErr.Code)
	assert.Equal(t, "Operation forbidden", apiErr.Message)
}
