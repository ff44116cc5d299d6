package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/atmo/netatmo"
)

func ptr[T any](v T) *T { return &v }

func testStationData() *netatmo.StationData {
	return &netatmo.StationData{
		Body: netatmo.StationDataBody{
			Devices: []netatmo.StationDevice{
				{
					ID:          "70:ee:50:00:00:01",
					StationName: "Home",
					ModuleName:  "Inside",
					Type:        "NAMain",
					Reachable:   true,
					DashboardData: netatmo.DashboardData{
						Temperature: ptr(21.4),
						Humidity:    ptr(int64(48)),
						CO2:         ptr(int64(1240)),
						Noise:       ptr(int64(38)),
						TempTrend:   ptr("stable"),
						TimeUTC:     ptr(time.Now().Add(-5 * time.Minute).Unix()),
					},
					Modules: []netatmo.StationModule{
						{
							ID:             "02:00:00:00:00:02",
							ModuleName:     "Outside",
							Type:           "NAModule1",
							Reachable:      true,
							BatteryPercent: 12,
							DashboardData: netatmo.DashboardData{
								Temperature: ptr(3.5),
								Humidity:    ptr(int64(91)),
							},
						},
						{
							ID:             "05:00:00:00:00:03",
							ModuleName:     "Rain gauge",
							Type:           "NAModule3",
							Reachable:      false,
							BatteryPercent: 80,
							DashboardData: netatmo.DashboardData{
								Rain:      ptr(0.0),
								SumRain24: ptr(4.2),
							},
						},
					},
				},
			},
		},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Temperature < 18`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "non boolean",
			expression: `lower("abc")`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `has("CO2") and CO2 > 1000 and minutesSince(Updated) < 30`,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, filter)
		})
	}
}

func TestModuleFilterEvaluation(t *testing.T) {
	modules := ModulesFromStationData(testStationData())
	require.Len(t, modules, 3)

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{
			name:       "cold modules",
			expression: `Temperature < 10`,
			want:       []string{"Home/Outside"},
		},
		{
			name:       "stuffy air",
			expression: `has("CO2") and CO2 > 1000`,
			want:       []string{"Home/Inside"},
		},
		{
			name:       "missing reading is a non-match",
			expression: `CO2 > 0`,
			want:       []string{"Home/Inside"},
		},
		{
			name:       "low battery",
			expression: `has("Battery") and Battery < 20`,
			want:       []string{"Home/Outside"},
		},
		{
			name:       "unreachable",
			expression: `not Reachable`,
			want:       []string{"Home/Rain gauge"},
		},
		{
			name:       "by type and name",
			expression: `Type == "NAModule3" or startsWith(Name, "in")`,
			want:       []string{"Home/Inside", "Home/Rain gauge"},
		},
		{
			name:       "recent update",
			expression: `has("Updated") and Updated > minutesAgo(15)`,
			want:       []string{"Home/Inside"},
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			var got []string
			for _, m := range Select(filter, modules) {
				got = append(got, m.Label())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_ReportsEvaluationError(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`CO2 > 1000`)
	require.NoError(t, err)

	outside := ModulesFromStationData(testStationData())[1]
	ok, err := filter.Check(outside)
	assert.False(t, ok)

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "Home/Outside", evalErr.Subject)
	assert.False(t, filter.Evaluate(outside))
}

func TestRoomFilterEvaluation(t *testing.T) {
	status := &netatmo.HomeStatus{
		Body: netatmo.HomeStatusBody{
			Home: netatmo.HomeState{
				ID: "home",
				Rooms: []netatmo.RoomState{
					{ID: "1", Reachable: true, ThermMeasuredTemperature: 17.5, ThermSetpointTemperature: 21, ThermSetpointMode: "schedule", HeatingPowerRequest: 100},
					{ID: "2", Reachable: true, ThermMeasuredTemperature: 21.2, ThermSetpointTemperature: 21, ThermSetpointMode: "manual", OpenWindow: true},
					{ID: "3", Reachable: false},
				},
			},
		},
	}
	homes := &netatmo.HomesData{
		Body: netatmo.HomesDataBody{
			Homes: []netatmo.Home{
				{ID: "home", Rooms: []netatmo.HomeRoom{{ID: "1", Name: "Living room"}, {ID: "2", Name: "Bedroom"}}},
				{ID: "other", Rooms: []netatmo.HomeRoom{{ID: "3", Name: "Elsewhere"}}},
			},
		},
	}

	rooms := RoomsFromHomeStatus(status, homes)
	require.Len(t, rooms, 3)
	assert.Equal(t, "3", rooms[2].Label(), "rooms without a name fall back to their id")

	tests := []struct {
		expression string
		want       []string
	}{
		{`Temperature < Setpoint - 1`, []string{"Living room"}},
		{`Mode == "manual"`, []string{"Bedroom"}},
		{`OpenWindow or HeatingPower > 50`, []string{"Living room", "Bedroom"}},
		{`not Reachable`, []string{"3"}},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			var got []string
			for _, r := range Select(filter, rooms) {
				got = append(got, r.Label())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHomecoachSubject(t *testing.T) {
	coach := HomecoachSubject(netatmo.Homecoach{
		ID:            "70:ee:50:00:00:03",
		Name:          "Bedroom",
		Type:          "NHC",
		DashboardData: netatmo.DashboardData{HealthIdx: ptr(int64(3))},
	})

	filter, err := NewExprCompiler().Compile(`HealthIdx >= 2`)
	require.NoError(t, err)
	assert.True(t, filter.Evaluate(coach))
	assert.Equal(t, "Bedroom", coach.Label())
}

func TestFilterManager(t *testing.T) {
	manager := NewManager()

	err := manager.RegisterFilters(map[string]string{
		"cold":   `Temperature < 10`,
		"stuffy": `CO2 > 1000`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cold", "stuffy"}, manager.ListFilters())

	err = manager.RegisterFilters(map[string]string{
		"ok":     `Reachable`,
		"broken": `Temperature <`,
	})
	require.Error(t, err)
	_, exists := manager.GetFilter("ok")
	assert.False(t, exists, "a failed batch must not register anything")

	modules := ModulesFromStationData(testStationData())

	preset, err := manager.Resolve("cold")
	require.NoError(t, err)
	assert.Len(t, Select(preset, modules), 1)

	adHoc, err := manager.Resolve(`Type == "NAMain"`)
	require.NoError(t, err)
	assert.Len(t, Select(adHoc, modules), 1)

	assert.Len(t, Select[ModuleSubject](nil, modules), 3)

	manager.UnregisterFilter("cold")
	_, exists = manager.GetFilter("cold")
	assert.False(t, exists)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Temperature < 10`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  Temperature < 10  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`Humidity > 80`)
	require.NoError(t, err)
	_, err = compiler.Compile(`CO2 > 1000`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestProgramCacheEvictsLeastRecentlyUsed(t *testing.T) {
	compiler := NewExprCompiler()
	compile := func(expression string) CompiledFilter {
		f, err := compiler.Compile(expression)
		require.NoError(t, err)
		return f
	}

	cache := newProgramCache(2)
	cache.Put(compile("Temperature < 10"))
	cache.Put(compile("Humidity > 80"))

	// Touch the oldest so the other one is evicted next
	_, ok := cache.Get("Temperature < 10")
	require.True(t, ok)
	cache.Put(compile("CO2 > 1000"))

	_, ok = cache.Get("Humidity > 80")
	assert.False(t, ok)
	_, ok = cache.Get("Temperature < 10")
	assert.True(t, ok)
	_, ok = cache.Get("CO2 > 1000")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestReadingHelpers(t *testing.T) {
	compiler := NewExprCompiler()
	inside := ModulesFromStationData(testStationData())[0]

	for _, expression := range []string{
		`fahrenheit(0) == 32`,
		`between(Temperature, 15, 30)`,
	} {
		filter, err := compiler.Compile(expression)
		require.NoError(t, err, expression)
		assert.True(t, filter.Evaluate(inside), expression)
	}
}

func TestWithCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"celsiusToFahrenheit": func(c float64) float64 { return c*9/5 + 32 },
	}))

	filter, err := compiler.Compile(`celsiusToFahrenheit(Temperature) > 70`)
	require.NoError(t, err)

	inside := ModulesFromStationData(testStationData())[0]
	assert.True(t, filter.Evaluate(inside))
}
