package netatmo

import (
	"context"
)

// API defines the protected Netatmo operations
type API interface {
	// GetStationData retrieves weather stations and their last readings
	GetStationData(ctx context.Context, params StationDataParams) (*StationData, error)

	// GetMeasure retrieves the measurement history of a station or module
	GetMeasure(ctx context.Context, params MeasureParams) (*Measure, error)

	// GetHomesData retrieves the topology of the user's homes
	GetHomesData(ctx context.Context, params HomesDataParams) (*HomesData, error)

	// GetHomeStatus retrieves the live state of a home
	GetHomeStatus(ctx context.Context, params HomeStatusParams) (*HomeStatus, error)

	// SetRoomThermpoint changes the heating setpoint of a room
	SetRoomThermpoint(ctx context.Context, params SetRoomThermpointParams) (*SetRoomThermpointResponse, error)

	// GetHomecoachsData retrieves Healthy Home Coaches and their last readings
	GetHomecoachsData(ctx context.Context, params HomecoachsDataParams) (*HomecoachsData, error)
}

var _ API = (*AuthenticatedClient)(nil)
