package domain

// ParameterSet is the flat numeric configuration shared by all strategy
// templates. Only a subset of fields is relevant to any one template; the
// rest ride along unchanged so switching templates never loses tuning.
// Values outside the UI ranges are tolerated, never rejected here.
type ParameterSet struct {
	InitialCapital float64 `json:"initial_capital"`

	StartDate string `json:"start_date"` // ISO-8601, e.g. 2024-01-01
	EndDate   string `json:"end_date"`

	// Moving-average templates
	ShortPeriod float64 `json:"short_period"`
	LongPeriod  float64 `json:"long_period"`

	// Risk
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`

	// Small cap rotation
	VolumeRatio float64 `json:"volume_ratio"`
	PERatio     float64 `json:"pe_ratio"`

	// Grid
	GridStep float64 `json:"grid_step"`
	GridSize float64 `json:"grid_size"`

	// Intraday T+0
	T0Threshold  float64 `json:"t0_threshold"`
	T0TakeProfit float64 `json:"t0_take_profit"`
	T0StopLoss   float64 `json:"t0_stop_loss"`

	// Limit up
	LimitUpThreshold      float64 `json:"limit_up_threshold"`
	LimitUpVolumeRatio    float64 `json:"limit_up_volume_ratio"`
	LimitUpSpeedThreshold float64 `json:"limit_up_speed_threshold"`
}

// DefaultParameters returns the initial configuration for a fresh session.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		InitialCapital:        100000,
		StartDate:             "2024-01-01",
		EndDate:               "2025-12-01",
		ShortPeriod:           10,
		LongPeriod:            20,
		StopLoss:              5,
		TakeProfit:            15,
		VolumeRatio:           1.5,
		PERatio:               30,
		GridStep:              2.0,
		GridSize:              1000,
		T0Threshold:           0.5,
		T0TakeProfit:          1.5,
		T0StopLoss:            1.0,
		LimitUpThreshold:      9.0,
		LimitUpVolumeRatio:    1.2,
		LimitUpSpeedThreshold: 3.0,
	}
}
