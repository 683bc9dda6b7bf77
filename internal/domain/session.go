package domain

import "time"

// Session is the explicit per-user sandbox context. All state is transient;
// nothing outlives the process.
type Session struct {
	ID         string       `json:"id"`
	Strategy   StrategyType `json:"strategy"`
	Instrument Instrument   `json:"instrument"`

	// Params tracks live edits (sliders or listing); ExecutedParams is the
	// set committed by the last backtest run, so results stay stable while
	// the user keeps tuning.
	Params         ParameterSet `json:"params"`
	ExecutedParams ParameterSet `json:"executed_params"`

	Listing string `json:"listing"`

	LastResult *BacktestResult `json:"last_result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
