package domain

// Direction of a ledger event.
type Direction string

const (
	Buy  Direction = "Buy"
	Sell Direction = "Sell"
)

// Trade is one simulated ledger event. PL is set only on position-closing
// sells.
type Trade struct {
	Date      string    `json:"date"`
	Direction Direction `json:"direction"`
	Price     float64   `json:"price"`
	PL        *float64  `json:"pl,omitempty"`
}

// Metrics is the headline statistics snapshot for one backtest run.
// TradeCount always mirrors the length of the ledger generated in the same
// run.
type Metrics struct {
	AnnualReturn    float64 `json:"annual_return_pct"`
	BenchmarkReturn float64 `json:"benchmark_return_pct"`
	SharpeRatio     float64 `json:"sharpe_ratio"`
	MaxDrawdown     float64 `json:"max_drawdown_pct"`
	WinRate         float64 `json:"win_rate_pct"`
	TradeCount      int     `json:"trade_count"`
}

// ChartPoint is one tradable day's snapshot for charting. Signal is "buy" or
// "sell" on ledger days and empty otherwise.
type ChartPoint struct {
	Date    string   `json:"date"`
	Price   float64  `json:"price"`
	MAShort float64  `json:"ma_short"`
	MALong  float64  `json:"ma_long"`
	Equity  float64  `json:"equity"`
	Signal  string   `json:"signal,omitempty"`
	PL      *float64 `json:"pl,omitempty"`
}

// LogLevel classifies run log lines.
type LogLevel string

const (
	LogInfo    LogLevel = "INFO"
	LogWarn    LogLevel = "WARN"
	LogError   LogLevel = "ERROR"
	LogSuccess LogLevel = "SUCCESS"
)

// LogEntry is one line of the staged backtest run log.
type LogEntry struct {
	Time    string   `json:"time"`
	Level   LogLevel `json:"level"`
	Message string   `json:"message"`
}

// Validation is the outcome of a precondition check. Rejections carry a
// user-correctable reason, never a process fault.
type Validation struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Valid is the passing validation result.
func Valid() Validation { return Validation{OK: true} }

// Rejected builds a failing validation result.
func Rejected(reason string) Validation { return Validation{OK: false, Reason: reason} }

// BacktestResult bundles the three consistent artifacts of one run.
type BacktestResult struct {
	Signature string       `json:"signature"`
	Metrics   Metrics      `json:"metrics"`
	Trades    []Trade      `json:"trades"`
	Series    []ChartPoint `json:"series"`
	Log       []LogEntry   `json:"log,omitempty"`
}
