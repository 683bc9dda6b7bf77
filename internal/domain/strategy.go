package domain

// StrategyType identifies one of the fixed strategy templates.
type StrategyType string

const (
	StrategyDualMA   StrategyType = "DualMA"
	StrategySingleMA StrategyType = "SingleMA"
	StrategySmallCap StrategyType = "SmallCap"
	StrategyGrid     StrategyType = "Grid"
	StrategyT0       StrategyType = "T0"
	StrategyLimitUp  StrategyType = "LimitUp"
)

// SupportedStrategies lists every selectable template, in display order.
var SupportedStrategies = []StrategyType{
	StrategyDualMA, StrategySingleMA, StrategySmallCap,
	StrategyGrid, StrategyT0, StrategyLimitUp,
}

// StrategyName maps strategy types to display names.
var StrategyName = map[StrategyType]string{
	StrategyDualMA:   "Dual Moving Average",
	StrategySingleMA: "Single Moving Average",
	StrategySmallCap: "Small Market Cap Rotation",
	StrategyGrid:     "Grid Trading",
	StrategyT0:       "Intraday T+0",
	StrategyLimitUp:  "Limit Up Chasing",
}

// IsSupportedStrategy reports whether s names a known template.
func IsSupportedStrategy(s StrategyType) bool {
	_, ok := StrategyName[s]
	return ok
}
