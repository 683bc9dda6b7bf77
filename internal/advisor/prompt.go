package advisor

import (
	"fmt"
	"strings"

	"strategy-sandbox/internal/domain"
)

const systemPrompt = `You are an expert quantitative trading strategy consultant reviewing sandbox strategy listings.

Rules:
- Explain the strategy logic briefly, in plain language.
- Point out risks created by the current parameter values.
- Give exactly one concrete suggestion to improve the logic or parameters.
- Keep the whole response under 200 words, formatted as Markdown.
- Never invent backtest results; you only see the listing and its configuration.`

// BuildPrompt renders the user message: the parameters relevant to the
// active template, then the listing itself.
func BuildPrompt(strategy domain.StrategyType, listingText string, p domain.ParameterSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strategy template: %s (%s)\n\n", strategy, domain.StrategyName[strategy])
	sb.WriteString("Configuration:\n")
	fmt.Fprintf(&sb, "- Initial capital: %.0f\n", p.InitialCapital)
	fmt.Fprintf(&sb, "- Backtest range: %s to %s\n", p.StartDate, p.EndDate)

	switch strategy {
	case domain.StrategyDualMA:
		fmt.Fprintf(&sb, "- Fast MA period: %g\n- Slow MA period: %g\n- Stop loss: %g%%\n- Take profit: %g%%\n",
			p.ShortPeriod, p.LongPeriod, p.StopLoss, p.TakeProfit)
	case domain.StrategySingleMA:
		fmt.Fprintf(&sb, "- MA period: %g\n- Stop loss: %g%%\n- Take profit: %g%%\n",
			p.ShortPeriod, p.StopLoss, p.TakeProfit)
	case domain.StrategySmallCap:
		fmt.Fprintf(&sb, "- Volume ratio floor: %g\n- P/E ceiling: %g\n", p.VolumeRatio, p.PERatio)
	case domain.StrategyGrid:
		fmt.Fprintf(&sb, "- Grid step: %g%%\n- Grid size: %g shares\n- Stop loss: %g%%\n- Take profit: %g%%\n",
			p.GridStep, p.GridSize, p.StopLoss, p.TakeProfit)
	case domain.StrategyT0:
		fmt.Fprintf(&sb, "- Entry threshold: %g%%\n- Take profit: %g%%\n- Stop loss: %g%%\n",
			p.T0Threshold, p.T0TakeProfit, p.T0StopLoss)
	case domain.StrategyLimitUp:
		fmt.Fprintf(&sb, "- Gain trigger: %g%%\n- Volume ratio floor: %g\n- Speed floor: %g%%\n",
			p.LimitUpThreshold, p.LimitUpVolumeRatio, p.LimitUpSpeedThreshold)
	}

	sb.WriteString("\nListing:\n```python\n")
	sb.WriteString(listingText)
	sb.WriteString("\n```\n")
	return sb.String()
}
