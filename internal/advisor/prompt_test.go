package advisor

import (
	"strings"
	"testing"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"
)

func TestBuildPromptCarriesConfiguration(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	p.ShortPeriod = 8
	p.LongPeriod = 21
	text := listing.Template(domain.StrategyDualMA)

	prompt := BuildPrompt(domain.StrategyDualMA, text, p)
	for _, want := range []string{
		"Fast MA period: 8",
		"Slow MA period: 21",
		"Initial capital: 100000",
		"2024-01-01 to 2025-12-01",
		"```python",
		"DualThrustStrategy",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptPerStrategyFields(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	cases := map[domain.StrategyType]string{
		domain.StrategySingleMA: "MA period:",
		domain.StrategySmallCap: "P/E ceiling:",
		domain.StrategyGrid:     "Grid step:",
		domain.StrategyT0:       "Entry threshold:",
		domain.StrategyLimitUp:  "Gain trigger:",
	}
	for st, want := range cases {
		prompt := BuildPrompt(st, listing.Template(st), p)
		if !strings.Contains(prompt, want) {
			t.Errorf("%s: prompt missing %q", st, want)
		}
	}
}
