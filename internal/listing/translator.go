package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"strategy-sandbox/internal/domain"
)

// binding ties one listing token to one ParameterSet field.
type binding struct {
	token string
	get   func(domain.ParameterSet) float64
	set   func(*domain.ParameterSet, float64)
}

// bindings is the declarative field-to-token table per strategy. The same token
// can mean different fields under different templates (T0's stop_loss is not
// DualMA's), which is why dispatch is by strategy, not by token.
var bindings = map[domain.StrategyType][]binding{
	domain.StrategyDualMA: {
		{"period_fast",
			func(p domain.ParameterSet) float64 { return p.ShortPeriod },
			func(p *domain.ParameterSet, v float64) { p.ShortPeriod = v }},
		{"period_slow",
			func(p domain.ParameterSet) float64 { return p.LongPeriod },
			func(p *domain.ParameterSet, v float64) { p.LongPeriod = v }},
		{"stop_loss",
			func(p domain.ParameterSet) float64 { return p.StopLoss },
			func(p *domain.ParameterSet, v float64) { p.StopLoss = v }},
		{"take_profit",
			func(p domain.ParameterSet) float64 { return p.TakeProfit },
			func(p *domain.ParameterSet, v float64) { p.TakeProfit = v }},
	},
	domain.StrategySingleMA: {
		{"period",
			func(p domain.ParameterSet) float64 { return p.ShortPeriod },
			func(p *domain.ParameterSet, v float64) { p.ShortPeriod = v }},
		{"stop_loss",
			func(p domain.ParameterSet) float64 { return p.StopLoss },
			func(p *domain.ParameterSet, v float64) { p.StopLoss = v }},
		{"take_profit",
			func(p domain.ParameterSet) float64 { return p.TakeProfit },
			func(p *domain.ParameterSet, v float64) { p.TakeProfit = v }},
	},
	domain.StrategySmallCap: {
		{"volume_ratio",
			func(p domain.ParameterSet) float64 { return p.VolumeRatio },
			func(p *domain.ParameterSet, v float64) { p.VolumeRatio = v }},
		{"pe_ratio",
			func(p domain.ParameterSet) float64 { return p.PERatio },
			func(p *domain.ParameterSet, v float64) { p.PERatio = v }},
	},
	domain.StrategyGrid: {
		{"grid_step",
			func(p domain.ParameterSet) float64 { return p.GridStep },
			func(p *domain.ParameterSet, v float64) { p.GridStep = v }},
		{"grid_size",
			func(p domain.ParameterSet) float64 { return p.GridSize },
			func(p *domain.ParameterSet, v float64) { p.GridSize = v }},
		{"stop_loss",
			func(p domain.ParameterSet) float64 { return p.StopLoss },
			func(p *domain.ParameterSet, v float64) { p.StopLoss = v }},
		{"take_profit",
			func(p domain.ParameterSet) float64 { return p.TakeProfit },
			func(p *domain.ParameterSet, v float64) { p.TakeProfit = v }},
	},
	domain.StrategyT0: {
		{"threshold",
			func(p domain.ParameterSet) float64 { return p.T0Threshold },
			func(p *domain.ParameterSet, v float64) { p.T0Threshold = v }},
		{"take_profit",
			func(p domain.ParameterSet) float64 { return p.T0TakeProfit },
			func(p *domain.ParameterSet, v float64) { p.T0TakeProfit = v }},
		{"stop_loss",
			func(p domain.ParameterSet) float64 { return p.T0StopLoss },
			func(p *domain.ParameterSet, v float64) { p.T0StopLoss = v }},
	},
	domain.StrategyLimitUp: {
		{"threshold",
			func(p domain.ParameterSet) float64 { return p.LimitUpThreshold },
			func(p *domain.ParameterSet, v float64) { p.LimitUpThreshold = v }},
		{"volume_ratio",
			func(p domain.ParameterSet) float64 { return p.LimitUpVolumeRatio },
			func(p *domain.ParameterSet, v float64) { p.LimitUpVolumeRatio = v }},
		{"speed_threshold",
			func(p domain.ParameterSet) float64 { return p.LimitUpSpeedThreshold },
			func(p *domain.ParameterSet, v float64) { p.LimitUpSpeedThreshold = v }},
	},
}

// tokenPattern caches one compiled regexp per token name. The grammar is the
// single-line ('name', N) pair; N is a finite decimal, no scientific
// notation.
var tokenPattern = map[string]*regexp.Regexp{}

var capitalPattern = regexp.MustCompile(`# Initial Capital: (\d+)`)

func init() {
	for _, set := range bindings {
		for _, b := range set {
			if _, ok := tokenPattern[b.token]; !ok {
				tokenPattern[b.token] = regexp.MustCompile(`\('` + b.token + `',\s*([0-9.]+)\)`)
			}
		}
	}
}

// ToListing rewrites prior so that every token relevant to the strategy
// carries the current parameter value. Tokens outside the strategy's table
// and all surrounding text are left untouched; the capital comment is
// inserted or updated independently.
func ToListing(strategy domain.StrategyType, p domain.ParameterSet, prior string) string {
	text := prior
	if text == "" {
		text = Template(strategy)
	}

	for _, b := range bindings[strategy] {
		re := tokenPattern[b.token]
		repl := fmt.Sprintf("('%s', %s)", b.token, formatValue(b.get(p)))
		text = re.ReplaceAllString(text, repl)
	}

	return upsertCapital(text, p.InitialCapital)
}

// FromListing extracts each strategy-relevant token's numeric value and
// overwrites only the matching fields of prior. A missing or non-numeric
// token leaves its field at the prior value; fields belonging to other
// strategies always survive a listing edit.
func FromListing(strategy domain.StrategyType, text string, prior domain.ParameterSet) domain.ParameterSet {
	p := prior

	for _, b := range bindings[strategy] {
		m := tokenPattern[b.token].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		b.set(&p, v)
	}

	if m := capitalPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.InitialCapital = v
		}
	}

	return p
}

// InsertCapital updates or inserts the capital comment without touching any
// strategy token. Used when loading a fresh template for a session that
// already has capital configured.
func InsertCapital(text string, capital float64) string {
	return upsertCapital(text, capital)
}

// upsertCapital updates the capital comment in place, or inserts it right
// under the listing header when absent.
func upsertCapital(text string, capital float64) string {
	comment := fmt.Sprintf("# Initial Capital: %d", int64(capital))
	if capitalPattern.MatchString(text) {
		return capitalPattern.ReplaceAllString(text, comment)
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.Contains(lines[0], "strategy.py") {
		rest := append([]string{lines[0], "", comment}, lines[1:]...)
		return strings.Join(rest, "\n")
	}
	return text
}

// formatValue renders a numeric literal the way the token grammar expects:
// shortest finite decimal, no exponent.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
