package domain

// CompositeIndexCode is the sentinel instrument for index-level strategies.
// The small-cap rotation template trades the whole index universe, so it is
// the only template allowed (and required) to select it.
const CompositeIndexCode = "CSI_300"

// Instrument is one tradable entry in the fixed catalog.
type Instrument struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// InstrumentPool is the fixed catalog the sandbox exposes.
var InstrumentPool = []Instrument{
	{Code: "300539.SZ", Name: "Henghe Precision"},
	{Code: "603019.SH", Name: "Sugon"},
	{Code: "301232.SZ", Name: "Feiwo Technology"},
	{Code: "603286.SH", Name: "Riying Electronics"},
	{Code: "601138.SH", Name: "Foxconn Industrial"},
	{Code: CompositeIndexCode, Name: "CSI 300 Index"},
}

// LookupInstrument resolves a code against the catalog.
func LookupInstrument(code string) (Instrument, bool) {
	for _, inst := range InstrumentPool {
		if inst.Code == code {
			return inst, true
		}
	}
	return Instrument{}, false
}

// InstrumentEligible reports whether a strategy may trade an instrument.
// SmallCap and the composite index imply each other exclusively.
func InstrumentEligible(strategy StrategyType, code string) bool {
	if strategy == StrategySmallCap {
		return code == CompositeIndexCode
	}
	return code != CompositeIndexCode
}

// DefaultInstrumentFor returns the instrument a strategy falls back to when
// its current selection becomes ineligible after a template switch.
func DefaultInstrumentFor(strategy StrategyType) Instrument {
	if strategy == StrategySmallCap {
		inst, _ := LookupInstrument(CompositeIndexCode)
		return inst
	}
	for _, inst := range InstrumentPool {
		if inst.Code != CompositeIndexCode {
			return inst
		}
	}
	return Instrument{}
}
