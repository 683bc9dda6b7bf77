package sim

import (
	"testing"

	"strategy-sandbox/internal/domain"
)

func TestUnitIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, seed := range []int32{0, 1, 42, -42, 1 << 30} {
		a := Unit(seed)
		b := Unit(seed)
		if a != b {
			t.Fatalf("Unit(%d) not stable: %v vs %v", seed, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("Unit(%d) = %v, want [0,1)", seed, a)
		}
	}
}

func TestUnitAdjacentSeedsDiffer(t *testing.T) {
	t.Parallel()

	same := 0
	for seed := int32(1); seed <= 100; seed++ {
		if Unit(seed) == Unit(seed+1) {
			same++
		}
	}
	if same > 0 {
		t.Fatalf("%d adjacent seed pairs collided", same)
	}
}

func TestScaledStaysInRange(t *testing.T) {
	t.Parallel()

	for seed := int32(0); seed < 50; seed++ {
		v := Scaled(seed, 5, 55)
		if v < 5 || v >= 55 {
			t.Fatalf("Scaled(%d, 5, 55) = %v out of range", seed, v)
		}
	}
}

func TestHashIsStable(t *testing.T) {
	t.Parallel()

	s := "DualMA-300539.SZ-{...}"
	if Hash(s) != Hash(s) {
		t.Fatal("hash of identical strings differs")
	}
	if Hash("a") == Hash("b") {
		t.Fatal("hash does not distinguish distinct short strings")
	}
}

func TestSignatureChangesWithAnyField(t *testing.T) {
	t.Parallel()

	base := domain.DefaultParameters()
	baseSig := Signature(domain.StrategyDualMA, "300539.SZ", base)

	if got := Signature(domain.StrategyDualMA, "300539.SZ", base); got != baseSig {
		t.Fatal("signature not stable across calls")
	}

	mutations := []func(*domain.ParameterSet){
		func(p *domain.ParameterSet) { p.InitialCapital = 200000 },
		func(p *domain.ParameterSet) { p.StartDate = "2024-02-01" },
		func(p *domain.ParameterSet) { p.EndDate = "2025-01-01" },
		func(p *domain.ParameterSet) { p.ShortPeriod = 11 },
		func(p *domain.ParameterSet) { p.LongPeriod = 30 },
		func(p *domain.ParameterSet) { p.StopLoss = 6 },
		func(p *domain.ParameterSet) { p.TakeProfit = 20 },
		func(p *domain.ParameterSet) { p.VolumeRatio = 2 },
		func(p *domain.ParameterSet) { p.PERatio = 25 },
		func(p *domain.ParameterSet) { p.GridStep = 3 },
		func(p *domain.ParameterSet) { p.GridSize = 500 },
		func(p *domain.ParameterSet) { p.T0Threshold = 0.8 },
		func(p *domain.ParameterSet) { p.T0TakeProfit = 2 },
		func(p *domain.ParameterSet) { p.T0StopLoss = 0.5 },
		func(p *domain.ParameterSet) { p.LimitUpThreshold = 8 },
		func(p *domain.ParameterSet) { p.LimitUpVolumeRatio = 1.5 },
		func(p *domain.ParameterSet) { p.LimitUpSpeedThreshold = 2 },
	}
	for i, mutate := range mutations {
		p := base
		mutate(&p)
		if Signature(domain.StrategyDualMA, "300539.SZ", p) == baseSig {
			t.Fatalf("mutation %d did not change the signature", i)
		}
	}

	if Signature(domain.StrategySingleMA, "300539.SZ", base) == baseSig {
		t.Fatal("strategy change did not change the signature")
	}
	if Signature(domain.StrategyDualMA, "603019.SH", base) == baseSig {
		t.Fatal("instrument change did not change the signature")
	}
}
