package listing

import "strategy-sandbox/internal/domain"

// Canonical listing per template. The listing is the human-editable mirror
// of the parameter set: numeric literals in ('name', N) pairs are live, the
// rest of the text is structure the integrity gate protects.
var templates = map[domain.StrategyType]string{
	domain.StrategyDualMA: `strategy.py                         Python 3.9

# A-Share Dual Moving Average
# Buy when the fast MA crosses above the slow MA, sell on the cross below.

class DualThrustStrategy(Strategy):
    params = (
        ('period_fast', 10),  # fast MA window
        ('period_slow', 20), # slow MA window
        ('stop_loss', 5),    # stop loss %
        ('take_profit', 15), # take profit %
    )

    def __init__(self):
        self.sma_fast = bt.indicators.SMA(
            self.data.close,
            period=self.params.period_fast
        )
        self.sma_slow = bt.indicators.SMA(
            self.data.close,
            period=self.params.period_slow
        )

    def next(self):
        if not self.position:
            if self.sma_fast > self.sma_slow:
                self.buy()
        elif self.sma_fast < self.sma_slow:
            self.close()

        # simulated stop loss / take profit
        if self.position:
             pnl_pct = (self.data.close[0] - self.position.price) / self.position.price * 100
             if pnl_pct < -self.params.stop_loss or pnl_pct > self.params.take_profit:
                 self.close()
`,
	domain.StrategySingleMA: `strategy.py                         Python 3.9

# Single Moving Average
# Buy above the MA, sell below it.

class SingleMAStrategy(Strategy):
    params = (
        ('period', 10),      # MA window
        ('stop_loss', 5),    # stop loss %
        ('take_profit', 15), # take profit %
    )

    def __init__(self):
        self.sma = bt.indicators.SMA(self.data.close, period=self.params.period)

    def next(self):
        if not self.position and self.data.close[0] > self.sma[0]:
            self.buy()
        elif self.position and self.data.close[0] < self.sma[0]:
            self.close()

        if self.position:
             pnl_pct = (self.data.close[0] - self.position.price) / self.position.price * 100
             if pnl_pct < -self.params.stop_loss or pnl_pct > self.params.take_profit:
                 self.close()
`,
	domain.StrategySmallCap: `strategy.py                         Python 3.9

# Small Market Cap Rotation
# Hold the smallest caps, rebalance monthly.

class SmallCapStrategy(Strategy):
    params = (
        ('hold_count', 3),
        ('volume_ratio', 1.5), # volume ratio floor
        ('pe_ratio', 30),      # P/E ceiling
    )

    def __init__(self):
        self.last_month = -1

    def next(self):
        # rebalance when the month rolls over
        dt = self.data.datetime.date(0)
        if self.last_month == dt.month:
            return

        self.last_month = dt.month

        # screen by volume ratio and P/E
        candidates = [
            d for d in self.datas
            if d.volume_ratio > self.params.volume_ratio
            and d.pe < self.params.pe_ratio
        ]

        # smallest market cap first
        sorted_stocks = sorted(candidates, key=lambda d: d.market_cap)
        target_stocks = sorted_stocks[:self.params.hold_count]

        # drop holdings that fell out of the target pool
        for stock in self.position:
            if stock not in target_stocks:
                self.close(stock)

        # enter the rest of the target pool
        for stock in target_stocks:
            if not self.getposition(stock):
                self.buy(stock)
`,
	domain.StrategyGrid: `strategy.py                         Python 3.9

# Grid Trading
# Buy the dips, sell the rips, one grid step at a time.

class GridStrategy(Strategy):
    params = (
        ('grid_step', 2.0),  # grid spacing %
        ('grid_size', 1000), # shares per grid
        ('stop_loss', 5),    # stop loss %
        ('take_profit', 15), # take profit %
    )

    def __init__(self):
        self.last_price = self.data.close[0]

    def next(self):
        price = self.data.close[0]
        step_val = self.params.grid_step / 100.0

        # dropped one step: buy
        if price <= self.last_price * (1 - step_val):
            self.buy(size=self.params.grid_size)
            self.last_price = price
        # climbed one step: sell
        elif price >= self.last_price * (1 + step_val):
            self.sell(size=self.params.grid_size)
            self.last_price = price
`,
	domain.StrategyT0: `strategy.py                         Python 3.9

# Intraday T+0
# Fade the move off the previous close, flatten on profit or stop.

class IntradayT0Strategy(Strategy):
    params = (
        ('threshold', 0.5),   # entry deviation %
        ('take_profit', 1.5), # take profit %
        ('stop_loss', 1.0),   # stop loss %
    )

    def next(self):
        prev_close = self.data.close[-1]
        price = self.data.close[0]

        # 1. entries
        if not self.position:
            # long side: dip below prev close
            if price < prev_close * (1 - self.params.threshold / 100):
                self.buy()
            # short side: pop above prev close
            elif price > prev_close * (1 + self.params.threshold / 100):
                self.sell()

        # 2. exits (1.5 : 1 reward-to-risk)
        elif self.position:
            if self.position.size > 0:
                 pnl_pct = (price - self.position.price) / self.position.price * 100
            else:
                 pnl_pct = (self.position.price - price) / self.position.price * 100

            if pnl_pct >= self.params.take_profit or pnl_pct <= -self.params.stop_loss:
                self.close()
`,
	domain.StrategyLimitUp: `strategy.py                         Python 3.9

# Limit Up Chasing
# Sweep the board when momentum, volume ratio, and speed all trigger.

class LimitUpStrategy(Strategy):
    params = (
        ('threshold', 9.0),       # daily gain trigger %
        ('volume_ratio', 1.2),    # volume ratio floor
        ('speed_threshold', 3.0), # 1-minute speed floor %
    )

    def next(self):
        prev_close = self.data.close[-1]
        price = self.data.close[0]

        pct_change = (price - prev_close) / prev_close * 100

        # minute-level inputs come from the data feed
        current_volume_ratio = self.data.volume_ratio[0]
        current_speed = self.data.speed_1m[0]

        if not self.position:
             if (pct_change > self.params.threshold and
                 current_volume_ratio > self.params.volume_ratio and
                 current_speed > self.params.speed_threshold):
                 self.buy()

        # naive next-day exit
        if self.position:
             pass
`,
}

// Template returns the canonical listing for a strategy.
func Template(strategy domain.StrategyType) string {
	return templates[strategy]
}
