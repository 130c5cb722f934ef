package cashmerge

import "testing"

func TestNextValue(t *testing.T) {
	tests := []struct {
		name   string
		cur    Currency
		value  int
		next   int
		exists bool
	}{
		{"won bottom", CurrencyKRW, 100, 500, true},
		{"won middle", CurrencyKRW, 1000, 5000, true},
		{"won top", CurrencyKRW, 50000, 0, false},
		{"dollar bottom", CurrencyUSD, 1, 5, true},
		{"dollar twenty", CurrencyUSD, 20, 50, true},
		{"dollar top", CurrencyUSD, 100, 0, false},
		{"yen", CurrencyJPY, 5000, 10000, true},
		{"off ladder", CurrencyUSD, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := NextValue(tt.cur, tt.value)
			if ok != tt.exists || next != tt.next {
				t.Errorf("NextValue(%s, %d) = (%d, %v), want (%d, %v)", tt.cur, tt.value, next, ok, tt.next, tt.exists)
			}
		})
	}
}

func TestLaddersAreStrictlyIncreasing(t *testing.T) {
	for _, c := range Currencies {
		ladder := Ladder(c)
		for i := 1; i < LadderLen; i++ {
			if ladder[i] <= ladder[i-1] {
				t.Errorf("%s ladder not increasing at %d: %v", c, i, ladder)
			}
		}
		if LowestValue(c) != ladder[0] {
			t.Errorf("%s lowest = %d, want %d", c, LowestValue(c), ladder[0])
		}
		if !IsTop(c, ladder[LadderLen-1]) || IsTop(c, ladder[0]) {
			t.Errorf("%s IsTop wrong", c)
		}
	}
}

func TestValueAtClamps(t *testing.T) {
	tests := []struct {
		idx  int
		want int
	}{
		{-1, 1},
		{0, 1},
		{3, 20},
		{5, 100},
		{9, 100},
	}
	for _, tt := range tests {
		if got := ValueAt(CurrencyUSD, tt.idx); got != tt.want {
			t.Errorf("ValueAt(USD, %d) = %d, want %d", tt.idx, got, tt.want)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	for _, c := range Currencies {
		got, err := ParseCurrency(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCurrency(%q) = (%v, %v)", c.String(), got, err)
		}
	}
	if got, err := ParseCurrency("jpy"); err != nil || got != CurrencyJPY {
		t.Errorf("ParseCurrency is case-sensitive: (%v, %v)", got, err)
	}
	if _, err := ParseCurrency("EUR"); err == nil {
		t.Error("ParseCurrency(EUR) should fail")
	}
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{coin(CurrencyKRW, 1000), "₩1000"},
		{coin(CurrencyUSD, 20), "$20"},
		{coin(CurrencyJPY, 50000), "¥50000"},
	}
	for _, tt := range tests {
		if got := tt.tile.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestCouponFor(t *testing.T) {
	tests := []struct {
		score   int
		percent int
		ok      bool
	}{
		{0, 0, false},
		{9999, 0, false},
		{10000, 10, true},
		{29999, 10, true},
		{30000, 30, true},
		{50000, 50, true},
		{120000, 50, true},
	}
	for _, tt := range tests {
		c, ok := CouponFor(tt.score)
		if ok != tt.ok || c.Percent != tt.percent {
			t.Errorf("CouponFor(%d) = (%d%%, %v), want (%d%%, %v)", tt.score, c.Percent, ok, tt.percent, tt.ok)
		}
	}
}
