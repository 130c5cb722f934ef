package cashmerge

// EventType identifies an exchange-rate event.
type EventType string

const (
	EventDollarSurge EventType = "dollar_surge"
	EventYenWeak     EventType = "yen_weak"
	EventWonStrong   EventType = "won_strong"
)

// Effect is the modifier tag an event applies while active.
type Effect string

const (
	EffectNone     Effect = ""
	EffectUSDBonus Effect = "usd_bonus" // Doubles USD merge score
	EffectYenSpawn Effect = "yen_spawn" // Biases spawns toward JPY
	EffectKRWBonus Effect = "krw_bonus" // Doubles KRW merge score
)

// Event is a timed modifier.
type Event struct {
	Type        EventType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // Seconds
	Effect      Effect    `json:"effect"`
}

// Events is the fixed event catalog.
var Events = []Event{
	{
		Type:        EventDollarSurge,
		Name:        "Dollar Surge!",
		Description: "Dollar merges score double",
		Duration:    15,
		Effect:      EffectUSDBonus,
	},
	{
		Type:        EventYenWeak,
		Name:        "Weak Yen!",
		Description: "Yen coins show up more often",
		Duration:    15,
		Effect:      EffectYenSpawn,
	},
	{
		Type:        EventWonStrong,
		Name:        "Strong Won!",
		Description: "Won merges score double",
		Duration:    15,
		Effect:      EffectKRWBonus,
	},
}

// bonusCurrency maps the scoring events to the currency they double.
var bonusCurrency = map[EventType]Currency{
	EventDollarSurge: CurrencyUSD,
	EventWonStrong:   CurrencyKRW,
}

// HasBonus returns true if ev doubles merge score for c.
func HasBonus(c Currency, ev *Event) bool {
	if ev == nil {
		return false
	}
	target, ok := bonusCurrency[ev.Type]
	return ok && target == c
}

// EffectOf returns the effect of ev, or EffectNone when no event is active.
func EffectOf(ev *Event) Effect {
	if ev == nil {
		return EffectNone
	}
	return ev.Effect
}

// EventTimer holds at most one active event and its countdown.
// Activation and countdown are driven by two independent external clocks.
type EventTimer struct {
	active    *Event
	remaining int
}

// Active returns the running event, or nil.
func (t *EventTimer) Active() *Event {
	return t.active
}

// Remaining returns the seconds left on the running event.
func (t *EventTimer) Remaining() int {
	return t.remaining
}

// Activate starts a uniformly chosen event if none is running.
// Returns true if an event was started.
func (t *EventTimer) Activate(rng Rand) bool {
	if t.active != nil || len(Events) == 0 {
		return false
	}
	ev := Events[rng.Intn(len(Events))]
	t.active = &ev
	t.remaining = ev.Duration
	return true
}

// Countdown advances the running event by one second.
// Returns true if the event expired on this call.
func (t *EventTimer) Countdown() bool {
	if t.active == nil {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.Clear()
		return true
	}
	return false
}

// Clear stops the running event.
func (t *EventTimer) Clear() {
	t.active = nil
	t.remaining = 0
}
