package game

type EventType int

const (
	EventJump EventType = iota
	EventLand
	EventWallBounce
	EventPaddleHit
	EventGoal
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventJump:
		return "jump"
	case EventLand:
		return "land"
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleHit:
		return "paddle_hit"
	case EventGoal:
		return "goal"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Frame uint64
	X, Y  float64
	Side  Side    // acting player; the scorer for EventGoal
	Value float64 // deflection angle for EventPaddleHit, impact speed for EventWallBounce/EventLand
}

type EventHandler func(Event)

// EventBus fans match events out to audio, particles and logging.
// Handlers run synchronously inside Step.
type EventBus struct {
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}
