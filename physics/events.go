package physics

// Axis names the wall axis a bounce happened on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// RemoveReason explains why a body left the simulation.
type RemoveReason string

const (
	RemovedExploded   RemoveReason = "exploded"
	RemovedDissipated RemoveReason = "dissipated"
	RemovedOffBounds  RemoveReason = "off_bounds"
)

// Event is a step event payload. Concrete types are WallBounce, Exploded,
// Collision and Removed.
type Event interface {
	isEvent()
}

// WallBounce is emitted for every reflected axis.
type WallBounce struct {
	ID          BodyID
	Axis        Axis
	SpeedBefore float64 // |v| on the bounced axis before damping
	SpeedAfter  float64
}

// Exploded is emitted when a thrown body breaks into fragments.
type Exploded struct {
	ID          BodyID
	Position    Vector2
	ImpactSpeed float64
	Fragments   []BodyID
}

// Collision is emitted for every resolved body pair.
type Collision struct {
	A, B    BodyID
	Normal  Vector2 // unit vector from A towards B
	Impulse float64
}

// Removed is emitted when a body is marked dead.
type Removed struct {
	ID     BodyID
	Reason RemoveReason
}

func (WallBounce) isEvent() {}
func (Exploded) isEvent()   {}
func (Collision) isEvent()  {}
func (Removed) isEvent()    {}

// eventQueue is a simple FIFO queue.
type eventQueue struct {
	items []Event
	limit int
}

// Push adds an event. Once the limit is reached the oldest events are dropped.
func (q *eventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
	if q.limit > 0 && len(q.items) > q.limit {
		n := copy(q.items, q.items[len(q.items)-q.limit:])
		q.items = q.items[:n]
	}
}

// Drain returns all events and clears the queue.
func (q *eventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *eventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
