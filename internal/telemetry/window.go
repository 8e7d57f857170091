package telemetry

// DefaultCapacity is the number of samples kept per graph series.
const DefaultCapacity = 120

// NoSignal is the sentinel for power-like samples with no data.
const NoSignal = -256

// Window is a fixed-capacity history of integer samples, oldest first.
// It starts full of sentinel values so a graph has a full-width baseline
// before the first real sample arrives.
type Window struct {
	data     []int
	head     int
	capacity int
	sentinel int
}

// NewWindow creates a window with the given capacity, pre-filled with sentinel.
// A non-positive capacity falls back to DefaultCapacity.
func NewWindow(capacity, sentinel int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	w := &Window{
		data:     make([]int, capacity),
		capacity: capacity,
		sentinel: sentinel,
	}
	w.fill()
	return w
}

// Push appends a sample, evicting the oldest one.
func (w *Window) Push(v int) {
	w.data[w.head] = v
	w.head = (w.head + 1) % w.capacity
}

// Values returns the samples in arrival order (oldest first).
func (w *Window) Values() []int {
	out := make([]int, w.capacity)
	n := copy(out, w.data[w.head:])
	copy(out[n:], w.data[:w.head])
	return out
}

// Floats returns the samples as float64, for the graph renderers.
func (w *Window) Floats() []float64 {
	vals := w.Values()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

// Last returns the newest sample.
func (w *Window) Last() int {
	return w.data[(w.head-1+w.capacity)%w.capacity]
}

// Len returns the number of retained samples. It is always the capacity.
func (w *Window) Len() int {
	return w.capacity
}

// Capacity returns the configured capacity.
func (w *Window) Capacity() int {
	return w.capacity
}

// Sentinel returns the fill value used on reset.
func (w *Window) Sentinel() int {
	return w.sentinel
}

// Reset refills the window with sentinels.
func (w *Window) Reset() {
	w.fill()
}

func (w *Window) fill() {
	for i := range w.data {
		w.data[i] = w.sentinel
	}
	w.head = 0
}
