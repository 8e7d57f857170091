package telemetry

// Sample is one tick's worth of raw readings for a detail panel.
type Sample struct {
	// Signal is the level to graph (dBm, or RSSI when dBm has no data).
	Signal int
	// Packets is the cumulative packet counter.
	Packets int64
	// Retries is the current retry rate.
	Retries int
}

// GraphSignal picks the signal value to graph: dBm unless it carries the
// no-data sentinel, in which case the RSSI reading.
func GraphSignal(dbm, rssi int) int {
	if dbm == NoSignal {
		return rssi
	}
	return dbm
}

// DetailSeries holds the rolling graph histories of one detail panel.
type DetailSeries struct {
	Signal  *Window
	Packets *Window
	Retries *Window

	packets DeltaSampler
}

// NewDetailSeries creates the signal, packet-rate and retry-rate histories.
func NewDetailSeries(capacity int) *DetailSeries {
	return &DetailSeries{
		Signal:  NewWindow(capacity, NoSignal),
		Packets: NewWindow(capacity, 0),
		Retries: NewWindow(capacity, 0),
	}
}

func (s *DetailSeries) push(sample Sample) {
	s.Signal.Push(sample.Signal)
	s.Packets.Push(int(s.packets.Sample(sample.Packets)))
	s.Retries.Push(sample.Retries)
}

func (s *DetailSeries) reset() {
	s.Signal.Reset()
	s.Packets.Reset()
	s.Retries.Reset()
	s.packets.Reset()
}

// SampleFunc extracts graph readings from an entity.
type SampleFunc func(Entity) Sample

// Refresher is the per-panel refresh core: it owns a Tracker and the
// panel's series, and is the only place series get reset.
type Refresher struct {
	tracker Tracker
	series  *DetailSeries
	sample  SampleFunc
}

// NewRefresher creates a refresher with fresh series.
func NewRefresher(capacity int, sample SampleFunc) *Refresher {
	return &Refresher{
		series: NewDetailSeries(capacity),
		sample: sample,
	}
}

// Tick runs one refresh cycle against the current selection.
func (r *Refresher) Tick(current Entity) Action {
	action := r.tracker.Observe(current)
	switch action {
	case NoOp:
		return action
	case ResetAndUpdate:
		r.series.reset()
	}

	if current != nil {
		r.series.push(r.sample(current))
		r.tracker.Commit(current)
	}
	return action
}

// Series returns the panel's histories.
func (r *Refresher) Series() *DetailSeries {
	return r.series
}

// Tracker exposes the selection tracker for the render pass.
func (r *Refresher) Tracker() *Tracker {
	return &r.tracker
}
