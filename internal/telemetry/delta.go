package telemetry

// DeltaSampler turns a cumulative counter into per-tick deltas.
//
// The baseline starts unset. The first sample after construction or Reset
// is returned as-is instead of being subtracted from an assumed zero.
// Decreasing counters (a reconnect, a server restart) yield negative deltas;
// they are passed through so the caller can see the discontinuity.
type DeltaSampler struct {
	prev   int64
	primed bool
}

// Sample records a cumulative value and returns the delta since the last one.
func (d *DeltaSampler) Sample(cumulative int64) int64 {
	if !d.primed {
		d.prev = cumulative
		d.primed = true
		return cumulative
	}
	delta := cumulative - d.prev
	d.prev = cumulative
	return delta
}

// Reset re-arms the unset baseline.
func (d *DeltaSampler) Reset() {
	d.prev = 0
	d.primed = false
}

// Primed reports whether a baseline has been recorded.
func (d *DeltaSampler) Primed() bool {
	return d.primed
}
