package telemetry

// Entity is a selectable record owned by an external store: a network
// group, a client, or anything else with a stable identity.
type Entity interface {
	// Key identifies the entity across ticks (e.g. a BSSID).
	Key() string
	// LastModified is the entity's last update time in unix seconds.
	LastModified() int64
}

// Action is the outcome of a selection check.
type Action int

const (
	// NoOp means nothing changed; skip all downstream work.
	NoOp Action = iota
	// ResetAndUpdate means the identity changed; clear history, then sample.
	ResetAndUpdate
	// UpdateOnly means the same entity has newer data; append samples.
	UpdateOnly
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case NoOp:
		return "noop"
	case ResetAndUpdate:
		return "reset"
	case UpdateOnly:
		return "update"
	default:
		return "unknown"
	}
}

// Tracker decides whether the currently selected entity needs a refresh.
//
// The watermark is the last-modified time of the last entity state that was
// consumed. It only moves on Commit, so repeated NoOp observations never
// touch it.
type Tracker struct {
	key       string
	tracking  bool
	watermark int64
	dirty     bool
}

// Observe compares current against the tracked identity and watermark.
// A nil current means nothing is selected. Callers holding a typed nil
// pointer must pass an untyped nil.
func (t *Tracker) Observe(current Entity) Action {
	if current == nil {
		if !t.tracking {
			return NoOp
		}
		t.key = ""
		t.tracking = false
		t.watermark = 0
		t.dirty = true
		return ResetAndUpdate
	}

	key := current.Key()
	if !t.tracking || key != t.key {
		t.key = key
		t.tracking = true
		t.watermark = 0
		t.dirty = true
		return ResetAndUpdate
	}

	if current.LastModified() > t.watermark {
		t.dirty = true
		return UpdateOnly
	}

	return NoOp
}

// Commit advances the watermark once the caller has consumed current.
func (t *Tracker) Commit(current Entity) {
	if current == nil {
		return
	}
	t.watermark = current.LastModified()
}

// Tracking returns the tracked identity key, if any.
func (t *Tracker) Tracking() (string, bool) {
	return t.key, t.tracking
}

// Watermark returns the last consumed modification time.
func (t *Tracker) Watermark() int64 {
	return t.watermark
}

// TakeDirty reports whether any observation since the last call produced
// work, and clears the flag. The render pass uses it to decide whether to
// rebuild detail rows.
func (t *Tracker) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}
