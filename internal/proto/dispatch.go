package proto

import (
	"fmt"

	"github.com/rileyhilliard/rfdash/internal/logger"
)

// Handler consumes the fields of one record.
type Handler func(fields []string) error

type route struct {
	minFields int
	handle    Handler
}

// Dispatcher routes decoded records to handlers by type.
type Dispatcher struct {
	routes map[string]route
	log    logger.Logger

	// Counters for the status line.
	Handled int
	Short   int
	Failed  int
}

// NewDispatcher creates an empty dispatcher. A nil logger discards output.
func NewDispatcher(log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Noop()
	}
	return &Dispatcher{
		routes: make(map[string]route),
		log:    log,
	}
}

// Register binds a handler to a record type. Records with fewer than
// minFields fields are dropped before reaching the handler.
func (d *Dispatcher) Register(typ string, minFields int, h Handler) {
	d.routes[typ] = route{minFields: minFields, handle: h}
}

// Types lists the registered record types.
func (d *Dispatcher) Types() []string {
	out := make([]string, 0, len(d.routes))
	for typ := range d.routes {
		out = append(out, typ)
	}
	return out
}

// Dispatch parses one line and hands it to its handler. Lines that are not
// records, unregistered types and short records are skipped silently.
// Handler errors are logged and returned; they never stop the feed.
func (d *Dispatcher) Dispatch(line string) error {
	rec, ok := ParseLine(line)
	if !ok {
		return nil
	}

	r, ok := d.routes[rec.Type]
	if !ok {
		return nil
	}

	if len(rec.Fields) < r.minFields {
		d.Short++
		d.log.Debug("short %s record: %d of %d fields", rec.Type, len(rec.Fields), r.minFields)
		return nil
	}

	if err := r.handle(rec.Fields); err != nil {
		d.Failed++
		d.log.Warn("%s record: %v", rec.Type, err)
		return fmt.Errorf("%s: %w", rec.Type, err)
	}

	d.Handled++
	return nil
}
