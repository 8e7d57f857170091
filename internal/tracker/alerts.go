package tracker

import (
	"time"

	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// DefaultAlertBacklog is how many alerts the log keeps.
const DefaultAlertBacklog = 50

// AlertLog is the append-only alert backlog. The oldest entries fall off
// once the backlog is full.
type AlertLog struct {
	alerts  []*telemetry.Alert
	backlog int
}

// NewAlertLog creates a log keeping at most backlog alerts.
func NewAlertLog(backlog int) *AlertLog {
	if backlog <= 0 {
		backlog = DefaultAlertBacklog
	}
	return &AlertLog{backlog: backlog}
}

// Apply decodes an ALERT record and appends it.
func (l *AlertLog) Apply(fields []string) error {
	a, err := proto.DecodeAlert(fields)
	if err != nil {
		return err
	}
	l.Append(a)
	return nil
}

// Append adds an alert, evicting the oldest when full.
func (l *AlertLog) Append(a *telemetry.Alert) {
	l.alerts = append(l.alerts, a)
	if over := len(l.alerts) - l.backlog; over > 0 {
		l.alerts = append([]*telemetry.Alert(nil), l.alerts[over:]...)
	}
}

// Alerts returns the backlog in arrival order. Callers must not modify it.
func (l *AlertLog) Alerts() []*telemetry.Alert {
	return l.alerts
}

// Len returns the number of alerts held.
func (l *AlertLog) Len() int {
	return len(l.alerts)
}

// Clear empties the backlog.
func (l *AlertLog) Clear() {
	l.alerts = nil
}

// AlertColumns are the titles of the alert list.
var AlertColumns = []string{"Time", "Type", "BSSID", "Alert"}

// AlertRow renders one alert for the list, with the time in local HH:MM:SS.
func AlertRow(a *telemetry.Alert) []string {
	return []string{
		time.Unix(a.Sec, a.Usec*1000).Format("15:04:05"),
		a.Category,
		a.Origin,
		a.Text,
	}
}
