package window

import (
	"fmt"
	"iter"

	"github.com/1broseidon/winkit/backend"
)

// MonitorID identifies a monitor from an enumeration snapshot.
type MonitorID struct {
	m backend.Monitor
}

// NewMonitorID wraps a backend monitor handle.
func NewMonitorID(m backend.Monitor) MonitorID {
	return MonitorID{m: m}
}

// Name returns a human-readable name, if the backend has one.
func (id MonitorID) Name() (string, bool) {
	if id.m == nil {
		return "", false
	}
	return id.m.Name()
}

func (id MonitorID) NativeIdentifier() backend.NativeMonitorID {
	if id.m == nil {
		return backend.NativeMonitorID{}
	}
	return id.m.NativeIdentifier()
}

// Dimensions returns the monitor's current mode in physical pixels.
func (id MonitorID) Dimensions() (width, height uint32) {
	if id.m == nil {
		return 0, 0
	}
	return id.m.Dimensions()
}

// Backend returns the wrapped backend handle.
func (id MonitorID) Backend() backend.Monitor {
	return id.m
}

func (id MonitorID) String() string {
	name, ok := id.Name()
	if !ok {
		name = "unnamed"
	}
	w, h := id.Dimensions()
	return fmt.Sprintf("%s [%s] %dx%d", name, id.NativeIdentifier(), w, h)
}

// MonitorIter walks a fixed snapshot of monitors. It cannot be restarted and
// does not observe later configuration changes.
type MonitorIter struct {
	data []backend.Monitor
}

// Next returns the next monitor, or false when the snapshot is exhausted.
func (it *MonitorIter) Next() (MonitorID, bool) {
	if len(it.data) == 0 {
		return MonitorID{}, false
	}
	m := it.data[0]
	it.data = it.data[1:]
	return MonitorID{m: m}, true
}

// SizeHint returns the exact number of remaining monitors.
func (it *MonitorIter) SizeHint() (lower, upper int, bounded bool) {
	return len(it.data), len(it.data), true
}

// All yields the remaining monitors.
func (it *MonitorIter) All() iter.Seq[MonitorID] {
	return func(yield func(MonitorID) bool) {
		for {
			id, ok := it.Next()
			if !ok || !yield(id) {
				return
			}
		}
	}
}

// AvailableMonitorsOf snapshots the monitors of be.
func AvailableMonitorsOf(be backend.Backend) *MonitorIter {
	return &MonitorIter{data: be.Monitors()}
}

// PrimaryMonitorOf returns be's primary monitor.
func PrimaryMonitorOf(be backend.Backend) MonitorID {
	return MonitorID{m: be.PrimaryMonitor()}
}

// AvailableMonitors snapshots the monitors of the default backend.
func AvailableMonitors() (*MonitorIter, error) {
	be, err := DefaultBackend()
	if err != nil {
		return nil, err
	}
	return AvailableMonitorsOf(be), nil
}

// PrimaryMonitor returns the default backend's primary monitor.
func PrimaryMonitor() (MonitorID, error) {
	be, err := DefaultBackend()
	if err != nil {
		return MonitorID{}, err
	}
	return PrimaryMonitorOf(be), nil
}
