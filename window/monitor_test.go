package window

import (
	"strings"
	"testing"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/backend/headless"
)

func TestAvailableMonitorsOf_Snapshot(t *testing.T) {
	be := headless.New(headless.WithMonitors(
		headless.Monitor{ID: 1, Label: "A", Width: 1920, Height: 1080},
		headless.Monitor{ID: 2, Label: "B", Width: 1280, Height: 1024},
	))

	it := AvailableMonitorsOf(be)
	be.SetMonitors(headless.Monitor{ID: 9, Width: 800, Height: 600})

	lower, upper, bounded := it.SizeHint()
	if lower != 2 || upper != 2 || !bounded {
		t.Fatalf("expected exact hint 2, got %d %d %v", lower, upper, bounded)
	}

	var names []string
	for m := range it.All() {
		name, ok := m.Name()
		if !ok {
			t.Fatalf("expected named monitor")
		}
		names = append(names, name)
	}
	if strings.Join(names, ",") != "A,B" {
		t.Fatalf("snapshot changed: %v", names)
	}
	if _, ok := it.Next(); ok {
		t.Fatalf("iterator should not restart")
	}
	if lower, _, _ := it.SizeHint(); lower != 0 {
		t.Fatalf("expected exhausted hint, got %d", lower)
	}

	fresh := AvailableMonitorsOf(be)
	m, ok := fresh.Next()
	if !ok {
		t.Fatalf("expected a monitor in the new snapshot")
	}
	if w, h := m.Dimensions(); w != 800 || h != 600 {
		t.Fatalf("new snapshot should see the new monitor, got %dx%d", w, h)
	}
}

func TestPrimaryMonitorOf(t *testing.T) {
	be := headless.New(
		headless.WithMonitors(
			headless.Monitor{ID: 1, Label: "A", Width: 1920, Height: 1080},
			headless.Monitor{ID: 2, Label: "B", Width: 3840, Height: 2160},
		),
		headless.WithPrimary(1),
	)

	primary := PrimaryMonitorOf(be)
	if name, _ := primary.Name(); name != "B" {
		t.Fatalf("expected B, got %q", name)
	}
	id := primary.NativeIdentifier()
	if id.Kind != backend.MonitorIDNumeric || id.Numeric != 2 {
		t.Fatalf("unexpected native id %+v", id)
	}
	if !strings.Contains(primary.String(), "3840x2160") {
		t.Fatalf("unexpected String %q", primary.String())
	}
}

func TestMonitorID_Zero(t *testing.T) {
	var id MonitorID
	if _, ok := id.Name(); ok {
		t.Fatalf("zero id should have no name")
	}
	if w, h := id.Dimensions(); w != 0 || h != 0 {
		t.Fatalf("zero id should have no dimensions")
	}
	if id.NativeIdentifier().Kind != backend.MonitorIDUnavailable {
		t.Fatalf("zero id should have no native identifier")
	}
	if id.Backend() != nil {
		t.Fatalf("zero id should have no backend monitor")
	}
}

func TestDefaultBackendMonitors(t *testing.T) {
	SetDefaultBackend(headless.New())
	t.Cleanup(func() { SetDefaultBackend(nil) })

	it, err := AvailableMonitors()
	if err != nil {
		t.Fatalf("available monitors: %v", err)
	}
	if lower, _, _ := it.SizeHint(); lower != 1 {
		t.Fatalf("expected one monitor, got %d", lower)
	}
	primary, err := PrimaryMonitor()
	if err != nil {
		t.Fatalf("primary monitor: %v", err)
	}
	if name, _ := primary.Name(); name != headless.DefaultMonitor.Label {
		t.Fatalf("unexpected primary %q", name)
	}
}

func TestDefaultBackend_FromConfig(t *testing.T) {
	SetDefaultBackend(nil)
	t.Cleanup(func() { SetDefaultBackend(nil) })
	t.Setenv("WINKIT_CONFIG", t.TempDir()+"/missing.yaml")
	t.Setenv("WINKIT_BACKEND", "headless")

	be, err := DefaultBackend()
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := be.(*headless.Backend); !ok {
		t.Fatalf("expected headless backend from env, got %T", be)
	}
	again, _ := DefaultBackend()
	if again != be {
		t.Fatalf("default backend should be opened once")
	}
}
