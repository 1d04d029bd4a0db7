// Package window creates native windows and delivers their input events
// through one API, whatever platform backend hosts them.
//
// A Builder accumulates the requested window attributes and hands them to a
// backend.Backend, which materializes a Window:
//
//	w, err := window.NewBuilder().
//		WithDimensions(800, 600).
//		WithTitle("demo").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	for ev := range w.WaitEvents().All() {
//		if _, ok := ev.(event.Closed); ok {
//			break
//		}
//	}
//
// A Window and its iterators belong to the goroutine that drives it. The only
// value meant for other goroutines is the Proxy returned by CreateProxy, whose
// WakeupEventLoop unblocks a pending WaitIterator.Next.
//
// Unless Builder.WithBackend injects one, windows and monitor queries use the
// process default backend: the native backend for the build target, or the
// one named in the winkit configuration file.
package window
