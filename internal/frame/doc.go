// Package frame schedules per-refresh callbacks.
//
// A [Queue] plays the role of a display's "request next frame" facility:
// callers ask for a callback on the next refresh and get a [Handle] back that
// can cancel it. The render loop of each backend owns one queue and pumps it
// once per refresh:
//
//	q := frame.NewQueue()
//	h := q.RequestFrame(func(now time.Time) { ... })
//	q.Pump(time.Now()) // runs the callback
//	q.CancelFrame(h)   // no-op, already ran
//
// # Thread Safety
//
// Queue is NOT thread-safe. It is meant to be driven from a single render
// loop, which is also where every callback runs.
package frame
