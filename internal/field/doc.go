// Package field implements the ambient particle backdrop.
//
// A [Field] owns a fixed set of particles and draws them on a
// [surface.Surface] once per refresh, then asks its [frame.Scheduler] for the
// next refresh. Each frame advances every particle, wraps it toroidally into
// the surface bounds, draws it as a pulsing glowing dot and connects every
// pair closer than [Params.LinkDistance] with a faint line.
//
// # Lifecycle
//
// A field is either [Stopped] or [Running]:
//
//	f, _ := field.New(field.DefaultParams(), rng)
//	_ = f.Mount(host, queue) // Stopped -> Running, particles seeded
//	host resize              // Running, surface resized, particles kept
//	f.Unmount()              // Running -> Stopped, frame cancelled
//
// No frame runs after Unmount: the pending handle is cancelled and a stale
// callback that still fires finds the field stopped and draws nothing.
//
// # Cost
//
// The link pass compares every unordered pair, so a frame costs O(N²).
// Particle counts are capped at [MaxParticles].
//
// # Thread Safety
//
// Field is NOT thread-safe. Mount, Resize, Unmount and the frame callbacks
// must all run on the render loop that pumps the scheduler.
package field
