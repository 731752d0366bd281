// Package trace records where brilcfg spends its time.
//
// Tracing is off by default. Enable it from the command line:
//
//	brilcfg cfg --trace=- --trace-level=phase prog.json
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved for failures
//   - LevelPhase: driver steps and builder passes
//   - LevelDetail: per-file and per-block events
//   - LevelDebug: everything
//
// # Context propagation
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "form-blocks", parentID)
//	defer span.End("")
package trace
