// Package health serves liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process is up.
// [ReadinessHandler] runs a set of named [Checks] concurrently under one
// timeout and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"jobs":     job.Healthcheck(manager),
//	}))
//
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json".
package health
