// Package health reports whether the gateway is able to authenticate
// requests.
//
// A Checker is any component that can report its health status; the
// Status type represents the state: Healthy, Degraded, or Unhealthy.
// The gateway ships domain checkers for its three startup-critical
// components: the signing secret, the policy rule set, and the user
// store.
//
// Use Aggregator to combine checks and the HTTP handlers to expose
// them:
//
//	agg := health.NewAggregator()
//	agg.Register("signing_secret", health.SigningSecretChecker(cfg.SigningSecret()))
//	agg.Register("policy", health.PolicyChecker(rules))
//	agg.Register("user_store", health.UserStoreChecker(store))
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(agg))
//
//	// Detailed health status
//	http.Handle("/health", health.DetailedHandler(agg))
package health
