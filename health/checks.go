package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/authgate/policy"
	"github.com/jonwraymond/authgate/userstore"
)

// SigningSecretChecker verifies the HS256 signing secret is configured.
// Without it every token verification fails, so an empty secret is
// unhealthy, not degraded.
func SigningSecretChecker(secret []byte) Checker {
	return NewCheckerFunc("signing_secret", func(context.Context) Result {
		if len(secret) == 0 {
			return Unhealthy("signing secret not configured", ErrCheckFailed)
		}
		return Healthy("signing secret configured").WithDetails(map[string]any{
			"length": len(secret),
		})
	})
}

// PolicyChecker verifies the rule set exists and has been compiled.
func PolicyChecker(rules *policy.RuleSet) Checker {
	return NewCheckerFunc("policy", func(context.Context) Result {
		if rules == nil {
			return Unhealthy("no policy rule set", ErrCheckFailed)
		}
		if !rules.Compiled() {
			return Unhealthy("policy rule set not compiled", ErrCheckFailed)
		}
		return Healthy("policy rule set compiled").WithDetails(map[string]any{
			"exclusions": len(rules.Exclusions),
			"optional":   len(rules.OptionalPaths),
			"api_key":    len(rules.APIKeyPrefixes),
			"roles":      len(rules.RolePermissions),
		})
	})
}

// UserStoreChecker verifies the user store answers lookups. A not-found
// answer proves reachability; only transport or backend errors count as
// failures.
func UserStoreChecker(store userstore.Store) Checker {
	return NewCheckerFunc("user_store", func(ctx context.Context) Result {
		if store == nil {
			return Unhealthy("no user store", ErrCheckFailed)
		}
		_, err := store.FindByID(ctx, "health-probe")
		if err != nil && !errors.Is(err, userstore.ErrNotFound) {
			return Unhealthy(fmt.Sprintf("user store lookup failed: %v", err), err)
		}
		return Healthy("user store reachable")
	})
}
