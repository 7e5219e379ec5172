package gate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonwraymond/authgate/observe"
	"github.com/jonwraymond/authgate/policy"
	"github.com/jonwraymond/authgate/token"
)

// Header names the gate reads credentials from.
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-Key"
)

// Options carries the gate's optional observability wiring. Zero-value
// fields default to no-op implementations.
type Options struct {
	Logger  observe.Logger
	Metrics observe.Metrics
	Tracer  observe.Tracer
	Audit   *observe.Audit
}

// Gate authenticates and authorizes requests against a compiled rule
// set and a token codec. Both are immutable after construction, so the
// request path takes no locks.
type Gate struct {
	rules   *policy.RuleSet
	codec   *token.Codec
	logger  observe.Logger
	metrics observe.Metrics
	tracer  observe.Tracer
	audit   *observe.Audit
}

// New creates a Gate. The rule set must already be compiled.
func New(rules *policy.RuleSet, codec *token.Codec, opts Options) (*Gate, error) {
	if rules == nil {
		return nil, errors.New("gate: rule set is required")
	}
	if codec == nil {
		return nil, errors.New("gate: token codec is required")
	}

	g := &Gate{
		rules:   rules,
		codec:   codec,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		audit:   opts.Audit,
	}
	if g.logger == nil {
		g.logger = observe.NoopLogger()
	}
	if g.metrics == nil {
		g.metrics = observe.NoopMetrics()
	}
	if g.tracer == nil {
		g.tracer = observe.NewNoopTracer()
	}
	if g.audit == nil {
		g.audit = observe.NewAudit(nil)
	}
	return g, nil
}

// Authenticate runs the gate state machine for one request. header
// returns the value of a request header, or empty string.
//
// On rejection the returned error is always a *Error carrying the HTTP
// status and wire code. A nil error with Authenticated=false means the
// request may proceed anonymously (excluded path, or optional path
// without a credential).
func (g *Gate) Authenticate(ctx context.Context, path, method string, header func(string) string) (*Decision, error) {
	start := time.Now()

	class := g.rules.Classify(path)
	meta := observe.RequestMeta{Path: path, Method: method, Class: class.String()}

	ctx, span := g.tracer.StartSpan(ctx, meta)

	decision, err := g.decide(ctx, class, meta, header)

	elapsed := time.Since(start)
	g.tracer.EndSpan(span, err)

	var recordErr error
	if err != nil {
		recordErr = err
		g.audit.AuthFailure(ctx, meta, rejectionReason(err), elapsed)
	} else if decision.Authenticated {
		meta.Subject = decision.Subject()
		g.audit.AuthSuccess(ctx, meta, decision.Role(), elapsed)
	}
	g.metrics.RecordDecision(ctx, meta, elapsed, recordErr)

	if err != nil {
		return nil, err
	}
	return decision, nil
}

func (g *Gate) decide(ctx context.Context, class policy.Class, meta observe.RequestMeta, header func(string) string) (*Decision, error) {
	switch class {
	case policy.ClassExcluded:
		return &Decision{}, nil

	case policy.ClassAPIKey:
		return g.verifyAPIKey(header(HeaderAPIKey))

	case policy.ClassOptional:
		return g.verifyBearer(header(HeaderAuthorization), false)

	default: // policy.ClassMandatory
		return g.verifyBearer(header(HeaderAuthorization), true)
	}
}

func (g *Gate) verifyAPIKey(key string) (*Decision, error) {
	if key == "" {
		return nil, missingCredential("api key required")
	}

	claims, err := g.codec.Verify(key, token.KindAPIKey)
	if err != nil {
		return nil, apiKeyInvalid(err)
	}

	// Service identities carry no role permissions; access to api-key
	// prefixed paths is granted by the key itself.
	return &Decision{Authenticated: true, Identity: claims}, nil
}

func (g *Gate) verifyBearer(raw string, mandatory bool) (*Decision, error) {
	if raw == "" {
		if mandatory {
			return nil, missingCredential("access token required")
		}
		return &Decision{}, nil
	}

	// A present-but-invalid token rejects even on optional paths: a
	// caller who sends a credential gets it checked.
	claims, err := g.codec.Verify(bearerToken(raw), token.KindAccess)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, tokenExpired(err)
		}
		return nil, tokenInvalid(err)
	}

	return &Decision{
		Authenticated: true,
		Identity:      claims,
		Permissions:   g.rules.PermissionsFor(claims.Role),
	}, nil
}

// bearerToken strips the "Bearer " scheme prefix. Headers without the
// prefix are treated as the bare token.
func bearerToken(raw string) string {
	if tok, found := strings.CutPrefix(raw, "Bearer "); found {
		return tok
	}
	return raw
}

func rejectionReason(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return err.Error()
}
