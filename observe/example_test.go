package observe_test

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonwraymond/authgate/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "example-service",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: false},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	fmt.Println("Observer created successfully")
	// Output:
	// Observer created successfully
}

func ExampleNewObserver_validation() {
	// Missing service name triggers validation error
	cfg := observe.Config{
		ServiceName: "", // Empty - will fail validation
	}

	ctx := context.Background()
	_, err := observe.NewObserver(ctx, cfg)
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName: "my-service",
		Version:     "1.0.0",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 0.5, // 50% sampling
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid:", err)
		return
	}
	fmt.Println("Configuration is valid")
	// Output:
	// Configuration is valid
}

func ExampleLogger_withRequest() {
	logger := observe.NewLoggerWithWriter("info", io.Discard)

	reqLogger := logger.WithRequest(observe.RequestMeta{
		Path:   "/app/user/profile",
		Method: "GET",
		Class:  "mandatory",
	})

	// Every line carries path, method, and class without repeating them.
	reqLogger.Info(context.Background(), "request allowed",
		observe.Field{Key: "userId", Value: "u-1"},
	)

	fmt.Println("logged")
	// Output:
	// logged
}
