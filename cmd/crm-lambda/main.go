package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/okian/crm/internal/adapters/http/api"
	"github.com/okian/crm/internal/adapters/http/gateway"
	app "github.com/okian/crm/internal/app"
	"github.com/okian/crm/internal/config"
	"github.com/okian/crm/pkg/logger"
)

// The service is built once per execution environment and reused across
// invocations; it is never stopped explicitly.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// JSON lines for CloudWatch.
	if err := logger.Init(logger.WithFormat("json")); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Get()

	svc := app.New(append(app.Options(cfg), app.WithLogger(log))...)
	if err := svc.Start(ctx); err != nil {
		log.Fatal(ctx, "failed to start service", logger.Error(err))
	}

	handler := app.NewHandler(ctx, svc,
		api.WithLogger(log.Named("api")),
		api.WithRequestTimeout(cfg.RequestTimeout),
		api.WithCORS(app.CORSOptions(cfg.CORS)),
	)
	lambda.Start(gateway.New(handler).Serve)
}
