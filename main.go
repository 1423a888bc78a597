package main

import (
	"context"
	"log"
	"os"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/example/task-list-service/middleware/servicestats"
	"github.com/example/task-list-service/modules/activity"
	"github.com/example/task-list-service/modules/api"
	"github.com/example/task-list-service/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg := loadConfig()

	log.Println("=== Task List Service ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	logger := app.Logger()

	// Register middleware BEFORE regular modules
	if err := app.Register(servicestats.New(logger)); err != nil {
		log.Fatalf("Failed to register service stats middleware: %v", err)
	}

	// Register modules in dependency order
	modules := []mono.Module{
		activity.NewModule(cfg.ActivityCapacity, logger), // Event consumer (driven adapter)
		task.NewModule(domain.JSTClock{}, logger),        // Core domain
		api.NewModule(api.Config{ // Driving adapter (depends on task, activity)
			Addr:               cfg.Addr(),
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			AccessLog:          cfg.AccessLog,
		}, logger),
	}
	for _, module := range modules {
		if err := app.Register(module); err != nil {
			log.Fatalf("Failed to register %s module: %v", module.Name(), err)
		}
	}

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(cfg)

	// Setup graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg Config) {
	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", cfg.Port)
	log.Println("Endpoints:")
	log.Println("  GET    /                    - Liveness check")
	log.Println("  POST   /tasks               - Create a task")
	log.Println("  GET    /tasks               - List active tasks")
	log.Println("  PATCH  /tasks/:id/complete  - Mark a task completed")
	log.Println("  DELETE /tasks/:id           - Soft-delete a task")
	log.Println("  GET    /activity            - Recent lifecycle activity")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")
}
