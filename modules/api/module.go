package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-list-service/modules/activity"
	"github.com/example/task-list-service/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const requestIDKey = "requestid"

// Config holds HTTP server settings.
type Config struct {
	Addr               string
	CORSAllowedOrigins string
	AccessLog          bool
}

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the core domain (task module) via the TaskPort interface.
type APIModule struct {
	config       Config
	app          *fiber.App
	taskPort     task.TaskPort
	activityPort activity.ActivityPort
	logger       types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(config Config, logger types.Logger) *APIModule {
	return &APIModule{
		config: config,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
// The framework will call SetDependencyServiceContainer for each dependency.
func (m *APIModule) Dependencies() []string {
	return []string{"task", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

// Start builds the Fiber app and begins serving.
// Returns an error if required dependencies are not set or the listener fails.
func (m *APIModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}
	if m.activityPort == nil {
		return fmt.Errorf("activityPort dependency not set")
	}

	m.app = m.newApp()

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.config.Addr); err != nil {
			errCh <- err
		}
	}()

	// Wait briefly to catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.config.Addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.config.Addr,
		},
	}
}

// newApp creates the Fiber app with middleware and routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task List Service",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	if m.config.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	if m.config.CORSAllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: m.config.CORSAllowedOrigins,
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Content-Type",
		}))
	}

	m.setupRoutes(app)
	return app
}
