package api

import (
	"strconv"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/gofiber/fiber/v2"
)

const livenessMessage = "ToDo API is running"

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/", m.status)
	app.Get("/activity", m.listActivity)

	tasks := app.Group("/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Patch("/:id/complete", m.completeTask)
	tasks.Delete("/:id", m.deleteTask)
}

// status handles GET /
func (m *APIModule) status(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: "ok", Message: livenessMessage})
}

// createTask handles POST /tasks
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return validationFailed(c, "Request body must be a JSON object with a string title")
	}
	if req.Title == nil {
		return validationFailed(c, "Title is required")
	}

	input := domain.NewTask{Title: *req.Title, Description: req.Description}
	if err := input.Validate(); err != nil {
		return writeError(c, err)
	}

	created, err := m.taskPort.CreateTask(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(created))
}

// listTasks handles GET /tasks
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.taskPort.ListTasks(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTaskResponses(tasks))
}

// completeTask handles PATCH /tasks/:id/complete
func (m *APIModule) completeTask(c *fiber.Ctx) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, err)
	}

	completed, err := m.taskPort.CompleteTask(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTaskResponse(completed))
}

// deleteTask handles DELETE /tasks/:id
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, err)
	}

	deleted, err := m.taskPort.DeleteTask(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTaskResponse(deleted))
}

// listActivity handles GET /activity
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return validationFailed(c, "Limit must be a non-negative integer")
		}
		limit = n
	}

	entries, err := m.activityPort.ListActivity(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ActivityResponse{Entries: entries, Total: len(entries)})
}

// parseTaskID reads the :id route parameter as a positive integer.
func parseTaskID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "id", Message: "Task id must be a positive integer"}
	}
	return id, nil
}
