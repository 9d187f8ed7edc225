package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// ScheduleRequest is the payload for creating or updating a schedule.
// The cron fields take standard cron syntax, e.g. "*/5".
type ScheduleRequest struct {
	Name           string `json:"name" validate:"required"`
	Minute         string `json:"minute" validate:"required"`
	Hour           string `json:"hour" validate:"required"`
	DayOfMonth     string `json:"day_of_month" validate:"required"`
	Month          string `json:"month" validate:"required"`
	DayOfWeek      string `json:"day_of_week" validate:"required"`
	IsActive       bool   `json:"is_active"`
	OnlyWhenOnline bool   `json:"only_when_online"`
}

// TaskRequest is the payload for creating or updating a schedule task.
// Payload is a console command, a power signal, or ignored for backups.
type TaskRequest struct {
	Action            string `json:"action" validate:"required,oneof=command power backup"`
	Payload           string `json:"payload" validate:"required_unless=Action backup"`
	TimeOffset        int    `json:"time_offset" validate:"gte=0,lte=900"`
	ContinueOnFailure bool   `json:"continue_on_failure"`
}

func schedulesRoute(serverID string, segments ...any) string {
	return endpoint.Route(servers, append([]any{serverID, "schedules"}, segments...)...)
}

func (c *Client) ListSchedules(ctx context.Context, serverID string) (*resource.List[Schedule], error) {
	return endpoint.List[Schedule](ctx, c.caller, endpoint.Call{
		Op:     "list schedules",
		Method: http.MethodGet,
		Route:  schedulesRoute(serverID),
	})
}

func (c *Client) CreateSchedule(ctx context.Context, serverID string, req ScheduleRequest) (*Schedule, error) {
	return endpoint.Attributes[Schedule](ctx, c.caller, endpoint.Call{
		Op:      "create schedule",
		Method:  http.MethodPost,
		Route:   schedulesRoute(serverID),
		Payload: req,
	})
}

func (c *Client) ScheduleDetails(ctx context.Context, serverID string, scheduleID int) (*Schedule, error) {
	return endpoint.Attributes[Schedule](ctx, c.caller, endpoint.Call{
		Op:     "schedule details",
		Method: http.MethodGet,
		Route:  schedulesRoute(serverID, scheduleID),
	})
}

// UpdateSchedule replaces every field of the schedule. The panel
// takes updates as a POST.
func (c *Client) UpdateSchedule(ctx context.Context, serverID string, scheduleID int, req ScheduleRequest) (*Schedule, error) {
	return endpoint.Attributes[Schedule](ctx, c.caller, endpoint.Call{
		Op:      "update schedule",
		Method:  http.MethodPost,
		Route:   schedulesRoute(serverID, scheduleID),
		Payload: req,
	})
}

func (c *Client) DeleteSchedule(ctx context.Context, serverID string, scheduleID int) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete schedule",
		Method: http.MethodDelete,
		Route:  schedulesRoute(serverID, scheduleID),
	})
}

func (c *Client) CreateTask(ctx context.Context, serverID string, scheduleID int, req TaskRequest) (*Task, error) {
	return endpoint.Attributes[Task](ctx, c.caller, endpoint.Call{
		Op:      "create task",
		Method:  http.MethodPost,
		Route:   schedulesRoute(serverID, scheduleID, "tasks"),
		Payload: req,
	})
}

func (c *Client) UpdateTask(ctx context.Context, serverID string, scheduleID, taskID int, req TaskRequest) (*Task, error) {
	return endpoint.Attributes[Task](ctx, c.caller, endpoint.Call{
		Op:      "update task",
		Method:  http.MethodPost,
		Route:   schedulesRoute(serverID, scheduleID, "tasks", taskID),
		Payload: req,
	})
}

func (c *Client) DeleteTask(ctx context.Context, serverID string, scheduleID, taskID int) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete task",
		Method: http.MethodDelete,
		Route:  schedulesRoute(serverID, scheduleID, "tasks", taskID),
	})
}
