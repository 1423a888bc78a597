package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityPort reads the activity log from another module.
type ActivityPort interface {
	ListActivity(ctx context.Context, limit int) ([]Entry, error)
}

type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates a port backed by the activity module's services.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &activityAdapter{container: container}
}

// ListActivity fetches entries via the list-activity service.
func (a *activityAdapter) ListActivity(ctx context.Context, limit int) ([]Entry, error) {
	req := ListActivityRequest{Limit: limit}
	var resp ListActivityResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListActivity,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListActivity, err)
	}
	if resp.Entries == nil {
		return []Entry{}, nil
	}
	return resp.Entries, nil
}
