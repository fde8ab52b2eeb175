package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/feed"
)

type feedAPI struct {
	client *Client
}

var _ feed.API = (*feedAPI)(nil) // interface compliance check

func NewFeedAPI(client *Client) feed.API {
	return &feedAPI{client: client}
}

func (api *feedAPI) GetClassroomFeed(ctx context.Context, classroomID int) ([]feed.Item, error) {
	var out []feed.Item
	if err := api.client.get(ctx, fmt.Sprintf("/classrooms/%d/feed", classroomID), nil, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return nil, classroom.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}
