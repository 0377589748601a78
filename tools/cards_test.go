package tools

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCardsSince(t *testing.T) {
	svc, api := newService()
	since := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	_, err := svc.ListCards(context.Background(), ListCardsInput{BoardID: "1", Since: since, Only: []string{"id", "title"}})
	require.NoError(t, err)

	c := api.last(t)
	assert.Equal(t, "/card", c.path)
	assert.Equal(t, "1", c.query.Get("board"))
	assert.Equal(t, "2024-03-01T11:00:00Z", c.query.Get("since"))
	assert.Equal(t, "id,title", c.query.Get("only"))
}

func TestCreateCardPayload(t *testing.T) {
	svc, api := newService()
	size := 3
	_, err := svc.CreateCard(context.Background(), CreateCardInput{
		BoardID:        "1",
		LaneID:         "2",
		Title:          "Ship it",
		Priority:       "high",
		Size:           &size,
		Tags:           []string{"api", "go"},
		ExternalCardID: "EXT-1",
		CustomIconID:   "7",
	})
	require.NoError(t, err)

	c := api.last(t)
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/card", c.path)
	assert.Equal(t, map[string]any{
		"boardId":          "1",
		"laneId":           "2",
		"title":            "Ship it",
		"priority":         "high",
		"size":             3,
		"tags":             "api,go",
		"externalCardID":   "EXT-1",
		"classOfServiceId": "7",
	}, c.body)
}

func TestCreateCardValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateCardInput
	}{
		{"missing title", CreateCardInput{BoardID: "1", LaneID: "2"}},
		{"missing lane", CreateCardInput{BoardID: "1", Title: "t"}},
		{"bad priority", CreateCardInput{BoardID: "1", LaneID: "2", Title: "t", Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api := newService()
			_, err := svc.CreateCard(context.Background(), tt.in)
			assert.Error(t, err)
			assert.Empty(t, api.calls)
		})
	}
}

func TestMoveCard(t *testing.T) {
	svc, api := newService()

	_, err := svc.MoveCard(context.Background(), "5", "9", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"laneId": "9"}, api.last(t).body)

	pos := 0
	_, err = svc.MoveCard(context.Background(), "5", "9", &pos)
	require.NoError(t, err)
	c := api.last(t)
	assert.Equal(t, "/card/5/move", c.path)
	assert.Equal(t, map[string]any{"laneId": "9", "position": 0}, c.body)

	neg := -1
	_, err = svc.MoveCard(context.Background(), "5", "9", &neg)
	assert.Error(t, err)
}

func TestListCardTypesFromBoard(t *testing.T) {
	svc, api := newService()
	api.resp = map[string]any{
		"cardTypes": []any{map[string]any{"id": "1", "name": "Defect"}},
		"tags":      []any{"api"},
	}

	types, err := svc.ListCardTypes(context.Background(), "10")
	require.NoError(t, err)
	assert.Len(t, types, 1)

	tags, err := svc.ListTags(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, []any{"api"}, tags)
	assert.Equal(t, "/board/10", api.last(t).path)
}

func TestAssignMembersRequiresAssignees(t *testing.T) {
	svc, api := newService()
	_, err := svc.AssignMembers(context.Background(), "1", nil, nil)
	assert.Error(t, err)
	assert.Empty(t, api.calls)

	_, err = svc.AssignMembers(context.Background(), "1", []string{"u1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"assignedUserIds": []string{"u1"}}, api.last(t).body)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	svc, api := newService()

	_, err := svc.CreateComment(ctx, "1", "")
	assert.Error(t, err)

	_, err = svc.CreateComment(ctx, "1", "looks good")
	require.NoError(t, err)
	assert.Equal(t, "/card/1/comment", api.last(t).path)

	_, err = svc.UpdateComment(ctx, "1", "2", "edited")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, api.last(t).method)
	assert.Equal(t, "/card/1/comment/2", api.last(t).path)

	require.NoError(t, svc.DeleteComment(ctx, "1", "2"))
	assert.Equal(t, http.MethodDelete, api.last(t).method)
}
