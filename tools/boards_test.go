package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBoards(t *testing.T) {
	svc, api := newService()
	api.resp = map[string]any{"boards": []any{map[string]any{"id": "1"}}}

	boards, err := svc.ListBoards(context.Background(), ListBoardsInput{Search: "team", Archived: true})
	require.NoError(t, err)
	assert.Len(t, boards, 1)

	c := api.last(t)
	assert.Equal(t, http.MethodGet, c.method)
	assert.Equal(t, "/board", c.path)
	assert.Equal(t, "team", c.query.Get("search"))
	assert.Equal(t, "true", c.query.Get("archived"))
	assert.Equal(t, "200", c.query.Get("limit"))
}

func TestGetBoardCardsQuery(t *testing.T) {
	svc, api := newService()
	_, err := svc.GetBoardCards(context.Background(), BoardCardsInput{
		BoardID:           "10",
		Lanes:             []string{"1", "2"},
		IgnoreArchiveDate: true,
	})
	require.NoError(t, err)

	c := api.last(t)
	assert.Equal(t, "/board/10/card", c.path)
	assert.Equal(t, "1,2", c.query.Get("lanes"))
	assert.Equal(t, "true", c.query.Get("ignoreArchiveDate"))
	assert.Empty(t, c.query.Get("cards"))
}

func TestGetLeafLanesMissingKey(t *testing.T) {
	svc, _ := newService()
	lanes, err := svc.GetLeafLanes(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, []any{}, lanes)
}

func TestCreateBoardDefaults(t *testing.T) {
	svc, api := newService()
	_, err := svc.CreateBoard(context.Background(), CreateBoardInput{Title: "Roadmap", TemplateID: "5"})
	require.NoError(t, err)

	c := api.last(t)
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/board", c.path)
	body := c.body.(map[string]any)
	assert.Equal(t, "Roadmap", body["title"])
	assert.Equal(t, BoardRoleNone, body["sharedBoardRole"])
	assert.Equal(t, "5", body["templateId"])
	assert.NotContains(t, body, "description")
}

func TestCreateBoardValidation(t *testing.T) {
	svc, api := newService()

	_, err := svc.CreateBoard(context.Background(), CreateBoardInput{})
	assert.Error(t, err)

	_, err = svc.CreateBoard(context.Background(), CreateBoardInput{Title: "x", SharedBoardRole: "owner"})
	assert.Error(t, err)

	assert.Empty(t, api.calls)
}

func TestUpdateBoardRequiresFields(t *testing.T) {
	svc, api := newService()
	_, err := svc.UpdateBoard(context.Background(), "1", Fields{})
	assert.Error(t, err)
	assert.Empty(t, api.calls)

	_, err = svc.UpdateBoard(context.Background(), "1", Fields{"base_wip_on_card_size": true})
	require.NoError(t, err)
	c := api.last(t)
	assert.Equal(t, http.MethodPatch, c.method)
	assert.Equal(t, map[string]any{"baseWipOnCardSize": true}, c.body)
}

func TestBoardActions(t *testing.T) {
	ctx := context.Background()
	svc, api := newService()

	require.NoError(t, svc.ArchiveBoard(ctx, "1"))
	assert.Equal(t, "/board/1/archive", api.last(t).path)

	require.NoError(t, svc.UnarchiveBoard(ctx, "1"))
	assert.Equal(t, "/board/1/unarchive", api.last(t).path)

	require.NoError(t, svc.DeleteBoard(ctx, "1"))
	assert.Equal(t, http.MethodDelete, api.last(t).method)
}

func TestGetBoardActivity(t *testing.T) {
	svc, api := newService()
	api.resp = map[string]any{"events": []any{"e1", "e2"}}

	events, err := svc.GetBoardActivity(context.Background(), BoardActivityInput{BoardID: "1", EventID: "99"})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	c := api.last(t)
	assert.Equal(t, "/board/1/activity", c.path)
	assert.Equal(t, "older", c.query.Get("direction"))
	assert.Equal(t, "100", c.query.Get("limit"))
	assert.Equal(t, "99", c.query.Get("eventId"))
	assert.False(t, c.query.Has("offset"))

	_, err = svc.GetBoardActivity(context.Background(), BoardActivityInput{BoardID: "1", Direction: "sideways"})
	assert.Error(t, err)
}
