package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCardsBulk(t *testing.T) {
	svc, api := newService()
	_, err := svc.UpdateCardsBulk(context.Background(), []string{"1", "2"}, Fields{"planned_finish": "2024-06-01"})
	require.NoError(t, err)

	call := api.last(t)
	assert.Equal(t, "/card/bulk", call.path)
	assert.Equal(t, map[string]any{
		"cardIds": []string{"1", "2"},
		"updates": map[string]any{"plannedFinish": "2024-06-01"},
	}, call.body)

	_, err = svc.UpdateCardsBulk(context.Background(), nil, Fields{"title": "x"})
	assert.Error(t, err)
}

func TestMoveCardsBulkReportsEveryInvalidMove(t *testing.T) {
	svc, api := newService()
	neg := -1
	_, err := svc.MoveCardsBulk(context.Background(), []CardMove{
		{CardID: "1", LaneID: "2"},
		{CardID: "", LaneID: "2"},
		{CardID: "3", LaneID: "2", Position: &neg},
	})
	require.Error(t, err)
	assert.Empty(t, api.calls)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "moves[1]")
	assert.Contains(t, err.Error(), "moves[2]")
}

func TestMoveCardsBulkConnectedCards(t *testing.T) {
	svc, api := newService()
	_, err := svc.MoveCardsBulk(context.Background(), []CardMove{
		{CardID: "1", LaneID: "2", MoveChildren: true},
		{CardID: "3", LaneID: "2"},
	})
	require.NoError(t, err)

	call := api.last(t)
	assert.Equal(t, "/card/bulk/move", call.path)
	b, err := json.Marshal(call.body)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"moves":[{"cardId":"1","laneId":"2","moveChildren":true},{"cardId":"3","laneId":"2"}]}`,
		string(b))
}

func TestCreateCardsBulk(t *testing.T) {
	svc, api := newService()
	_, err := svc.CreateCardsBulk(context.Background(), []CreateCardInput{
		{BoardID: "1", LaneID: "2", Title: "a"},
		{BoardID: "1", LaneID: "2", Title: "b"},
	})
	require.NoError(t, err)

	cards := api.last(t).body.(map[string]any)["cards"].([]map[string]any)
	require.Len(t, cards, 2)
	assert.Equal(t, "b", cards[1]["title"])

	_, err = svc.CreateCardsBulk(context.Background(), nil)
	assert.Error(t, err)
}

func TestAssignMembersBulkDefaultsRole(t *testing.T) {
	svc, api := newService()
	err := svc.AssignMembersBulk(context.Background(), BoardAccessInput{
		BoardIDs: []string{"1"},
		UserIDs:  []string{"u"},
	})
	require.NoError(t, err)

	call := api.last(t)
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/board/access", call.path)
	assert.Equal(t, BoardRoleUser, call.body.(map[string]any)["boardRole"])
}

func TestRemoveMembersBulk(t *testing.T) {
	svc, api := newService()

	err := svc.RemoveMembersBulk(context.Background(), BoardAccessInput{
		BoardIDs: []string{"1"},
		Emails:   []string{"not-an-email"},
	})
	assert.Error(t, err)
	assert.Empty(t, api.calls)

	err = svc.RemoveMembersBulk(context.Background(), BoardAccessInput{
		BoardIDs: []string{"1"},
		Emails:   []string{"dev@example.com"},
	})
	require.NoError(t, err)
	call := api.last(t)
	assert.Equal(t, http.MethodDelete, call.method)
	assert.Equal(t, []string{"dev@example.com"}, call.body.(map[string]any)["emails"])
	assert.NotContains(t, call.body.(map[string]any), "boardRole")
}

func TestManageDependenciesBulk(t *testing.T) {
	svc, api := newService()
	_, err := svc.ManageDependenciesBulk(context.Background(), []DependencyInput{
		{CardID: "1", DependsOnCardID: "2"},
		{CardID: "3", DependsOnCardID: "4", Type: StartToFinish},
	})
	require.NoError(t, err)

	deps := api.last(t).body.(map[string]any)["dependencies"].([]DependencyInput)
	assert.Equal(t, FinishToStart, deps[0].Type)
	assert.Equal(t, StartToFinish, deps[1].Type)
}

func TestRelationshipBulkRequiresInput(t *testing.T) {
	svc, api := newService()
	_, err := svc.UpdateCardRelationshipsBulk(context.Background(), nil)
	assert.Error(t, err)
	_, err = svc.ManageConnectionsBulk(context.Background(), nil)
	assert.Error(t, err)
	assert.Empty(t, api.calls)
}
