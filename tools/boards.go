package tools

import (
	"context"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Board roles accepted by the sharing and access endpoints.
const (
	BoardRoleNone          = "none"
	BoardRoleReader        = "boardReader"
	BoardRoleUser          = "boardUser"
	BoardRoleManager       = "boardManager"
	BoardRoleAdministrator = "boardAdministrator"
)

var boardRoles = []any{
	BoardRoleNone, BoardRoleReader, BoardRoleUser, BoardRoleManager, BoardRoleAdministrator,
}

type ListBoardsInput struct {
	Search   string
	Limit    int
	Offset   int
	Archived bool
}

// ListBoards returns the boards visible to the authenticated user.
func (s *Service) ListBoards(ctx context.Context, in ListBoardsInput) ([]any, error) {
	q := page(in.Limit, in.Offset, 200)
	if in.Search != "" {
		q.Set("search", in.Search)
	}
	if in.Archived {
		q.Set("archived", "true")
	}

	res, err := s.api.Get(ctx, "/board", q)
	if err != nil {
		return nil, err
	}
	return listField(res, "boards"), nil
}

// GetBoard returns a board with its lanes, card types, custom fields and tags.
func (s *Service) GetBoard(ctx context.Context, boardID string) (any, error) {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/board/"+seg(boardID), nil)
}

type BoardCardsInput struct {
	BoardID           string
	Lanes             []string
	Cards             []string
	Limit             int
	Offset            int
	IgnoreArchiveDate bool
}

// GetBoardCards returns card faces for a board, with pageMeta.
func (s *Service) GetBoardCards(ctx context.Context, in BoardCardsInput) (any, error) {
	if err := requireIDs(map[string]string{"board_id": in.BoardID}); err != nil {
		return nil, err
	}

	q := page(in.Limit, in.Offset, 200)
	if len(in.Lanes) > 0 {
		q.Set("lanes", joinIDs(in.Lanes))
	}
	if len(in.Cards) > 0 {
		q.Set("cards", joinIDs(in.Cards))
	}
	if in.IgnoreArchiveDate {
		q.Set("ignoreArchiveDate", "true")
	}
	return s.api.Get(ctx, "/board/"+seg(in.BoardID)+"/card", q)
}

// GetLeafLanes returns the lanes that can hold cards.
func (s *Service) GetLeafLanes(ctx context.Context, boardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/board/"+seg(boardID)+"/leafLanes", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "lanes"), nil
}

// GetLaneCounts returns card counts and sizes, for all lanes or only lanes.
func (s *Service) GetLaneCounts(ctx context.Context, boardID string, lanes []string) (any, error) {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return nil, err
	}
	q := url.Values{}
	if len(lanes) > 0 {
		q.Set("lanes", joinIDs(lanes))
	}
	return s.api.Get(ctx, "/board/"+seg(boardID)+"/laneCount", q)
}

type CreateBoardInput struct {
	Title                                string
	Description                          string
	IsShared                             bool
	SharedBoardRole                      string
	TemplateID                           string
	FromBoardID                          string
	IncludeCards                         bool
	IncludeExistingUsers                 bool
	BaseWipOnCardSize                    bool
	ExcludeCompletedAndArchiveViolations bool
}

func (in CreateBoardInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.SharedBoardRole, validation.In(boardRoles...)),
	)
}

// CreateBoard creates a board, optionally from a template or another board.
func (s *Service) CreateBoard(ctx context.Context, in CreateBoardInput) (any, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	role := in.SharedBoardRole
	if role == "" {
		role = BoardRoleNone
	}
	payload := map[string]any{
		"title":                                in.Title,
		"isShared":                             in.IsShared,
		"sharedBoardRole":                      role,
		"includeCards":                         in.IncludeCards,
		"includeExistingUsers":                 in.IncludeExistingUsers,
		"baseWipOnCardSize":                    in.BaseWipOnCardSize,
		"excludeCompletedAndArchiveViolations": in.ExcludeCompletedAndArchiveViolations,
	}
	if in.Description != "" {
		payload["description"] = in.Description
	}
	if in.TemplateID != "" {
		payload["templateId"] = in.TemplateID
	}
	if in.FromBoardID != "" {
		payload["fromBoardId"] = in.FromBoardID
	}
	return s.api.Post(ctx, "/board", payload)
}

// UpdateBoard patches board settings.
func (s *Service) UpdateBoard(ctx context.Context, boardID string, fields Fields) (any, error) {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(fields, validation.Required); err != nil {
		return nil, validation.Errors{"fields": err}
	}
	return s.api.Patch(ctx, "/board/"+seg(boardID), fields.Normalize())
}

func (s *Service) ArchiveBoard(ctx context.Context, boardID string) error {
	return s.postBoardAction(ctx, boardID, "archive")
}

// UnarchiveBoard requires the Account Administrator role.
func (s *Service) UnarchiveBoard(ctx context.Context, boardID string) error {
	return s.postBoardAction(ctx, boardID, "unarchive")
}

func (s *Service) postBoardAction(ctx context.Context, boardID, action string) error {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return err
	}
	_, err := s.api.Post(ctx, "/board/"+seg(boardID)+"/"+action, nil)
	return err
}

// DeleteBoard permanently deletes a board.
func (s *Service) DeleteBoard(ctx context.Context, boardID string) error {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/board/"+seg(boardID), nil)
	return err
}

// GetBoardMembers returns the users and teams with cards assigned on a board.
func (s *Service) GetBoardMembers(ctx context.Context, boardID, search string) ([]any, error) {
	if err := requireIDs(map[string]string{"board_id": boardID}); err != nil {
		return nil, err
	}
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	res, err := s.api.Get(ctx, "/board/"+seg(boardID)+"/members", q)
	if err != nil {
		return nil, err
	}
	return listField(res, "members"), nil
}

type BoardActivityInput struct {
	BoardID string
	Limit   int
	// EventID is the last event seen, for paging.
	EventID string
	// Direction is "older" (default) or "newer".
	Direction string
}

func (in BoardActivityInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BoardID, validation.Required),
		validation.Field(&in.Direction, validation.In("older", "newer")),
		validation.Field(&in.Limit, validation.Min(0)),
	)
}

// GetBoardActivity returns recent activity events on a board.
func (s *Service) GetBoardActivity(ctx context.Context, in BoardActivityInput) ([]any, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	q := page(in.Limit, 0, 100)
	q.Del("offset")
	direction := in.Direction
	if direction == "" {
		direction = "older"
	}
	q.Set("direction", direction)
	if in.EventID != "" {
		q.Set("eventId", in.EventID)
	}

	res, err := s.api.Get(ctx, "/board/"+seg(in.BoardID)+"/activity", q)
	if err != nil {
		return nil, err
	}
	return listField(res, "events"), nil
}
