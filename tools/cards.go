package tools

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var cardPriorities = []any{"low", "normal", "high", "critical"}

type ListCardsInput struct {
	BoardID string
	// Since limits results to cards modified after this instant.
	Since time.Time
	// Only restricts the returned fields, e.g. id, title, laneId.
	Only   []string
	Limit  int
	Offset int
}

// ListCards returns cards (with pageMeta) across boards or for one board.
func (s *Service) ListCards(ctx context.Context, in ListCardsInput) (any, error) {
	q := page(in.Limit, in.Offset, 200)
	if in.BoardID != "" {
		q.Set("board", in.BoardID)
	}
	if !in.Since.IsZero() {
		q.Set("since", in.Since.UTC().Format(time.RFC3339))
	}
	if len(in.Only) > 0 {
		q.Set("only", joinIDs(in.Only))
	}
	return s.api.Get(ctx, "/card", q)
}

func (s *Service) GetCard(ctx context.Context, cardID string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/card/"+seg(cardID), nil)
}

// GetCardActivity returns up to limit activity events for a card.
func (s *Service) GetCardActivity(ctx context.Context, cardID string, limit int) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	q := page(limit, 0, 100)
	q.Del("offset")
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/activity", q)
	if err != nil {
		return nil, err
	}
	return listField(res, "events"), nil
}

// CreateCardInput describes a new card. Only BoardID, LaneID and Title are
// required.
type CreateCardInput struct {
	BoardID         string
	LaneID          string
	Title           string
	Description     string
	TypeID          string
	Priority        string
	Size            *int
	Tags            []string
	AssignedUserIDs []string
	AssignedTeamIDs []string
	ExternalCardID  string
	ExternalURL     string
	PlannedStart    string
	PlannedFinish   string
	CustomIconID    string
	CustomFields    map[string]any
	Index           *int
}

func (in CreateCardInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BoardID, validation.Required),
		validation.Field(&in.LaneID, validation.Required),
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Priority, validation.In(cardPriorities...)),
		validation.Field(&in.Size, validation.Min(0)),
		validation.Field(&in.Index, validation.Min(0)),
	)
}

func (in CreateCardInput) payload() map[string]any {
	p := map[string]any{
		"boardId": in.BoardID,
		"laneId":  in.LaneID,
		"title":   in.Title,
	}
	if in.Description != "" {
		p["description"] = in.Description
	}
	if in.TypeID != "" {
		p["typeId"] = in.TypeID
	}
	if in.Priority != "" {
		p["priority"] = in.Priority
	}
	if in.Size != nil {
		p["size"] = *in.Size
	}
	if len(in.Tags) > 0 {
		p["tags"] = joinIDs(in.Tags)
	}
	if len(in.AssignedUserIDs) > 0 {
		p["assignedUserIds"] = in.AssignedUserIDs
	}
	if len(in.AssignedTeamIDs) > 0 {
		p["assignedTeamIds"] = in.AssignedTeamIDs
	}
	if in.ExternalCardID != "" {
		p["externalCardID"] = in.ExternalCardID
	}
	if in.ExternalURL != "" {
		p["externalSystemUrl"] = in.ExternalURL
	}
	if in.PlannedStart != "" {
		p["plannedStart"] = in.PlannedStart
	}
	if in.PlannedFinish != "" {
		p["plannedFinish"] = in.PlannedFinish
	}
	if in.CustomIconID != "" {
		p["classOfServiceId"] = in.CustomIconID
	}
	if len(in.CustomFields) > 0 {
		p["customFields"] = in.CustomFields
	}
	if in.Index != nil {
		p["index"] = *in.Index
	}
	return p
}

func (s *Service) CreateCard(ctx context.Context, in CreateCardInput) (any, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card", in.payload())
}

// UpdateCard patches the given fields on a card.
func (s *Service) UpdateCard(ctx context.Context, cardID string, fields Fields) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(fields, validation.Required); err != nil {
		return nil, validation.Errors{"fields": err}
	}
	return s.api.Patch(ctx, "/card/"+seg(cardID), fields.Normalize())
}

// MoveCard moves a card to laneID, optionally at a 0-based position.
func (s *Service) MoveCard(ctx context.Context, cardID, laneID string, position *int) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID, "lane_id": laneID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(position, validation.Min(0)); err != nil {
		return nil, validation.Errors{"position": err}
	}
	payload := map[string]any{"laneId": laneID}
	if position != nil {
		payload["position"] = *position
	}
	return s.api.Post(ctx, "/card/"+seg(cardID)+"/move", payload)
}

func (s *Service) DeleteCard(ctx context.Context, cardID string) error {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/card/"+seg(cardID), nil)
	return err
}

// ListCardTypes returns the card types configured on a board.
func (s *Service) ListCardTypes(ctx context.Context, boardID string) ([]any, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return listField(board, "cardTypes"), nil
}

// ListTags returns the tags in use on a board.
func (s *Service) ListTags(ctx context.Context, boardID string) ([]any, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return listField(board, "tags"), nil
}

// AssignMembers assigns users and/or teams to a card.
func (s *Service) AssignMembers(ctx context.Context, cardID string, userIDs, teamIDs []string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 && len(teamIDs) == 0 {
		return nil, validation.Errors{"user_ids": validation.ErrRequired}
	}
	payload := map[string]any{}
	if len(userIDs) > 0 {
		payload["assignedUserIds"] = userIDs
	}
	if len(teamIDs) > 0 {
		payload["assignedTeamIds"] = teamIDs
	}
	return s.api.Post(ctx, "/card/"+seg(cardID)+"/assignMembers", payload)
}

// Comments

func (s *Service) GetCardComments(ctx context.Context, cardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/comment", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "comments"), nil
}

func (s *Service) CreateComment(ctx context.Context, cardID, text string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID, "text": text}); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/"+seg(cardID)+"/comment", map[string]any{"text": text})
}

func (s *Service) UpdateComment(ctx context.Context, cardID, commentID, text string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID, "comment_id": commentID, "text": text}); err != nil {
		return nil, err
	}
	return s.api.Patch(ctx, "/card/"+seg(cardID)+"/comment/"+seg(commentID), map[string]any{"text": text})
}

func (s *Service) DeleteComment(ctx context.Context, cardID, commentID string) error {
	if err := requireIDs(map[string]string{"card_id": cardID, "comment_id": commentID}); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/card/"+seg(cardID)+"/comment/"+seg(commentID), nil)
	return err
}

// Attachments

func (s *Service) ListCardAttachments(ctx context.Context, cardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/attachment", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "attachments"), nil
}

func (s *Service) DeleteAttachment(ctx context.Context, cardID, attachmentID string) error {
	if err := requireIDs(map[string]string{"card_id": cardID, "attachment_id": attachmentID}); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/card/"+seg(cardID)+"/attachment/"+seg(attachmentID), nil)
	return err
}
