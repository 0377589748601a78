package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CardConnections links each of CardIDs to the given children and parents.
type CardConnections struct {
	CardIDs  []string
	Children []string
	Parents  []string
}

func (c CardConnections) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.CardIDs, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.Children, validation.Each(validation.Required)),
		validation.Field(&c.Parents, validation.Each(validation.Required)),
	); err != nil {
		return err
	}
	if len(c.Children) == 0 && len(c.Parents) == 0 {
		return validation.Errors{"Children": validation.ErrRequired}
	}
	return nil
}

func (c CardConnections) payload() map[string]any {
	conns := map[string]any{}
	if len(c.Children) > 0 {
		conns["children"] = c.Children
	}
	if len(c.Parents) > 0 {
		conns["parents"] = c.Parents
	}
	return map[string]any{
		"cardIds":     c.CardIDs,
		"connections": conns,
	}
}

type ChildrenInput struct {
	CardID  string
	Limit   int
	Offset  int
	BoardID string
	// CardStatus filters by notStarted, started or finished (comma separated).
	CardStatus string
}

// GetCardChildren returns the child cards of a parent card, with pageMeta.
func (s *Service) GetCardChildren(ctx context.Context, in ChildrenInput) (any, error) {
	if err := requireIDs(map[string]string{"card_id": in.CardID}); err != nil {
		return nil, err
	}
	q := page(in.Limit, in.Offset, 200)
	if in.BoardID != "" {
		q.Set("boardId", in.BoardID)
	}
	if in.CardStatus != "" {
		q.Set("cardStatus", in.CardStatus)
	}
	return s.api.Get(ctx, "/card/"+seg(in.CardID)+"/connection/children", q)
}

func (s *Service) GetCardChildrenIDs(ctx context.Context, cardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/connection/children/ids", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "ids"), nil
}

type ParentsInput struct {
	CardID  string
	Limit   int
	Offset  int
	BoardID string
}

func (s *Service) GetCardParents(ctx context.Context, in ParentsInput) (any, error) {
	if err := requireIDs(map[string]string{"card_id": in.CardID}); err != nil {
		return nil, err
	}
	q := page(in.Limit, in.Offset, 200)
	if in.BoardID != "" {
		q.Set("board", in.BoardID)
	}
	return s.api.Get(ctx, "/card/"+seg(in.CardID)+"/connection/parents", q)
}

// GetConnectionStatistics returns child progress statistics for a card.
func (s *Service) GetConnectionStatistics(ctx context.Context, cardID string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/card/"+seg(cardID)+"/statistics", nil)
}

// CreateConnection makes childID a child of parentID.
func (s *Service) CreateConnection(ctx context.Context, parentID, childID string) (any, error) {
	return s.ConnectCardsBulk(ctx, CardConnections{CardIDs: []string{parentID}, Children: []string{childID}})
}

func (s *Service) DeleteConnection(ctx context.Context, parentID, childID string) error {
	return s.DeleteConnectionsBulk(ctx, CardConnections{CardIDs: []string{parentID}, Children: []string{childID}})
}

func (s *Service) ConnectCardsBulk(ctx context.Context, c CardConnections) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/connections", c.payload())
}

func (s *Service) DeleteConnectionsBulk(ctx context.Context, c CardConnections) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/card/connections", c.payload())
	return err
}

// ConnectChildInput creates a new child card connected to ParentID. BoardID
// is ignored by ConnectSameBoard.
type ConnectChildInput struct {
	ParentID    string
	BoardID     string
	LaneID      string
	Title       string
	Description string
	TypeID      string
}

func (in ConnectChildInput) payload() map[string]any {
	p := map[string]any{
		"parentCardId": in.ParentID,
		"childLaneId":  in.LaneID,
		"childTitle":   in.Title,
	}
	if in.Description != "" {
		p["childDescription"] = in.Description
	}
	if in.TypeID != "" {
		p["childTypeId"] = in.TypeID
	}
	return p
}

// ConnectToBoard creates a child card on another board.
func (s *Service) ConnectToBoard(ctx context.Context, in ConnectChildInput) (any, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.ParentID, validation.Required),
		validation.Field(&in.BoardID, validation.Required),
		validation.Field(&in.LaneID, validation.Required),
		validation.Field(&in.Title, validation.Required),
	); err != nil {
		return nil, err
	}
	p := in.payload()
	p["childBoardId"] = in.BoardID
	return s.api.Post(ctx, "/card/connectToBoard", p)
}

// ConnectSameBoard creates a child card on the parent's board.
func (s *Service) ConnectSameBoard(ctx context.Context, in ConnectChildInput) (any, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.ParentID, validation.Required),
		validation.Field(&in.LaneID, validation.Required),
		validation.Field(&in.Title, validation.Required),
	); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/connectSameBoard", in.payload())
}

// DeleteConnectionsByBoard removes every connection between cards on the two boards.
func (s *Service) DeleteConnectionsByBoard(ctx context.Context, parentBoardID, childBoardID string) error {
	if err := requireIDs(map[string]string{"parent_board_id": parentBoardID, "child_board_id": childBoardID}); err != nil {
		return err
	}
	_, err := s.api.Post(ctx, "/card/deleteConnectionsByBoard", map[string]any{
		"parentBoardId": parentBoardID,
		"childBoardId":  childBoardID,
	})
	return err
}

// GetChildBoards returns the boards a card has child connections on.
func (s *Service) GetChildBoards(ctx context.Context, cardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/connection", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "connections"), nil
}

func (s *Service) GetParentBoards(ctx context.Context, cardID string, limit, offset int) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/card/"+seg(cardID)+"/connection/parent-boards", page(limit, offset, 25))
}

func (s *Service) CreateBoardConnection(ctx context.Context, cardID, boardID string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID, "board_id": boardID}); err != nil {
		return nil, err
	}
	return s.api.Put(ctx, "/card/"+seg(cardID)+"/connection/"+seg(boardID), nil)
}

func (s *Service) DeleteBoardConnection(ctx context.Context, cardID, boardID string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID, "board_id": boardID}); err != nil {
		return nil, err
	}
	return s.api.Delete(ctx, "/card/"+seg(cardID)+"/connection/"+seg(boardID), nil)
}

func (s *Service) CreateSameBoardConnection(ctx context.Context, cardID string) (any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	return s.api.Put(ctx, "/card/"+seg(cardID)+"/connection/same", nil)
}

