package tools

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-multierror"
)

// UpdateCardsBulk applies the same field updates to every card.
func (s *Service) UpdateCardsBulk(ctx context.Context, cardIDs []string, fields Fields) (any, error) {
	if err := validateBulkUpdate(cardIDs, fields); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/bulk", map[string]any{
		"cardIds": cardIDs,
		"updates": fields.Normalize(),
	})
}

func validateBulkUpdate(cardIDs []string, fields Fields) error {
	return validation.Errors{
		"card_ids": validation.Validate(cardIDs, validation.Required, validation.Each(validation.Required)),
		"updates":  validation.Validate(fields, validation.Required),
	}.Filter()
}

func (s *Service) DeleteCardsBulk(ctx context.Context, cardIDs []string) error {
	if err := validation.Validate(cardIDs, validation.Required, validation.Each(validation.Required)); err != nil {
		return validation.Errors{"card_ids": err}
	}
	_, err := s.api.Post(ctx, "/card/deleteMany", map[string]any{"cardIds": cardIDs})
	return err
}

// CardMove is one entry of a bulk move.
type CardMove struct {
	CardID   string `json:"cardId"`
	LaneID   string `json:"laneId"`
	Position *int   `json:"position,omitempty"`

	// MoveChildren and MoveParents also move the card's connected cards.
	MoveChildren bool `json:"moveChildren,omitempty"`
	MoveParents  bool `json:"moveParents,omitempty"`
}

func (m CardMove) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CardID, validation.Required),
		validation.Field(&m.LaneID, validation.Required),
		validation.Field(&m.Position, validation.Min(0)),
	)
}

// MoveCardsBulk moves several cards in one request. Every invalid entry is
// reported before anything is sent.
func (s *Service) MoveCardsBulk(ctx context.Context, moves []CardMove) (any, error) {
	if len(moves) == 0 {
		return nil, validation.Errors{"moves": validation.ErrRequired}
	}
	var result *multierror.Error
	for i, m := range moves {
		if err := m.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("moves[%d]: %w", i, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/bulk/move", map[string]any{"moves": moves})
}

// BoardAccessInput grants or revokes board access for users, teams or
// e-mail addresses. BoardRole is only used when granting and defaults to
// BoardRoleUser; Emails is only used when revoking.
type BoardAccessInput struct {
	BoardIDs  []string
	UserIDs   []string
	TeamIDs   []string
	Emails    []string
	BoardRole string
}

func (in BoardAccessInput) Validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.BoardIDs, validation.Required, validation.Each(validation.Required)),
		validation.Field(&in.Emails, validation.Each(is.EmailFormat)),
		validation.Field(&in.BoardRole, validation.In(boardRoles...)),
	); err != nil {
		return err
	}
	if len(in.UserIDs)+len(in.TeamIDs)+len(in.Emails) == 0 {
		return validation.Errors{"UserIDs": validation.ErrRequired}
	}
	return nil
}

func (in BoardAccessInput) payload() map[string]any {
	p := map[string]any{"boardIds": in.BoardIDs}
	if len(in.UserIDs) > 0 {
		p["userIds"] = in.UserIDs
	}
	if len(in.TeamIDs) > 0 {
		p["teamIds"] = in.TeamIDs
	}
	return p
}

// AssignMembersBulk grants a role on several boards at once.
func (s *Service) AssignMembersBulk(ctx context.Context, in BoardAccessInput) error {
	in.Emails = nil
	if err := in.Validate(); err != nil {
		return err
	}
	p := in.payload()
	role := in.BoardRole
	if role == "" {
		role = BoardRoleUser
	}
	p["boardRole"] = role
	_, err := s.api.Post(ctx, "/board/access", p)
	return err
}

// RemoveMembersBulk revokes access on several boards at once.
func (s *Service) RemoveMembersBulk(ctx context.Context, in BoardAccessInput) error {
	in.BoardRole = ""
	if err := in.Validate(); err != nil {
		return err
	}
	p := in.payload()
	if len(in.Emails) > 0 {
		p["emails"] = in.Emails
	}
	_, err := s.api.Delete(ctx, "/board/access", p)
	return err
}

func validateCards(cards []CreateCardInput) error {
	if len(cards) == 0 {
		return validation.Errors{"cards": validation.ErrRequired}
	}
	var result *multierror.Error
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("cards[%d]: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}

func cardPayloads(cards []CreateCardInput) []map[string]any {
	out := make([]map[string]any, len(cards))
	for i, c := range cards {
		out[i] = c.payload()
	}
	return out
}

func (s *Service) CreateCardsBulk(ctx context.Context, cards []CreateCardInput) (any, error) {
	if err := validateCards(cards); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/bulk/create", map[string]any{"cards": cardPayloads(cards)})
}

// CreateCardsWithRelationshipsBulk creates cards and the connections and
// dependencies between them in one request. The relationships document is
// passed through unchanged.
func (s *Service) CreateCardsWithRelationshipsBulk(ctx context.Context, cards []CreateCardInput, relationships map[string]any) (any, error) {
	if err := validateCards(cards); err != nil {
		return nil, err
	}
	p := map[string]any{"cards": cardPayloads(cards)}
	if len(relationships) > 0 {
		p["relationships"] = relationships
	}
	return s.api.Post(ctx, "/card/bulk/create-with-relationships", p)
}

// ManageConnectionsBulk sends a list of connect/disconnect operations.
func (s *Service) ManageConnectionsBulk(ctx context.Context, operations []map[string]any) (any, error) {
	if err := validation.Validate(operations, validation.Required); err != nil {
		return nil, validation.Errors{"operations": err}
	}
	return s.api.Post(ctx, "/card/connections/bulk", map[string]any{"operations": operations})
}

func (s *Service) ManageDependenciesBulk(ctx context.Context, deps []DependencyInput) (any, error) {
	if len(deps) == 0 {
		return nil, validation.Errors{"dependencies": validation.ErrRequired}
	}
	var result *multierror.Error
	out := make([]DependencyInput, len(deps))
	for i, d := range deps {
		if err := d.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("dependencies[%d]: %w", i, err))
		}
		out[i] = d.withDefaults()
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/dependencies/bulk", map[string]any{"dependencies": out})
}

func (s *Service) UpdateCardRelationshipsBulk(ctx context.Context, relationships []map[string]any) (any, error) {
	if err := validation.Validate(relationships, validation.Required); err != nil {
		return nil, validation.Errors{"card_relationships": err}
	}
	return s.api.Post(ctx, "/card/relationships/bulk", map[string]any{"cardRelationships": relationships})
}
