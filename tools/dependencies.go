package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Dependency types understood by the API.
const (
	FinishToStart  = "finish_to_start"
	StartToStart   = "start_to_start"
	FinishToFinish = "finish_to_finish"
	StartToFinish  = "start_to_finish"
)

var dependencyTypes = []any{FinishToStart, StartToStart, FinishToFinish, StartToFinish}

// DependencyInput states that CardID depends on DependsOnCardID. Type
// defaults to FinishToStart.
type DependencyInput struct {
	CardID          string `json:"cardId"`
	DependsOnCardID string `json:"dependsOnCardId"`
	Type            string `json:"dependencyType"`
}

func (in DependencyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CardID, validation.Required),
		validation.Field(&in.DependsOnCardID, validation.Required,
			validation.NotIn(in.CardID).Error("a card cannot depend on itself")),
		validation.Field(&in.Type, validation.In(dependencyTypes...)),
	)
}

func (in DependencyInput) withDefaults() DependencyInput {
	if in.Type == "" {
		in.Type = FinishToStart
	}
	return in
}

func (s *Service) GetCardDependencies(ctx context.Context, cardID string) ([]any, error) {
	if err := requireIDs(map[string]string{"card_id": cardID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/card/"+seg(cardID)+"/dependencies", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "dependencies"), nil
}

func (s *Service) CreateDependency(ctx context.Context, in DependencyInput) (any, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.api.Post(ctx, "/card/dependency", in.withDefaults())
}

// UpdateDependency changes a dependency's type. An empty type sends an empty
// patch.
func (s *Service) UpdateDependency(ctx context.Context, dependencyID, dependencyType string) (any, error) {
	if err := requireIDs(map[string]string{"dependency_id": dependencyID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(dependencyType, validation.In(dependencyTypes...)); err != nil {
		return nil, validation.Errors{"dependency_type": err}
	}
	payload := map[string]any{}
	if dependencyType != "" {
		payload["dependencyType"] = dependencyType
	}
	return s.api.Patch(ctx, "/card/dependency/"+seg(dependencyID), payload)
}

func (s *Service) DeleteDependency(ctx context.Context, dependencyID string) error {
	if err := requireIDs(map[string]string{"dependency_id": dependencyID}); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, "/card/dependency/"+seg(dependencyID), nil)
	return err
}
