package tools

import (
	"context"
)

type ListUsersInput struct {
	Search string
	Limit  int
	Offset int
	// SortBy defaults to lastName.
	SortBy string
}

func (s *Service) ListUsers(ctx context.Context, in ListUsersInput) (any, error) {
	q := page(in.Limit, in.Offset, 25)
	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "lastName"
	}
	q.Set("sortBy", sortBy)
	if in.Search != "" {
		q.Set("search", in.Search)
	}
	return s.api.Get(ctx, "/user", q)
}

func (s *Service) GetUser(ctx context.Context, userID string) (any, error) {
	if err := requireIDs(map[string]string{"user_id": userID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/user/"+seg(userID), nil)
}

// GetCurrentUser returns the user the API token belongs to.
func (s *Service) GetCurrentUser(ctx context.Context) (any, error) {
	return s.api.Get(ctx, "/user/me", nil)
}

func (s *Service) GetUserContext(ctx context.Context) (any, error) {
	return s.api.Get(ctx, "/user/me/context", nil)
}

func (s *Service) ListTeams(ctx context.Context, search string, limit, offset int) (any, error) {
	q := page(limit, offset, 100)
	if search != "" {
		q.Set("search", search)
	}
	return s.api.Get(ctx, "/team", q)
}

func (s *Service) GetTeam(ctx context.Context, teamID string) (any, error) {
	if err := requireIDs(map[string]string{"team_id": teamID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/team/"+seg(teamID), nil)
}

func (s *Service) ListTeamUsers(ctx context.Context, teamID string, limit, offset int) (any, error) {
	if err := requireIDs(map[string]string{"team_id": teamID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/team/"+seg(teamID)+"/users", page(limit, offset, 100))
}

func (s *Service) ListTeamBoards(ctx context.Context, teamID string, limit, offset int) (any, error) {
	if err := requireIDs(map[string]string{"team_id": teamID}); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, "/team/"+seg(teamID)+"/boards", page(limit, offset, 100))
}

func (s *Service) ListTeamSubteams(ctx context.Context, teamID string) ([]any, error) {
	if err := requireIDs(map[string]string{"team_id": teamID}); err != nil {
		return nil, err
	}
	res, err := s.api.Get(ctx, "/team/"+seg(teamID)+"/subTeams", nil)
	if err != nil {
		return nil, err
	}
	return listField(res, "teams"), nil
}

func (s *Service) GetOrganization(ctx context.Context) (any, error) {
	return s.api.Get(ctx, "/organization", nil)
}
