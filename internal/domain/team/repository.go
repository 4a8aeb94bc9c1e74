package team

import "context"

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (Team, error)
	ListByLead(ctx context.Context, leadID string) ([]Team, error)
}
