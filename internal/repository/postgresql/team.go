package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/team"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Leads and members are aggregated per team; a lead row is never repeated
// in MemberIDs.
const teamSelect = `
	SELECT t.id, t.organization_id, t.name, t.description,
		   COALESCE(array_agg(tm.user_id::text ORDER BY tm.user_id) FILTER (WHERE tm.is_lead), '{}'),
		   COALESCE(array_agg(tm.user_id::text ORDER BY tm.user_id) FILTER (WHERE NOT tm.is_lead), '{}'),
		   t.created_at, t.updated_at
	FROM teams t
	LEFT JOIN team_members tm ON tm.team_id = t.id`

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

func scanTeam(row pgx.Row) (team.Team, error) {
	var t team.Team
	err := row.Scan(
		&t.ID,
		&t.OrganizationID,
		&t.Name,
		&t.Description,
		&t.LeadIDs,
		&t.MemberIDs,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := teamSelect + `
		WHERE t.id = $1
		GROUP BY t.id
	`

	t, err := scanTeam(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, err
	}
	return t, nil
}

func (r *teamRepositoryImpl) ListByLead(ctx context.Context, leadID string) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := teamSelect + `
		WHERE EXISTS (
			SELECT 1 FROM team_members tl
			WHERE tl.team_id = t.id AND tl.user_id = $1 AND tl.is_lead
		)
		GROUP BY t.id
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []team.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
