package team

import "time"

// Team groups users; leads are always members as well.
type Team struct {
	ID             string
	OrganizationID string
	Name           string
	Description    *string
	LeadIDs        []string
	MemberIDs      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t *Team) IsMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return t.IsLead(userID)
}

func (t *Team) IsLead(userID string) bool {
	for _, id := range t.LeadIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Members returns member and lead IDs without duplicates, members first.
func (t *Team) Members() []string {
	seen := make(map[string]struct{}, len(t.MemberIDs)+len(t.LeadIDs))
	var ids []string
	for _, list := range [][]string{t.MemberIDs, t.LeadIDs} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
