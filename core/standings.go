package core

import "sort"

// Standing is one organization's position in the final summary.
type Standing struct {
	Rank         int     `json:"rank"`
	Code         OrgCode `json:"code"`
	Name         string  `json:"name"`
	Spent        Money   `json:"spent"`
	Remaining    Money   `json:"remaining"`
	Acquired     int     `json:"acquired"`
	RTMAvailable bool    `json:"rtm_available"`
}

// RankOrganizations orders organizations by spend, highest first. Ties keep
// registration order, then share a rank.
func RankOrganizations(orgs []Organization) []Standing {
	standings := make([]Standing, len(orgs))
	for i, org := range orgs {
		standings[i] = Standing{
			Code:         org.Code,
			Name:         org.Name,
			Spent:        org.Spent(),
			Remaining:    org.Budget,
			Acquired:     len(org.Acquired),
			RTMAvailable: org.RTMEligible,
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Spent > standings[j].Spent
	})

	for i := range standings {
		if i > 0 && standings[i].Spent == standings[i-1].Spent {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
	return standings
}

// Standings ranks the session's organizations by spend.
func (s *Session) Standings() []Standing {
	return RankOrganizations(s.registry.Organizations())
}
