package domain

// Member identifies a participant in the shared ledger. Members come
// from an externally configured roster; the engine never creates or
// deletes them.
type Member string

// Roster is the ordered set of known members. Declaration order is
// significant: it is the final tie-break for display ranking.
type Roster []Member

// Contains reports whether m is part of the roster.
func (r Roster) Contains(m Member) bool {
	for _, member := range r {
		if member == m {
			return true
		}
	}
	return false
}

// Others returns every roster member except viewpoint, in roster order.
func (r Roster) Others(viewpoint Member) []Member {
	others := make([]Member, 0, len(r))
	for _, member := range r {
		if member != viewpoint {
			others = append(others, member)
		}
	}
	return others
}
