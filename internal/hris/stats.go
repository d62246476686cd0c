package hris

// Stat is one dashboard card.
type Stat struct {
	Label string
	Value int
}

// Stats computes the cards for the viewer's role from scoped page data.
func (p *PageData) Stats() []Stat {
	s := p.Scoped()
	switch p.Role {
	case RoleSuperAdmin:
		return []Stat{
			{Label: "Accounts", Value: len(s.Accounts)},
			{Label: "Staff", Value: len(s.Staff)},
			{Label: "Open applications", Value: count(s.Applications, func(a Application) bool { return a.Status.Open() })},
			{Label: "Pending offboardings", Value: count(s.Offboardings, isPending)},
			{Label: "Active letters", Value: count(s.Letters, func(l Letter) bool { return !l.Archived })},
		}
	case RoleAdmin:
		return []Stat{
			{Label: "Staff", Value: len(s.Staff)},
			{Label: "Open applications", Value: count(s.Applications, func(a Application) bool { return a.Status.Open() })},
			{Label: "Interviews", Value: count(s.Applications, func(a Application) bool { return a.Status == StatusInterview })},
			{Label: "Pending offboardings", Value: count(s.Offboardings, isPending)},
		}
	case RoleStaff:
		return []Stat{
			{Label: "Inbox", Value: count(s.Letters, func(l Letter) bool { return l.RecipientID == p.User.ID && !l.Archived })},
			{Label: "Sent", Value: count(s.Letters, func(l Letter) bool { return l.SenderID == p.User.ID })},
			{Label: "Archived", Value: count(s.Letters, func(l Letter) bool { return l.Archived })},
		}
	case RoleApplicant:
		return []Stat{
			{Label: "Applications", Value: len(s.Applications)},
			{Label: "In progress", Value: count(s.Applications, func(a Application) bool { return a.Status.Open() })},
			{Label: "Offers", Value: count(s.Applications, func(a Application) bool { return a.Status == StatusOffered })},
		}
	}
	return nil
}

func isPending(o Offboarding) bool { return o.Status == OffboardingPending }

func count[T any](items []T, match func(T) bool) int {
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n
}
