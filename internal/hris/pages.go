package hris

// Page is one tab of a dashboard.
type Page string

const (
	PageOverview    Page = "overview"
	PageAccounts    Page = "accounts"
	PageRecruitment Page = "recruitment"
	PageOffboarding Page = "offboarding"
	PageLetters     Page = "letters"
)

var rolePages = map[Role][]Page{
	RoleSuperAdmin: {PageOverview, PageAccounts, PageRecruitment, PageOffboarding, PageLetters},
	RoleAdmin:      {PageOverview, PageAccounts, PageRecruitment, PageOffboarding, PageLetters},
	RoleStaff:      {PageOverview, PageLetters, PageOffboarding},
	RoleApplicant:  {PageOverview, PageRecruitment},
}

// Pages returns the tabs a role may open, overview first.
func Pages(r Role) []Page {
	return rolePages[r]
}

// CanOpen reports whether role r has page p.
func CanOpen(r Role, p Page) bool {
	for _, page := range rolePages[r] {
		if page == p {
			return true
		}
	}
	return false
}

// Title is the tab label.
func (p Page) Title() string {
	switch p {
	case PageOverview:
		return "Overview"
	case PageAccounts:
		return "Accounts"
	case PageRecruitment:
		return "Recruitment"
	case PageOffboarding:
		return "Offboarding"
	case PageLetters:
		return "Letters"
	default:
		return string(p)
	}
}

// Collection names the record set listed on the page.
func (p Page) Collection() string {
	switch p {
	case PageAccounts:
		return CollectionAccounts
	case PageRecruitment:
		return CollectionApplications
	case PageOffboarding:
		return CollectionOffboardings
	case PageLetters:
		return CollectionLetters
	default:
		return CollectionStaff
	}
}

// Scoped returns a copy of p holding only what the role may see. Staff see
// the letters they sent or received and their own offboarding; applicants see
// their own applications. Administrators see everything.
func (p *PageData) Scoped() *PageData {
	out := *p
	switch p.Role {
	case RoleStaff:
		out.Accounts = nil
		out.Applications = nil
		out.Letters = filter(p.Letters, func(l Letter) bool {
			return l.RecipientID == p.User.ID || l.SenderID == p.User.ID
		})
		out.Offboardings = filter(p.Offboardings, func(o Offboarding) bool {
			return o.StaffID == p.User.ID
		})
	case RoleApplicant:
		out.Accounts = nil
		out.Staff = nil
		out.Offboardings = nil
		out.Letters = nil
		out.Applications = filter(p.Applications, func(a Application) bool {
			return a.ApplicantID == p.User.ID
		})
	}
	return &out
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
