package ui

import (
	"context"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/internal/submit"
)

// Route names the forms post to.
const (
	RouteAccountsStore     = "accounts.store"
	RouteApplicationsStore = "applications.store"
	RouteOffboardingsStore = "offboardings.store"
	RouteLettersStore      = "letters.store"
	RouteLettersArchive    = "letters.archive"
)

// FormDeps is what every page form needs besides its page data.
type FormDeps struct {
	Context   context.Context
	Submitter submit.Submitter
	Theme     Theme
	Selector  config.SelectorConfig
	Width     int
}

func (d FormDeps) form(id, title, route string, fields []FieldSpec) *Form {
	return NewForm(FormConfig{
		ID:        id,
		Title:     title,
		Route:     route,
		Fields:    fields,
		Submitter: d.Submitter,
		Context:   d.Context,
		Theme:     d.Theme,
		Selector:  d.Selector,
		Width:     d.Width,
	})
}

// FormFor returns the "new record" form of a page, or false when the page
// has none or the role may not create its records.
func FormFor(page hris.Page, p *hris.PageData, deps FormDeps) (*Form, bool) {
	switch page {
	case hris.PageAccounts:
		return NewAccountForm(p, deps), true
	case hris.PageRecruitment:
		return NewApplicationForm(p, deps), true
	case hris.PageOffboarding:
		return NewOffboardingForm(p, deps), true
	case hris.PageLetters:
		if p.Role == hris.RoleApplicant {
			return nil, false
		}
		return NewLetterForm(p, deps), true
	}
	return nil, false
}

// NewAccountForm creates a login. Only super admins may grant super admin.
func NewAccountForm(p *hris.PageData, deps FormDeps) *Form {
	return deps.form("account", "New account", RouteAccountsStore, []FieldSpec{
		{Name: "name", Label: "Name", Required: true},
		{Name: "email", Label: "Email", Placeholder: "name@example.com", Required: true},
		{Name: "role", Label: "Role", Kind: SelectField, Options: hris.RoleOptions(p.Role), Required: true},
		{Name: "division_id", Label: "Division", Kind: SelectField, Options: p.DivisionOptions()},
	})
}

// NewApplicationForm files an application. Applicants apply as themselves
// and cannot set the pipeline status.
func NewApplicationForm(p *hris.PageData, deps FormDeps) *Form {
	applicant := p.Role == hris.RoleApplicant
	name := ""
	if applicant {
		name = p.User.Name
	}
	return deps.form("application", "New application", RouteApplicationsStore, []FieldSpec{
		{Name: "name", Label: "Applicant name", Value: name, Required: true},
		{Name: "position", Label: "Position", Required: true},
		{Name: "division_id", Label: "Division", Kind: SelectField, Options: p.DivisionOptions()},
		{
			Name:     "status",
			Label:    "Status",
			Kind:     SelectField,
			Options:  hris.StatusOptions(),
			Value:    string(hris.StatusSubmitted),
			Disabled: applicant,
		},
	})
}

// NewOffboardingForm starts an exit. Staff can only offboard themselves.
func NewOffboardingForm(p *hris.PageData, deps FormDeps) *Form {
	self := p.Role == hris.RoleStaff
	staff := ""
	if self {
		staff = p.User.ID
	}
	return deps.form("offboarding", "New offboarding", RouteOffboardingsStore, []FieldSpec{
		{Name: "staff_id", Label: "Staff member", Kind: SelectField, Options: p.StaffOptions(), Value: staff, Disabled: self, Required: true},
		{Name: "reason", Label: "Reason", Required: true},
		{Name: "last_day", Label: "Last day", Placeholder: "YYYY-MM-DD", Required: true},
	})
}

// NewLetterForm writes a letter to another staff member.
func NewLetterForm(p *hris.PageData, deps FormDeps) *Form {
	return deps.form("letter", "New letter", RouteLettersStore, []FieldSpec{
		{Name: "recipient_id", Label: "To", Kind: SelectField, Options: p.RecipientOptions(), Required: true},
		{Name: "subject", Label: "Subject", Required: true},
		{Name: "body", Label: "Body", Placeholder: "Markdown is fine"},
	})
}
