package hris

import (
	"github.com/oakwood-commons/hris/pkg/selector"
)

// DivisionOptions lists divisions for a selector, in server order.
func (p *PageData) DivisionOptions() []selector.Option {
	out := make([]selector.Option, 0, len(p.Divisions))
	for _, d := range p.Divisions {
		out = append(out, selector.Option{Value: d.ID, Label: d.Name})
	}
	return out
}

// RoleOptions lists the roles an account may be given by the viewer. Only a
// super admin can grant super admin.
func RoleOptions(viewer Role) []selector.Option {
	out := make([]selector.Option, 0, len(Roles))
	for _, r := range Roles {
		if r == RoleSuperAdmin && viewer != RoleSuperAdmin {
			continue
		}
		out = append(out, selector.Option{Value: string(r), Label: r.Title()})
	}
	return out
}

// StaffOptions lists staff members, labelled "Name (Position)" so people with
// the same name can be told apart.
func (p *PageData) StaffOptions() []selector.Option {
	out := make([]selector.Option, 0, len(p.Staff))
	for _, s := range p.Staff {
		label := s.Name
		if s.Position != "" {
			label += " (" + s.Position + ")"
		}
		out = append(out, selector.Option{Value: s.ID, Label: label})
	}
	return out
}

// RecipientOptions lists everyone a letter can be sent to except the viewer.
func (p *PageData) RecipientOptions() []selector.Option {
	out := make([]selector.Option, 0, len(p.Staff))
	for _, s := range p.Staff {
		if s.ID == p.User.ID {
			continue
		}
		out = append(out, selector.Option{Value: s.ID, Label: s.Name + " <" + s.Email + ">"})
	}
	return out
}

// StatusOptions lists the recruitment pipeline stages.
func StatusOptions() []selector.Option {
	out := make([]selector.Option, 0, len(ApplicationStatuses))
	for _, s := range ApplicationStatuses {
		out = append(out, selector.Option{Value: string(s), Label: s.Title()})
	}
	return out
}

// Title is the display form of the status.
func (s ApplicationStatus) Title() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusScreening:
		return "Screening"
	case StatusInterview:
		return "Interview"
	case StatusOffered:
		return "Offered"
	case StatusHired:
		return "Hired"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// DivisionName resolves a division id, falling back to the id itself.
func (p *PageData) DivisionName(id string) string {
	for _, d := range p.Divisions {
		if d.ID == id {
			return d.Name
		}
	}
	return id
}

// StaffName resolves a staff id, falling back to the id itself.
func (p *PageData) StaffName(id string) string {
	for _, s := range p.Staff {
		if s.ID == id {
			return s.Name
		}
	}
	if id == p.User.ID && p.User.Name != "" {
		return p.User.Name
	}
	return id
}

// Letter returns the letter with the given id.
func (p *PageData) Letter(id string) (Letter, bool) {
	for _, l := range p.Letters {
		if l.ID == id {
			return l, true
		}
	}
	return Letter{}, false
}
