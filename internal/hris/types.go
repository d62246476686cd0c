// Package hris models the page data the HRIS server hands to the console:
// who is looking, in which role, and the records their dashboard shows.
// The server owns these records; the console only renders them and posts
// forms back.
package hris

import (
	"fmt"
	"strings"
)

// Role scopes what a user sees.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleApplicant  Role = "applicant"
)

// Roles lists every role in descending privilege.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleStaff, RoleApplicant}

// ParseRole accepts the wire form ("super_admin") and the spellings people type
// ("Super Admin", "super-admin").
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, r := range Roles {
		if string(r) == norm {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q (want one of super_admin, admin, staff, applicant)", s)
}

// Title is the human-readable role name.
func (r Role) Title() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	case RoleApplicant:
		return "Applicant"
	default:
		return string(r)
	}
}

// ApplicationStatus is a stage of the recruitment pipeline.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffered   ApplicationStatus = "offered"
	StatusHired     ApplicationStatus = "hired"
	StatusRejected  ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the pipeline in order.
var ApplicationStatuses = []ApplicationStatus{
	StatusSubmitted, StatusScreening, StatusInterview, StatusOffered, StatusHired, StatusRejected,
}

// Open reports whether an application is still moving through the pipeline.
func (s ApplicationStatus) Open() bool {
	return s != StatusHired && s != StatusRejected
}

// Offboarding states.
const (
	OffboardingPending   = "pending"
	OffboardingApproved  = "approved"
	OffboardingCompleted = "completed"
)

// Division is an organizational unit.
type Division struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// User is the person viewing the console.
type User struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Email string `json:"email" yaml:"email" toml:"email"`
}

// Account is a login managed by administrators.
type Account struct {
	ID         string `json:"id" yaml:"id" toml:"id"`
	Name       string `json:"name" yaml:"name" toml:"name"`
	Email      string `json:"email" yaml:"email" toml:"email"`
	Role       Role   `json:"role" yaml:"role" toml:"role"`
	DivisionID string `json:"division_id" yaml:"division_id" toml:"division_id"`
	Active     bool   `json:"active" yaml:"active" toml:"active"`
}

// Staff is an employee record.
type Staff struct {
	ID         string `json:"id" yaml:"id" toml:"id"`
	Name       string `json:"name" yaml:"name" toml:"name"`
	Email      string `json:"email" yaml:"email" toml:"email"`
	Position   string `json:"position" yaml:"position" toml:"position"`
	DivisionID string `json:"division_id" yaml:"division_id" toml:"division_id"`
	JoinedOn   string `json:"joined_on" yaml:"joined_on" toml:"joined_on"`
}

// Application tracks one applicant through recruitment.
type Application struct {
	ID          string            `json:"id" yaml:"id" toml:"id"`
	ApplicantID string            `json:"applicant_id" yaml:"applicant_id" toml:"applicant_id"`
	Name        string            `json:"name" yaml:"name" toml:"name"`
	Email       string            `json:"email" yaml:"email" toml:"email"`
	Position    string            `json:"position" yaml:"position" toml:"position"`
	DivisionID  string            `json:"division_id" yaml:"division_id" toml:"division_id"`
	Status      ApplicationStatus `json:"status" yaml:"status" toml:"status"`
	SubmittedOn string            `json:"submitted_on" yaml:"submitted_on" toml:"submitted_on"`
}

// Offboarding is a staff exit in progress or completed.
type Offboarding struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	StaffID string `json:"staff_id" yaml:"staff_id" toml:"staff_id"`
	Reason  string `json:"reason" yaml:"reason" toml:"reason"`
	LastDay string `json:"last_day" yaml:"last_day" toml:"last_day"`
	Status  string `json:"status" yaml:"status" toml:"status"`
}

// Letter is internal correspondence. Body is markdown.
type Letter struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Subject     string `json:"subject" yaml:"subject" toml:"subject"`
	Body        string `json:"body" yaml:"body" toml:"body"`
	SenderID    string `json:"sender_id" yaml:"sender_id" toml:"sender_id"`
	RecipientID string `json:"recipient_id" yaml:"recipient_id" toml:"recipient_id"`
	SentOn      string `json:"sent_on" yaml:"sent_on" toml:"sent_on"`
	Archived    bool   `json:"archived" yaml:"archived" toml:"archived"`
}

// PageData is the prop set for one dashboard render.
type PageData struct {
	Role         Role          `json:"role" yaml:"role" toml:"role"`
	User         User          `json:"user" yaml:"user" toml:"user"`
	Divisions    []Division    `json:"divisions" yaml:"divisions" toml:"divisions"`
	Accounts     []Account     `json:"accounts" yaml:"accounts" toml:"accounts"`
	Staff        []Staff       `json:"staff" yaml:"staff" toml:"staff"`
	Applications []Application `json:"applications" yaml:"applications" toml:"applications"`
	Offboardings []Offboarding `json:"offboardings" yaml:"offboardings" toml:"offboardings"`
	Letters      []Letter      `json:"letters" yaml:"letters" toml:"letters"`
}

// Validate checks the fields the console relies on and normalizes the role.
// Everything else is the server's business.
func (p *PageData) Validate() error {
	if p.Role == "" {
		return fmt.Errorf("page data has no role")
	}
	r, err := ParseRole(string(p.Role))
	if err != nil {
		return fmt.Errorf("page data: %w", err)
	}
	p.Role = r
	return nil
}
