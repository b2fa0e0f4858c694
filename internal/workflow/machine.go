package workflow

import (
	"fmt"

	"budgetflow/internal/domain"
)

// Transition is one permitted edge of the file-status machine.
type Transition struct {
	From domain.FileStatus
	To   domain.FileStatus

	// Roles that may trigger the transition. Empty means any role, subject
	// to UploaderOnly.
	Roles []domain.UserRole

	// UploaderOnly restricts the transition to the file's own uploader.
	UploaderOnly bool

	// RequiresComment refuses the transition without a reason text.
	RequiresComment bool
}

// Machine validates status transitions against a fixed table. Files move
// strictly forward; the only way out of REJECTED is resubmission, which
// creates a new record rather than reusing the rejected one.
type Machine struct {
	transitions []Transition
}

// NewMachine builds the machine with the budget approval edges.
func NewMachine() *Machine {
	return &Machine{transitions: []Transition{
		{
			From:  domain.FileStatusPendingApproval,
			To:    domain.FileStatusApprovedForPrint,
			Roles: []domain.UserRole{domain.RoleManager, domain.RoleAdmin},
		},
		{
			From:            domain.FileStatusPendingApproval,
			To:              domain.FileStatusRejected,
			Roles:           []domain.UserRole{domain.RoleManager, domain.RoleAdmin},
			RequiresComment: true,
		},
		{
			From:         domain.FileStatusApprovedForPrint,
			To:           domain.FileStatusSigning,
			UploaderOnly: true,
		},
		{
			From:         domain.FileStatusSigning,
			To:           domain.FileStatusFinalized,
			UploaderOnly: true,
		},
	}}
}

// CanTransition reports whether an edge exists, ignoring actor guards.
func (m *Machine) CanTransition(from, to domain.FileStatus) bool {
	return m.find(from, to) != nil
}

// IsTerminal reports whether no edge leaves the status.
func (m *Machine) IsTerminal(status domain.FileStatus) bool {
	for _, t := range m.transitions {
		if t.From == status {
			return false
		}
	}
	return true
}

// Authorize checks a proposed transition against the table and its guards.
// It returns nil when the actor may perform the transition; the caller then
// applies status change and metadata stamping as one store update.
func (m *Machine) Authorize(from, to domain.FileStatus, actorRole domain.UserRole, actorIsUploader bool, comment string) error {
	t := m.find(from, to)
	if t == nil {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}

	if len(t.Roles) > 0 {
		allowed := false
		for _, r := range t.Roles {
			if r == actorRole {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.ErrForbidden
		}
	}
	if t.UploaderOnly && !actorIsUploader && actorRole != domain.RoleAdmin {
		return domain.ErrNotFileOwner
	}
	if t.RequiresComment && comment == "" {
		return domain.ErrCommentRequired
	}
	return nil
}

func (m *Machine) find(from, to domain.FileStatus) *Transition {
	for i := range m.transitions {
		if m.transitions[i].From == from && m.transitions[i].To == to {
			return &m.transitions[i]
		}
	}
	return nil
}
