package domain

// Identity describes the caller performing a change.
type Identity interface {
	// DisplayName returns the principal's name; ok is false when it has none.
	DisplayName() (name string, ok bool)
}

// SystemIdentity is the Identity used by automated processes.
type SystemIdentity struct{}

// DisplayName always returns SystemUserName.
func (SystemIdentity) DisplayName() (string, bool) {
	return SystemUserName, true
}

// NamedIdentity is a plain Identity backed by an optional name.
type NamedIdentity struct {
	Name *string
}

// NewNamedIdentity returns an Identity with the given display name.
func NewNamedIdentity(name string) NamedIdentity {
	return NamedIdentity{Name: &name}
}

// DisplayName returns the stored name if any.
func (n NamedIdentity) DisplayName() (string, bool) {
	if n.Name == nil {
		return "", false
	}
	return *n.Name, true
}

// actorName applies the system actor naming policy.
func actorName(identity Identity, actorID int64) *string {
	if actorID == SystemUserID {
		name := SystemUserName
		return &name
	}
	name, ok := identity.DisplayName()
	if !ok {
		return nil
	}
	return &name
}
