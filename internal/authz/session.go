package authz

import "suinocore/pkg/domain"

// Session mirrors the two named slots the UI collaborator exposes. The core
// reads these and never writes them.
type Session struct {
	Authenticated bool
	CurrentUser   *domain.Employee
}

// SessionFor builds the authenticated session of an employee.
func SessionFor(user domain.Employee) Session {
	return Session{Authenticated: true, CurrentUser: &user}
}

// Anonymous is the unauthenticated session.
func Anonymous() Session {
	return Session{}
}
