package domain

import "time"

// Customer is the account aggregate that cases, proposals, projects and
// orders reference, and that role coverage scopes over.
type Customer struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
