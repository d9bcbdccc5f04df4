package domain

import "time"

// Order is a customer purchase record that cases may reference.
type Order struct {
	ID          string
	CustomerID  string
	Reference   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
