package domain

import "time"

// Role names a set of page permissions plus a customer coverage scope.
// Permissions are held as a typed set; the legacy delimited string form
// exists only at the storage boundary.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions PermissionSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CoverageScope restricts which customers a role's members may see.
// The zero value (AllCustomers=false, empty ids) is an empty scope and
// should not occur for stored roles; an empty coverage row set at rest
// decodes to AllCustomers.
type CoverageScope struct {
	AllCustomers bool
	CustomerIDs  []string
}

// AllCustomersScope is the unrestricted scope.
func AllCustomersScope() CoverageScope {
	return CoverageScope{AllCustomers: true}
}

// SpecificCustomersScope restricts to the given customer ids.
func SpecificCustomersScope(ids []string) CoverageScope {
	if len(ids) == 0 {
		return AllCustomersScope()
	}
	return CoverageScope{CustomerIDs: ids}
}

// Covers reports whether the scope admits the given customer.
func (s CoverageScope) Covers(customerID string) bool {
	if s.AllCustomers {
		return true
	}
	for _, id := range s.CustomerIDs {
		if id == customerID {
			return true
		}
	}
	return false
}
