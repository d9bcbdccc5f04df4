package domain

import "strings"

// PermissionLevel modifies what a page grant allows.
type PermissionLevel string

const (
	LevelReadOnly    PermissionLevel = "ReadOnly"
	LevelFullControl PermissionLevel = "FullControl"
)

// Page names protected by the authorization layer. Admin is special:
// the decision engine treats an Admin grant as a master key for every page.
const (
	PageAdmin     = "Admin"
	PageUsers     = "Users"
	PageRoles     = "Roles"
	PageCustomers = "Customers"
	PageCases     = "Cases"
	PageProposals = "Proposals"
	PageProjects  = "Projects"
	PageOrders    = "Orders"
	PageSLA       = "SlaConfiguration"
	PageAudit     = "Audit"
	PageFiles     = "Files"
	PageDashboard = "Dashboard"
)

// PagePermission grants an access level on one named page.
type PagePermission struct {
	Page  string          `json:"page"`
	Level PermissionLevel `json:"level"`
}

// PermissionSet is an ordered list of page grants. Order matters: on
// duplicate page entries the first listed entry wins at lookup. Write-time
// deduplication is deliberately not performed (see DESIGN.md).
type PermissionSet []PagePermission

// ParsePermissionString decodes the legacy comma-separated "Page" or
// "Page:Level" encoding. Missing levels default to FullControl, tokens
// without a page component are skipped, and parsing never fails. There is
// no escaping for page names containing ',' or ':'; that is a documented
// limit of the representation, not something to repair here.
func ParsePermissionString(raw string) PermissionSet {
	if strings.TrimSpace(raw) == "" {
		return PermissionSet{}
	}
	tokens := strings.Split(raw, ",")
	set := make(PermissionSet, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		page := token
		level := LevelFullControl
		if idx := strings.Index(token, ":"); idx >= 0 {
			page = strings.TrimSpace(token[:idx])
			level = parseLevel(token[idx+1:])
		}
		if page == "" {
			continue
		}
		set = append(set, PagePermission{Page: page, Level: level})
	}
	return set
}

// FormatPermissionString is the inverse encoding, always with explicit levels.
func FormatPermissionString(set PermissionSet) string {
	if len(set) == 0 {
		return ""
	}
	parts := make([]string, 0, len(set))
	for _, perm := range set {
		if perm.Page == "" {
			continue
		}
		parts = append(parts, perm.Page+":"+string(perm.Level))
	}
	return strings.Join(parts, ",")
}

// Grants reports whether the set contains the page at one of the allowed
// levels. Page matching is case-insensitive and the first matching entry
// wins; later duplicates are never consulted.
func (s PermissionSet) Grants(page string, allowed ...PermissionLevel) bool {
	for _, perm := range s {
		if !strings.EqualFold(perm.Page, page) {
			continue
		}
		for _, level := range allowed {
			if perm.Level == level {
				return true
			}
		}
		return false
	}
	return false
}

// Level returns the granted level for a page, first match wins.
func (s PermissionSet) Level(page string) (PermissionLevel, bool) {
	for _, perm := range s {
		if strings.EqualFold(perm.Page, page) {
			return perm.Level, true
		}
	}
	return "", false
}

func parseLevel(raw string) PermissionLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "readonly", "read":
		return LevelReadOnly
	default:
		return LevelFullControl
	}
}
