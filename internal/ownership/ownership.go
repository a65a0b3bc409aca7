// Package ownership builds the row filters that scope every category and
// item query to the requesting user.
package ownership

import "gorm.io/gorm"

// Filter restricts a query to rows owned by UserID. When IncludeShared is set,
// rows with a NULL owner (global rows) also match.
type Filter struct {
	UserID        string
	IncludeShared bool
}

// For returns the filter for userID. Item operations pass includeShared=false;
// category reads pass true.
func For(userID string, includeShared bool) Filter {
	return Filter{UserID: userID, IncludeShared: includeShared}
}

// Scope applies the filter for use with db.Scopes. An empty user id matches
// nothing.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	if f.UserID == "" {
		return db.Where("1 = 0")
	}
	if f.IncludeShared {
		return db.Where("(user_id IS NULL OR user_id = ?)", f.UserID)
	}
	return db.Where("user_id = ?", f.UserID)
}

// Allows reports whether a row with the given owner passes the filter.
func (f Filter) Allows(owner *string) bool {
	if f.UserID == "" {
		return false
	}
	if owner == nil {
		return f.IncludeShared
	}
	return *owner == f.UserID
}
