package domain

// Profile holds display fields, one-to-one with the external auth
// identity. Credentials live in the auth provider, not here.
type Profile struct {
	UserID    string
	FullName  string
	Email     string
	Phone     string
	AvatarURL string
}

// Address belongs to a user. At most one address per user has
// IsDefault set; the storage layer maintains the invariant.
type Address struct {
	ID         int64
	UserID     string
	Label      string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
	Phone      string
	IsDefault  bool
}
