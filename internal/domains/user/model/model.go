package model

import (
	"hotelbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                   = "id"
	FieldEmail                = "email"
	FieldUsername             = "username"
	FieldImage                = "image"
	FieldRole                 = "role"
	FieldRecentSearchedCities = "recent_searched_cities"
)

const (
	PlaceholderEmail    = "unknown@example.com"
	PlaceholderUsername = "Unknown User"

	MaxRecentSearchedCities = 3
)

// User mirrors an account of the identity provider. ID is the provider's subject.
type User struct {
	ID                   string         `db:"id"`
	Email                string         `db:"email"`
	Username             string         `db:"username"`
	Image                string         `db:"image"`
	Role                 string         `db:"role"`
	RecentSearchedCities pq.StringArray `db:"recent_searched_cities"`
	model.Metadata
}
