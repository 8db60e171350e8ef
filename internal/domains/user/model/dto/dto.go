package dto

import (
	"hotelbook/internal/domains/user/model"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/timezone"
	"strings"

	"github.com/lib/pq"
)

const (
	IdentityEventUserCreated = "user.created"
	IdentityEventUserUpdated = "user.updated"
	IdentityEventUserDeleted = "user.deleted"
)

// EnsureUserRequest carries what a verified token says about its subject.
type EnsureUserRequest struct {
	ID       string
	Email    string
	Username string
	Image    string
}

func (r *EnsureUserRequest) ToModel() model.User {
	email := r.Email
	if email == constant.Empty {
		email = model.PlaceholderEmail
	}

	username := r.Username
	if username == constant.Empty {
		username = model.PlaceholderUsername
	}

	return model.User{
		ID:                   r.ID,
		Email:                email,
		Username:             username,
		Image:                r.Image,
		Role:                 constant.RoleGuest,
		RecentSearchedCities: pq.StringArray{},
		Metadata:             gModel.NewMetadata(constant.ActorSystem, timezone.Now()),
	}
}

type StoreRecentSearchRequest struct {
	RecentSearchedCity string `json:"recentSearchedCity" validate:"required,max=100"`
}

type UserResponse struct {
	ID                   string   `json:"id"`
	Email                string   `json:"email"`
	Username             string   `json:"username"`
	Image                string   `json:"image"`
	Role                 string   `json:"role"`
	RecentSearchedCities []string `json:"recentSearchedCities"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.Username = mod.Username
	r.Image = mod.Image
	r.Role = mod.Role
	r.RecentSearchedCities = append([]string{}, mod.RecentSearchedCities...)
	r.Metadata.FromModel(mod.Metadata)
}

type IdentityEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

type IdentityUserData struct {
	ID             string                 `json:"id"`
	EmailAddresses []IdentityEmailAddress `json:"email_addresses"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Username       string                 `json:"username"`
	ImageURL       string                 `json:"image_url"`
}

// IdentityEvent is the payload the identity provider posts to the user sync webhook.
type IdentityEvent struct {
	Type string           `json:"type"`
	Data IdentityUserData `json:"data"`
}

func (d *IdentityUserData) Email() string {
	for _, address := range d.EmailAddresses {
		if address.EmailAddress != constant.Empty {
			return address.EmailAddress
		}
	}

	return constant.Empty
}

func (d *IdentityUserData) DisplayName() string {
	name := strings.TrimSpace(d.FirstName + " " + d.LastName)
	if name == constant.Empty {
		return d.Username
	}

	return name
}

func (d *IdentityUserData) ToEnsureUserRequest() EnsureUserRequest {
	return EnsureUserRequest{
		ID:       d.ID,
		Email:    d.Email(),
		Username: d.DisplayName(),
		Image:    d.ImageURL,
	}
}
