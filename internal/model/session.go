package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile is the user object returned by POST /login and GET /user.
type Profile struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	Role              Role   `json:"role,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// Session is what a client has persisted after login. A token without a
// readable profile does not count as authenticated.
type Session struct {
	Token   string   `json:"-"`
	Profile *Profile `json:"profile,omitempty"`
}

func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.Profile != nil
}

func (s Session) Role() Role {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.Role
}

func (s Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role() == RoleAdmin
}

func (s Session) DisplayName() string {
	if s.Profile == nil {
		return "Traveler"
	}
	if s.Profile.Name != "" {
		return s.Profile.Name
	}
	if s.Profile.Email != "" {
		return s.Profile.Email
	}
	return "Traveler"
}
