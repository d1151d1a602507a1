package domain

type Role string

const (
	RoleTenant   Role = "TENANT"
	RoleLandlord Role = "LANDLORD"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        Role   `json:"role"`
}

// Session pairs the bearer credential with the identity it proves.
// Both fields are set together or not at all; a session with one but
// not the other is never constructed.
type Session struct {
	Token string
	User  *User
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}
