package models

// Shopper is the storefront identity forwarded by the auth gateway. The
// gateway sends either first name or full name, and either an email
// address or an email; NewShopper settles on one of each.
type Shopper struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewShopper(firstName, name, emailAddress, email string) Shopper {
	s := Shopper{Name: firstName, Email: emailAddress}
	if s.Name == "" {
		s.Name = name
	}
	if s.Email == "" {
		s.Email = email
	}
	return s
}

func (s Shopper) Anonymous() bool {
	return s.Email == ""
}

// DisplayName falls back to fallback when the gateway sent no name.
func (s Shopper) DisplayName(fallback string) string {
	if s.Name == "" {
		return fallback
	}
	return s.Name
}
