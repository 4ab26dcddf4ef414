package model

// PersonType distinguishes human users from bots.
type PersonType string

const (
	PersonTypePerson PersonType = "person"
	PersonTypeBot    PersonType = "bot"
)

// Person represents a Webex user profile.
type Person struct {
	ID          string     `json:"id"`
	Emails      []string   `json:"emails"`
	DisplayName string     `json:"displayName"`
	Type        PersonType `json:"type,omitempty"`
}

// PrimaryEmail returns the first email on the profile, or "" if there is none.
func (p *Person) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}
