package domain

import "time"

// MinContacts is the fewest emergency contacts an account may hold.
const MinContacts = 2

// User is one account, keyed by its normalized phone number.
type User struct {
	ID        string
	Phone     string
	Name      string
	PINDigest string   // argon2id PHC string
	Contacts  []string // normalized, ordered, no duplicates
	Silent    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the externally visible part of a User.
type Profile struct {
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Contacts  []string  `json:"contacts"`
	Silent    bool      `json:"silent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) Profile() Profile {
	contacts := make([]string, len(u.Contacts))
	copy(contacts, u.Contacts)

	return Profile{
		Phone:     u.Phone,
		Name:      u.Name,
		Contacts:  contacts,
		Silent:    u.Silent,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
