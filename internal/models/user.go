package models

import "time"

// User is a registered account together with its health profile.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Profile          Profile   `json:"profile"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Health profile filled in after signup. Every field is optional until the
// details form is submitted.
type Profile struct {
	Name     *string  `json:"name,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Gender   *string  `json:"gender,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Diseases []string `json:"diseases"`
}

// HasBody reports whether height and weight are both known and positive.
func (p Profile) HasBody() bool {
	return p.Height != nil && p.Weight != nil && *p.Height > 0 && *p.Weight > 0
}
