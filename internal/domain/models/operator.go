package models

import "time"

// Operator is a dashboard account stored locally in MySQL.
type Operator struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never sent to the browser
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Operator roles. Editors cannot delete.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

const StatusActive = "active"

type PublicOperator struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (o *Operator) ToPublic() PublicOperator {
	return PublicOperator{
		ID:       o.ID,
		Name:     o.Name,
		Username: o.Username,
		Email:    o.Email,
		Role:     o.Role,
	}
}
