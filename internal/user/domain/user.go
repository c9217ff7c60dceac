package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IDSet is an unordered, deduplicated collection of user ids. Iteration
// order is not part of the contract.
type IDSet []string

func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included. No-op if already present.
func (s IDSet) Add(id string) IDSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Remove returns the set with id excluded. No-op if absent.
func (s IDSet) Remove(id string) IDSet {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// User carries its follow edges as mirrored id sets: for any users A and B,
// B is in A.Following exactly when A is in B.Followers. Every edge mutation
// must update both rows inside one transaction.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role      Role      `json:"role" gorm:"not null"`
	Following IDSet     `json:"following" gorm:"serializer:json"`
	Followers IDSet     `json:"followers" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
