package models

// User represents a registered account in the system. CPF is always stored
// normalized (digits only).
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	PasswordHash string `json:"-"` // Never expose this to the client
}
