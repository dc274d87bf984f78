package domain

import "time"

// Member vincula un usuario con un customer bajo una credencial.
// Invariante: el par (user_id, customer_id) es unico.
type Member struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Credential   Credential `json:"credential"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
}
