package domain

import "time"

// Notifications son las preferencias de notificacion del usuario.
type Notifications struct {
	Mute    bool `json:"mute"`
	Push    bool `json:"push"`
	Email   bool `json:"email"`
	Desktop bool `json:"desktop"`
}

// DefaultNotifications devuelve las preferencias iniciales de un usuario.
func DefaultNotifications() Notifications {
	return Notifications{
		Mute:    false,
		Push:    true,
		Email:   true,
		Desktop: true,
	}
}

type User struct {
	ID                  string        `json:"id"`
	Username            string        `json:"username"`
	Email               string        `json:"email"`
	Name                string        `json:"name,omitempty"`
	Enabled             bool          `json:"enabled"`
	Bot                 bool          `json:"-"`
	InvitationToken     string        `json:"-"`
	Notifications       Notifications `json:"notifications"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
	CreatedAt           time.Time     `json:"created_at"`
}
