package domain

import "time"

// Profile is the user profile row. PhotoURL either points to a
// previously-successful upload or is null, never to a client-supplied URL.
type Profile struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	PhotoURL  *string    `json:"photo_url,omitempty" db:"photo_url"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// UploadAvatarResponse body of POST /profile/avatar
type UploadAvatarResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}
