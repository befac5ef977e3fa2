package models

// UserProfile is the current user as last reported by the API.
type UserProfile struct {
	ID        string
	Name      string
	About     string
	AvatarURL string
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name  string
	About string
}
