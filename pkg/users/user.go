package users

// User is a member of the research network. There is no registration or
// login; the app runs as a single local user among sample profiles.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	AvatarURL   string `json:"avatarUrl"`
}
