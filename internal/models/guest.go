package models

// GuestUser returns the fallback identity used for read-only browsing when
// no session is active. It can view the feed but cannot mutate it.
func GuestUser() User {
	return User{
		ID:          "guest",
		Username:    "guest_user",
		DisplayName: "Vision Guest",
		Avatar:      "https://api.dicebear.com/7.x/avataaars/svg?seed=guest",
		Bio:         "Just exploring the vision.",
	}
}
