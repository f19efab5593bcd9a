package domain

// Session is the locally persisted login state: the bearer token plus
// the identity it belongs to. The backend owns everything else.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session holds a usable identity.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User.Username != ""
}
