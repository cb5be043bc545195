package entity

// AdminProfile is the admin record returned by the backend and kept in the
// durable session store.
type AdminProfile struct {
	Auth  *bool  `json:"auth,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Authenticated reports whether the backend marked this record as logged in.
func (p *AdminProfile) Authenticated() bool {
	return p != nil && p.Auth != nil && *p.Auth
}

// LoggedOut reports whether the backend explicitly marked the record as
// logged out. A missing auth field is not a logout.
func (p *AdminProfile) LoggedOut() bool {
	return p != nil && p.Auth != nil && !*p.Auth
}

// AdminSession is the local view of the admin login state.
type AdminSession struct {
	Authenticated bool
	Profile       *AdminProfile
}

// Valid checks that the flag and the profile agree.
func (s AdminSession) Valid() bool {
	return s.Authenticated == (s.Profile != nil)
}
