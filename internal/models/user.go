package models

import "errors"

// DemoPassword is shared by every demo account
const DemoPassword = "secret_sauce"

// Login errors
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrBadCredentials   = errors.New("username and password do not match any user")
	ErrUserLockedOut    = errors.New("user has been locked out")
)

// Demo accounts. Only locked_out_user behaves differently in the stand-in.
var users = map[string]bool{
	"standard_user":           false,
	"locked_out_user":         true,
	"problem_user":            false,
	"performance_glitch_user": false,
	"error_user":              false,
	"visual_user":             false,
}

// Authenticate checks demo credentials
func Authenticate(username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	locked, ok := users[username]
	if !ok || password != DemoPassword {
		return ErrBadCredentials
	}
	if locked {
		return ErrUserLockedOut
	}
	return nil
}
