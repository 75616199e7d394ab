package model

import (
	"database/sql/driver"
	"fmt"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// Value implements driver.Valuer so an unknown role never reaches the database.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %q", string(r))
	}
	return string(r), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
