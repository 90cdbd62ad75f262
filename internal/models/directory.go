package models

import "strings"

// Student is a read-only directory entry used for display-name resolution.
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins the name parts the way the console renders them.
func (s Student) DisplayName() string {
	return joinName(s.FirstName, s.LastName)
}

// Teacher is a read-only directory entry used for display-name resolution.
type Teacher struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins the name parts the way the console renders them.
func (t Teacher) DisplayName() string {
	return joinName(t.FirstName, t.LastName)
}

func joinName(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
