package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Review struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Country   string    `json:"country"`
	Rating    int       `json:"rating"` // 1..5
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// Initials builds the avatar monogram from the first letters of the names.
func (r Review) Initials() string {
	return firstRuneUpper(r.FirstName) + firstRuneUpper(r.LastName)
}

func firstRuneUpper(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	c, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(c))
}
