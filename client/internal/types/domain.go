package types

import (
	"encoding/json"
	"time"
	"unicode"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// The backend is Mongo-backed and emits "_id"; other deployments emit "id".
// Every entity below accepts either on decode and always encodes "id".

// User is the profile returned by sign-in/sign-up and cached in the session.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Initials returns the upper-case first letters of the first and last name.
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var out []rune
	for _, s := range []string{u.FirstName, u.LastName} {
		for _, r := range s {
			out = append(out, unicode.ToUpper(r))
			break
		}
	}
	return string(out)
}

// Gender of a baby as the backend spells it.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the values the backend accepts.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// Activities holds the last time each tracked activity happened.
type Activities struct {
	Feeding *time.Time `json:"feeding,omitempty"`
	Diaper  *time.Time `json:"diaper,omitempty"`
	Sleep   *time.Time `json:"sleep,omitempty"`
}

// Baby is a child profile owned by the authenticated user.
type Baby struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	BirthDate  time.Time   `json:"birthDate"`
	Gender     Gender      `json:"gender"`
	Weight     string      `json:"weight,omitempty"`
	Height     string      `json:"height,omitempty"`
	Activities *Activities `json:"activities,omitempty"`
}

func (b *Baby) UnmarshalJSON(data []byte) error {
	type alias Baby
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = aux.MongoID
	}
	return nil
}

// Task is a to-do item attached to a baby. Completed is the only field the
// client mutates.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Completed    bool      `json:"completed"`
	DeadlineDate time.Time `json:"deadlineDate"`
	BabyID       string    `json:"babyId,omitempty"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.MongoID
	}
	return nil
}
