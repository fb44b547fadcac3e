package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// LoginRequest is the body of POST /auth/sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/sign-up.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CreateBabyRequest holds parameters for a new baby.
type CreateBabyRequest struct {
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
	Gender    Gender    `json:"gender"`
	Height    string    `json:"height,omitempty"`
	Weight    string    `json:"weight,omitempty"`
}

// DeleteBabyRequest is sent as the body of DELETE /baby.
type DeleteBabyRequest struct {
	BabyID string `json:"babyId"`
}

// CreateTaskRequest holds parameters for a new task.
type CreateTaskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	BabyID       string    `json:"babyId"`
	DeadlineDate time.Time `json:"deadlineDate"`
}

// UpdateTaskCompletionRequest is the body of PATCH /task/:id.
type UpdateTaskCompletionRequest struct {
	Completed bool   `json:"completed"`
	BabyID    string `json:"babyId"`
}
