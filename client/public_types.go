package client

import "github.com/Carcandyx/baby-steps-client/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	LoginRequest                = types.LoginRequest
	SignupRequest               = types.SignupRequest
	CreateBabyRequest           = types.CreateBabyRequest
	CreateTaskRequest           = types.CreateTaskRequest
	UpdateTaskCompletionRequest = types.UpdateTaskCompletionRequest

	// Domain entities
	User       = types.User
	Baby       = types.Baby
	Gender     = types.Gender
	Activities = types.Activities
	Task       = types.Task

	// Responses
	AuthResponse = types.AuthResponse
)

const (
	GenderMale   = types.GenderMale
	GenderFemale = types.GenderFemale
)
