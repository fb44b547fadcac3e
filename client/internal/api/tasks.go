package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// ListTasksForBaby returns the tasks attached to one baby.
func ListTasksForBaby(ctx context.Context, r *Requester, babyID string) ([]types.Task, error) {
	return Do[[]types.Task](ctx, r, "/task/baby/"+url.PathEscape(babyID), RequestOptions{Method: http.MethodGet, Authenticated: true})
}

// ListAllTasks returns every task of the signed-in user.
func ListAllTasks(ctx context.Context, r *Requester) ([]types.Task, error) {
	return Do[[]types.Task](ctx, r, "/task", RequestOptions{Method: http.MethodGet, Authenticated: true})
}

// CreateTask creates a task.
func CreateTask(ctx context.Context, r *Requester, req types.CreateTaskRequest) (*types.Task, error) {
	t, err := Do[types.Task](ctx, r, "/task", RequestOptions{Method: http.MethodPost, Body: req, Authenticated: true})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetTaskCompletion sets the completed flag of a task and returns the task
// as the backend now has it.
func SetTaskCompletion(ctx context.Context, r *Requester, taskID string, completed bool, babyID string) (*types.Task, error) {
	t, err := Do[types.Task](ctx, r, "/task/"+url.PathEscape(taskID), RequestOptions{
		Method:        http.MethodPatch,
		Body:          types.UpdateTaskCompletionRequest{Completed: completed, BabyID: babyID},
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}
