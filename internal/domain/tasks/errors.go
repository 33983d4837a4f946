package tasks

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotAssignee  = errors.New("can only modify your own tasks")
)
