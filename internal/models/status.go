package models

// TaskState is the lifecycle state of a remote export task.
type TaskState string

const (
	TaskPending    TaskState = "pending"
	TaskInProgress TaskState = "in_progress"
	TaskSuccess    TaskState = "success"
	TaskFailure    TaskState = "failure"
)

// TaskStatus is one polled snapshot of an export task.
type TaskStatus struct {
	State         TaskState
	Error         string
	ExportURL     string
	PagesExported int
}

// Terminal reports whether no further state transitions will occur.
// A task is terminal when it failed or when its artifact URL is available.
func (s *TaskStatus) Terminal() bool {
	return s.State == TaskFailure || s.ExportURL != ""
}

// PageResult is the terminal outcome of exporting one page. It is created
// once per task and never mutated afterwards.
type PageResult struct {
	Name          string
	State         TaskState
	ExportURL     string
	File          string
	PagesExported int
	Error         string
}

// Failed reports whether the page export ended in failure.
func (r PageResult) Failed() bool {
	return r.State == TaskFailure
}
