package gphoto2

// TaskOption configures a Task during creation.
//
// Example:
//
//	// Plain task, no session callbacks
//	t := gphoto2.NewTask(work)
//
//	// Task bound to a session, reporting progress
//	t := gphoto2.NewTask(work,
//		gphoto2.WithContext(ctx),
//		gphoto2.WithProgress(tracker))
type TaskOption func(*taskOptions)

// taskOptions holds optional configuration for task creation.
type taskOptions struct {
	ctx      *Context
	reporter ProgressReporter
}

func defaultTaskOptions() taskOptions {
	return taskOptions{}
}

// WithContext binds a session to the task. For the duration of the task's
// closure the session's native callback slot carries this task's handlers:
// the cancel predicate always, the progress functions when WithProgress is
// also given.
func WithContext(ctx *Context) TaskOption {
	return func(o *taskOptions) {
		o.ctx = ctx
	}
}

// WithProgress binds a progress reporter to the task. It only takes effect
// together with WithContext, since progress events originate in the native
// library and arrive through the session's callback slot. Must be set at
// creation; there is no way to attach a reporter to a running task.
func WithProgress(r ProgressReporter) TaskOption {
	return func(o *taskOptions) {
		o.reporter = r
	}
}
