package views

import "context"

// RecordEditor is the capability of editing an existing record. Courses and
// enrollments share it; only the presentation differs.
type RecordEditor interface {
	ID() string
	Load(ctx context.Context)
	Set(name, value string)
	Submit(ctx context.Context) error
	Snapshot() FormSnapshot
	Close()
}
