package container

import (
	"context"
)

type fakeRunner struct {
	calls int
	dir   string
	name  string
	args  []string
	err   error
	block bool
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.calls++
	f.dir = dir
	f.name = name
	f.args = args
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}
