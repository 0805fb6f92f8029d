package sysinfo

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

var errNotFound = errors.New("executable file not found in $PATH")

// fakeSource serves canned files and command outputs. Commands without a
// response are not invocable.
type fakeSource struct {
	files   map[string]string
	outputs map[string]string
	markers map[string]bool
	ran     []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		files:   make(map[string]string),
		outputs: make(map[string]string),
		markers: make(map[string]bool),
	}
}

func (f *fakeSource) file(path, content string) *fakeSource {
	f.files[path] = content
	return f
}

func (f *fakeSource) cmd(line, output string) *fakeSource {
	f.outputs[line] = output
	return f
}

func (f *fakeSource) marker(path string) *fakeSource {
	f.markers[path] = true
	return f
}

func (f *fakeSource) ReadFile(path string) (string, error) {
	if s, ok := f.files[path]; ok {
		return s, nil
	}
	return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

func (f *fakeSource) Run(_ context.Context, name string, args ...string) (string, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.ran = append(f.ran, line)
	if out, ok := f.outputs[line]; ok {
		return out, nil
	}
	return "", errNotFound
}

func (f *fakeSource) Exists(path string) bool {
	return f.markers[path]
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func newTestProber(src *fakeSource, env map[string]string) *Prober {
	return NewProber(src, nil).WithEnv(envOf(env))
}
