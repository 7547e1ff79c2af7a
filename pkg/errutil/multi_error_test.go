package errutil

import (
	"errors"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if err := Multi(); err != nil {
		t.Errorf("Multi() -> %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) -> %v, want nil", err)
	}
	if err := Multi(err1); err != err1 {
		t.Errorf("Multi(err1) -> %v, want err1", err)
	}
	if err := Multi(nil, err1, nil); err != err1 {
		t.Errorf("Multi(nil, err1, nil) -> %v, want err1", err)
	}

	err := Multi(Multi(err1, err2), err3)
	if got, want := err.Error(), "multiple errors: error 1; error 2; error 3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, e := range []error{err1, err2, err3} {
		if !errors.Is(err, e) {
			t.Errorf("errors.Is(multi, %v) = false, want true", e)
		}
	}
}

type closer struct {
	err    error
	closed *[]string
	name   string
}

func (c closer) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestCloseAll(t *testing.T) {
	var closed []string
	err := CloseAll(
		closer{nil, &closed, "a"}, nil, closer{err1, &closed, "b"})
	if err != err1 {
		t.Errorf("CloseAll -> %v, want err1", err)
	}
	if len(closed) != 2 || closed[0] != "b" || closed[1] != "a" {
		t.Errorf("closed in order %v, want [b a]", closed)
	}
}
