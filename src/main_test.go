package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseIntoJoinsErrors(t *testing.T) {
	errRun := errors.New("run failed")
	errClose := errors.New("disk full")

	var err error
	closeInto(&err, "close log file", func() error { return nil })
	assert.NoError(t, err)

	closeInto(&err, "close log file", func() error { return errClose })
	assert.ErrorIs(t, err, errClose)
	assert.EqualError(t, err, "failed to close log file: disk full")

	err = errRun
	closeInto(&err, "shut down metrics", func() error { return errClose })
	assert.ErrorIs(t, err, errRun)
	assert.ErrorIs(t, err, errClose)
}
