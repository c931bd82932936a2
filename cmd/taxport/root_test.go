package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSysErrMarksEnvironmentFailures(t *testing.T) {
	base := errors.New("disk full")
	err := error(sysErr{fmt.Errorf("save client SMITH01: %w", base)})

	var se sysErr
	assert.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, base, "the underlying cause stays reachable")
	assert.Contains(t, err.Error(), "disk full")
}

func TestPlainErrorsAreUserErrors(t *testing.T) {
	var se sysErr
	assert.False(t, errors.As(errors.New("client not found"), &se))
}
