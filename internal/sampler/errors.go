package sampler

import (
	"errors"
	"fmt"
)

const (
	errCodeHandshakeTimeout errCode = iota
	errCodeSpawnFailed
	errCodeClosed
	errCodeBadLine
)

type errCode int

var errs = [...]error{
	errCodeHandshakeTimeout: errors.New("sampler did not hand shake in time"),
	errCodeSpawnFailed:      errors.New("failed to spawn sampler subprocess"),
	errCodeClosed:           errors.New("sampler subprocess is not open"),
	errCodeBadLine:          errors.New("response line did not match the expected prefix"),
}

// ClientError reports a failure to open or speak to a sampler subprocess.
type ClientError struct {
	code errCode
	line string
	err  error
}

// Unwrap implements error unwrapping via [errors.Unwrap].
func (e *ClientError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return errs[e.code]
}

// Error implements [error].
func (e *ClientError) Error() string {
	if e.line != "" {
		return fmt.Sprintf("sampler: %v: %q", e.Unwrap(), e.line)
	}
	return fmt.Sprintf("sampler: %v", e.Unwrap())
}

func errHandshakeTimeout() error { return &ClientError{code: errCodeHandshakeTimeout} }

func errSpawnFailed(err error) error { return &ClientError{code: errCodeSpawnFailed, err: err} }

func errClosed() error { return &ClientError{code: errCodeClosed} }

func errBadLine(line string) error { return &ClientError{code: errCodeBadLine, line: line} }
