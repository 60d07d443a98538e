package types

import (
	"errors"
	"fmt"
)

// ErrorKind 错误分类
type ErrorKind string

const (
	ErrKindTimeout         ErrorKind = "timeout"
	ErrKindNetwork         ErrorKind = "network"
	ErrKindElementNotFound ErrorKind = "element_not_found"
	ErrKindSessionInvalid  ErrorKind = "session_invalid"
)

// OpError 带操作名与分类的错误
type OpError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func NewTimeoutError(op string, err error) error {
	return &OpError{Kind: ErrKindTimeout, Op: op, Err: err}
}

func NewNetworkError(op string, err error) error {
	return &OpError{Kind: ErrKindNetwork, Op: op, Err: err}
}

func NewElementNotFoundError(op string, err error) error {
	return &OpError{Kind: ErrKindElementNotFound, Op: op, Err: err}
}

func NewSessionInvalidError(op string) error {
	return &OpError{Kind: ErrKindSessionInvalid, Op: op}
}

// IsKind 判断错误链上是否存在指定分类的OpError
func IsKind(err error, kind ErrorKind) bool {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind == kind
	}
	return false
}
