package workflow

// ValidationError 表示输入本身不合法（对应 HTTP 400）
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// PreconditionError 表示输入合法，但论文当前的状态不允许这次操作（对应 HTTP 409）
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string {
	return e.msg
}

func NewPreconditionError(msg string) *PreconditionError {
	return &PreconditionError{msg: msg}
}
