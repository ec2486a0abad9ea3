package commands

// UserError is a rejection caused by the request itself rather than the
// inventory state. Its message goes to the player verbatim.
type UserError struct {
	Kind    string
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func NewUserError(msg string) *UserError {
	return &UserError{Kind: KindInvalidRequest, Message: msg}
}
