package domain

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrFailedPrecondition = errors.New("failed precondition")

	// Storage error, not a rule violation.
	ErrAccountNotFound = errors.New("account not found")
)

var (
	ErrAccountNumberNotPositive = invalidArgument("Account number must be positive")
	ErrNegativeInitialBalance   = invalidArgument("Initial balance must be a positive amount")
	ErrInterestRateOutOfRange   = invalidArgument("Interest rate must be between 0.00 - 0.10")
	ErrNegativeDeposit          = invalidArgument("Amount to deposit cannot be negative")
	ErrNegativeWithdraw         = invalidArgument("Amount to withdraw cannot be negative")
	ErrWithdrawExceedsBalance   = invalidArgument("Amount to withdraw cannot exceed the balance")

	ErrMissingRepository   = invalidArgument("Missing Account Repository")
	ErrNilAccount          = invalidArgument("Account cannot be null")
	ErrAccountNumberInUse  = invalidArgument("Account number already in use")
	ErrNoAccountToRemove   = invalidArgument("No account to remove")
	ErrNonExistingAccount  = invalidArgument("Non-existing account number")
	ErrNegativeTransfer    = invalidArgument("Amount to transfer cannot be negative")
	ErrAccountDoesNotExist = failedPrecondition("Account does not exist")
	ErrAccountNotEmpty     = failedPrecondition("Account must be empty before removal")
)

// Error matches both its own value and its Kind with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidArgument(message string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: message}
}

func failedPrecondition(message string) *Error {
	return &Error{Kind: ErrFailedPrecondition, Message: message}
}
