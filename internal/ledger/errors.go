package ledger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

// Error is a rule violation the caller can fix. Code is the HTTP status
// the API answers with.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) *Error {
	return &Error{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func notFound(what, guid string) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf("%s %s not found", what, guid)}
}

func imbalanced(check models.BalanceCheck) *Error {
	return invalidf("transaction is not balanced: debits %s, credits %s, difference %s",
		check.DebitTotal.StringFixed(2), check.CreditTotal.StringFixed(2), check.Difference.String())
}

// lookup turns store.ErrNotFound into a 404 for the named record.
func lookup(err error, what, guid string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(what, guid)
	}
	return err
}
