package domain

import (
	"errors"
	"fmt"
)

// Error kinds raised by the query pipeline. All of them are recoverable
// from the caller's point of view: the user may simply submit another
// query. Catalog load failures are not here; those are fatal at startup.
var (
	ErrPatternNotFound      = errors.New("pattern not found")
	ErrMalformedQuery       = errors.New("malformed query")
	ErrUnknownTarget        = errors.New("unknown target word")
	ErrUnknownVerb          = errors.New("unknown verb")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownRenderTarget  = errors.New("unknown render target")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// userError attaches the text shown to the user to a typed error kind.
type userError struct {
	kind error
	msg  string
}

func (e *userError) Error() string { return fmt.Sprintf("%v: %s", e.kind, e.msg) }
func (e *userError) Unwrap() error { return e.kind }

// NewUserError builds an error of the given kind carrying a message
// that will be printed back to the user verbatim.
func NewUserError(kind error, msg string) error {
	return &userError{kind: kind, msg: msg}
}

// Messages the assistant answers with. The bot speaks Ukrainian.
const (
	MsgPatternNotFound  = "Не вдалось знайти патерн за вашим запитом"
	MsgMalformedQuery   = "На жаль, не можемо обробити ваш запит. Будь ласка, перепишіть його"
	MsgUnknownIntent    = "Не було знайдено патерну, який би відповідав вашому запиту"
	MsgNeedPriceAddress = "Для додавання нової нерухомості необхідно вказати ціну й адресу"
	MsgNeedFullName     = "Для запиту рієлтору необхідно обов'язково внести свій ПІБ"
	MsgInternalFailure  = "Сталась внутрішня помилка. Спробуйте, будь ласка, пізніше"
)

// UserMessage extracts the user-facing text for a pipeline error. Errors
// without an attached message fall back to a per-kind default, and
// anything unrecognized is reported as an internal failure.
func UserMessage(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg
	}
	switch {
	case IsKind(err, ErrPatternNotFound):
		return MsgPatternNotFound
	case IsKind(err, ErrMalformedQuery):
		return MsgMalformedQuery
	case IsKind(err, ErrUnknownTarget),
		IsKind(err, ErrUnknownVerb),
		IsKind(err, ErrPermissionDenied):
		return MsgUnknownIntent
	default:
		return MsgInternalFailure
	}
}
