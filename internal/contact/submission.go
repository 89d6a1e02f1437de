// Package contact holds the contact form record and the submit flow that
// forwards it to the email delivery gateway.
package contact

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names one input of the contact form. The string value is the HTML
// input name.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

var ErrUnknownField = errors.New("contact: unknown field")

// ParseField maps an input name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Submission is the data typed into the form between page load and send.
type Submission struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

// Set overwrites one field. Any text is accepted; surrounding whitespace is
// dropped from the email the way an email input does.
func (s *Submission) Set(f Field, value string) error {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = strings.TrimSpace(value)
	case FieldMessage:
		s.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return nil
}

func (s Submission) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return ""
}

func (s *Submission) Reset() {
	*s = Submission{}
}

func (s Submission) IsEmpty() bool {
	return s == Submission{}
}

// Params maps the record onto the hosted template variables.
func (s Submission) Params() map[string]string {
	return map[string]string{
		"from_name": s.Name,
		"reply_to":  strings.TrimSpace(s.Email),
		"message":   s.Message,
	}
}

// ValidationErrors maps each offending field to the failed rule.
type ValidationErrors map[Field]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for f, rule := range v {
		parts = append(parts, string(f)+": "+rule)
	}
	sort.Strings(parts)
	return "contact: invalid submission (" + strings.Join(parts, ", ") + ")"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var structFields = map[string]Field{
	"Name":    FieldName,
	"Email":   FieldEmail,
	"Message": FieldMessage,
}

// Validate checks that every field is filled in and that the email is well
// formed. Whitespace-only values count as empty.
func (s Submission) Validate() error {
	trimmed := Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[structFields[fe.StructField()]] = fe.Tag()
	}
	return out
}
