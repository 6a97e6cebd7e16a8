package schema

import (
	"regexp"
	"time"
	"unicode/utf8"

	"kyri56xcaesar/teamdash/internal/utils"
)

// DateLayout is the calendar date format used by joinDate and dueDate.
const DateLayout = "2006-01-02"

// stable error codes carried by FieldError; human readable messages
// are resolved from these by the messages catalog
const (
	CodeRequired     = "REQUIRED"
	CodeTooShort     = "TOO_SHORT"
	CodeTooLong      = "TOO_LONG"
	CodeInvalidEmail = "INVALID_EMAIL"
	CodeInvalidEnum  = "INVALID_ENUM"
	CodeInvalidDate  = "INVALID_DATE"
	CodePastDate     = "PAST_DATE"
	CodeBelowMin     = "BELOW_MIN"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func fieldErr(field, code string) FieldError {
	return FieldError{Field: field, Code: code, Message: code}
}

// Result is the outcome of validating a candidate entity: either the
// accepted value or the full list of field errors, never both.
type Result[T any] struct {
	OK     bool
	Value  T
	Errors []FieldError
}

func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

func Invalid[T any](errs []FieldError) Result[T] {
	return Result[T]{Errors: errs}
}

// ValidateMember checks a member candidate against the field rules.
// Validation is pure; no defaults are applied here.
func ValidateMember(m Member) Result[Member] {
	var errs []FieldError

	if m.Name == "" {
		errs = append(errs, fieldErr("name", CodeRequired))
	} else if utf8.RuneCountInString(m.Name) < 2 {
		errs = append(errs, fieldErr("name", CodeTooShort))
	}

	if !emailRegex.MatchString(m.Email) {
		errs = append(errs, fieldErr("email", CodeInvalidEmail))
	}

	if !utils.Contains(MemberRoles, m.Role) {
		errs = append(errs, fieldErr("role", CodeInvalidEnum))
	}

	if _, err := time.Parse(DateLayout, m.JoinDate); err != nil {
		errs = append(errs, fieldErr("joinDate", CodeInvalidDate))
	}

	if !utils.Contains(MemberStatuses, m.Status) {
		errs = append(errs, fieldErr("status", CodeInvalidEnum))
	}

	if len(errs) > 0 {
		return Invalid[Member](errs)
	}
	return Ok(m)
}

// ValidateTask checks a task candidate. The due date floor (not before
// today) only applies when enforceDueFloor is set: it holds at creation
// but not when editing overdue legacy tasks.
func ValidateTask(t Task, enforceDueFloor bool) Result[Task] {
	var errs []FieldError

	titleLen := utf8.RuneCountInString(t.Title)
	switch {
	case t.Title == "":
		errs = append(errs, fieldErr("title", CodeRequired))
	case titleLen < 2:
		errs = append(errs, fieldErr("title", CodeTooShort))
	case titleLen > 100:
		errs = append(errs, fieldErr("title", CodeTooLong))
	}

	due, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		errs = append(errs, fieldErr("dueDate", CodeInvalidDate))
	} else if enforceDueFloor && due.Before(today()) {
		errs = append(errs, fieldErr("dueDate", CodePastDate))
	}

	if !utils.Contains(TaskStatuses, t.Status) {
		errs = append(errs, fieldErr("status", CodeInvalidEnum))
	}

	if !utils.Contains(TaskPriorities, t.Priority) {
		errs = append(errs, fieldErr("priority", CodeInvalidEnum))
	}

	if t.MemberID < 1 {
		errs = append(errs, fieldErr("memberId", CodeBelowMin))
	}

	if len(errs) > 0 {
		return Invalid[Task](errs)
	}
	return Ok(t)
}

// CheckMemberField returns the errors of a single field, for live
// validation while a draft is being edited.
func CheckMemberField(m Member, field string) []FieldError {
	return forField(ValidateMember(m).Errors, field)
}

// CheckTaskField returns the errors of a single task field.
func CheckTaskField(t Task, field string, enforceDueFloor bool) []FieldError {
	return forField(ValidateTask(t, enforceDueFloor).Errors, field)
}

func forField(errs []FieldError, field string) []FieldError {
	out := utils.Filter(errs, func(e FieldError) bool { return e.Field == field })
	if len(out) == 0 {
		return nil
	}
	return out
}

// today is the current calendar day parsed with the same layout as the
// candidate dates, so both sides of the comparison carry the same zone.
func today() time.Time {
	floor, _ := time.Parse(DateLayout, time.Now().Format(DateLayout))
	return floor
}
