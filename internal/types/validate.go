package types

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field rule, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable message for each violation.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field paths using JSON names so API clients can match them
	// against request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var indexRe = regexp.MustCompile(`\[\d+\]`)

// fieldMessages maps an index-stripped field path and failed tag to the
// message surfaced to the caller.
var fieldMessages = map[string]map[string]string{
	"company": {
		"required": "Company name is required",
		"max":      "Company name cannot exceed 100 characters",
	},
	"position": {
		"required": "Position is required",
		"max":      "Position cannot exceed 100 characters",
	},
	"status": {
		"required": "Status is required",
		"oneof":    "Status must be one of: applied, interview, offer, rejected, withdrawn",
	},
	"salary": {
		"gte": "Salary cannot be negative",
		"lte": "Salary seems too high",
	},
	"location": {
		"max": "Location cannot exceed 100 characters",
	},
	"jobUrl": {
		"http_url": "Please enter a valid URL",
	},
	"notes": {
		"max": "Notes cannot exceed 1000 characters",
	},
	"priority": {
		"required": "Priority must be one of: low, medium, high",
		"oneof":    "Priority must be one of: low, medium, high",
	},
	"contacts.name": {
		"max": "Contact name cannot exceed 50 characters",
	},
	"contacts.email": {
		"email": "Please enter a valid email",
	},
	"contacts.phone": {
		"max": "Phone number cannot exceed 20 characters",
	},
	"contacts.role": {
		"max": "Role cannot exceed 50 characters",
	},
	"interviews.type": {
		"required": "Interview type must be one of: phone, video, in-person, technical, final",
		"oneof":    "Interview type must be one of: phone, video, in-person, technical, final",
	},
	"interviews.interviewer": {
		"max": "Interviewer name cannot exceed 100 characters",
	},
	"interviews.notes": {
		"max": "Interview notes cannot exceed 500 characters",
	},
	"interviews.outcome": {
		"required": "Interview outcome must be one of: pending, passed, failed, cancelled",
		"oneof":    "Interview outcome must be one of: pending, passed, failed, cancelled",
	},
	"documents.name": {
		"required": "Document name is required",
		"max":      "Document name cannot exceed 100 characters",
	},
	"documents.type": {
		"required": "Document type must be one of: resume, cover_letter, portfolio, certificate, other",
		"oneof":    "Document type must be one of: resume, cover_letter, portfolio, certificate, other",
	},
	"reminders.message": {
		"required": "Reminder message is required",
		"max":      "Reminder message cannot exceed 200 characters",
	},
	"tags": {
		"max": "Tag cannot exceed 30 characters",
	},
}

// Validate checks the record against every field rule and returns a
// *ValidationError listing all violations, or nil when the record is valid.
// Normalize should be called first so defaults are in place.
func (j *JobApplication) Validate() error {
	var fields []FieldError

	if err := validate.Struct(j); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			path := fieldPath(fe)
			fields = append(fields, FieldError{Field: path, Message: messageFor(path, fe.Tag())})
		}
	}

	// Date fields are custom types the tag engine cannot see through;
	// required-ness is checked here.
	if j.DateApplied.IsZero() {
		fields = append(fields, FieldError{Field: "dateApplied", Message: "Application date is required"})
	}
	for i, iv := range j.Interviews {
		if iv.Date.IsZero() {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("interviews[%d].date", i),
				Message: "Interview date is required",
			})
		}
	}
	for i, rm := range j.Reminders {
		if rm.Date.IsZero() {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("reminders[%d].date", i),
				Message: "Reminder date is required",
			})
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// fieldPath converts a validator namespace like
// "JobApplication.contacts[0].email" into "contacts[0].email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(path, tag string) string {
	key := indexRe.ReplaceAllString(path, "")
	if byTag, ok := fieldMessages[key]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", path)
}
