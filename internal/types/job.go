// Package types provides type definitions for structured data used throughout the job tracker.
package types

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status tracks where an application sits in the hiring pipeline.
// Any status may follow any other; real pipelines reopen and reclassify.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Statuses lists every valid status, in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn}

// Priority is the user-assigned importance of an application.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// InterviewType classifies an interview round.
type InterviewType string

const (
	InterviewPhone     InterviewType = "phone"
	InterviewVideo     InterviewType = "video"
	InterviewInPerson  InterviewType = "in-person"
	InterviewTechnical InterviewType = "technical"
	InterviewFinal     InterviewType = "final"
)

// InterviewOutcome records how an interview round went.
type InterviewOutcome string

const (
	OutcomePending   InterviewOutcome = "pending"
	OutcomePassed    InterviewOutcome = "passed"
	OutcomeFailed    InterviewOutcome = "failed"
	OutcomeCancelled InterviewOutcome = "cancelled"
)

// DocumentType classifies an attached document.
type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
	DocumentPortfolio   DocumentType = "portfolio"
	DocumentCertificate DocumentType = "certificate"
	DocumentOther       DocumentType = "other"
)

// Contact is a person attached to an application. All fields are optional.
type Contact struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty" validate:"max=50"`
	Email string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone string    `json:"phone,omitempty" validate:"max=20"`
	Role  string    `json:"role,omitempty" validate:"max=50"`
}

// Interview is a scheduled or completed interview round.
type Interview struct {
	ID          uuid.UUID        `json:"id"`
	Date        Date             `json:"date"`
	Type        InterviewType    `json:"type" validate:"required,oneof=phone video in-person technical final"`
	Interviewer string           `json:"interviewer,omitempty" validate:"max=100"`
	Notes       string           `json:"notes,omitempty" validate:"max=500"`
	Outcome     InterviewOutcome `json:"outcome" validate:"required,oneof=pending passed failed cancelled"`
}

// Document is a file attached to an application.
type Document struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name" validate:"required,max=100"`
	Type       DocumentType `json:"type" validate:"required,oneof=resume cover_letter portfolio certificate other"`
	URL        string       `json:"url,omitempty"`
	UploadDate time.Time    `json:"uploadDate"`
}

// Reminder is a dated follow-up note.
type Reminder struct {
	ID          uuid.UUID `json:"id"`
	Date        Date      `json:"date"`
	Message     string    `json:"message" validate:"required,max=200"`
	IsCompleted bool      `json:"isCompleted"`
}

// JobApplication is the root record of the tracker. Every record is owned
// by exactly one user; the owner is always assigned by the server, never
// taken from client input.
type JobApplication struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Company     string    `json:"company" validate:"required,max=100"`
	Position    string    `json:"position" validate:"required,max=100"`
	Status      Status    `json:"status" validate:"required,oneof=applied interview offer rejected withdrawn"`
	DateApplied Date      `json:"dateApplied"`
	Salary      *float64  `json:"salary,omitempty" validate:"omitempty,gte=0,lte=10000000"`
	Location    string    `json:"location,omitempty" validate:"max=100"`
	JobURL      string    `json:"jobUrl,omitempty" validate:"omitempty,http_url"`
	Notes       string    `json:"notes,omitempty" validate:"max=1000"`
	Priority    Priority  `json:"priority" validate:"required,oneof=low medium high"`

	Contacts   []Contact   `json:"contacts" validate:"dive"`
	Interviews []Interview `json:"interviews" validate:"dive"`
	Documents  []Document  `json:"documents" validate:"dive"`
	Reminders  []Reminder  `json:"reminders" validate:"dive"`
	Tags       []string    `json:"tags" validate:"dive,max=30"`

	IsArchived bool `json:"isArchived"`

	// LastUpdated is recomputed by the store on every accepted mutation and
	// is monotonically non-decreasing. Clients cannot set it.
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize trims text fields, lowercases contact emails, and applies
// enum and timestamp defaults. Called before validation.
func (j *JobApplication) Normalize(now time.Time) {
	j.Company = strings.TrimSpace(j.Company)
	j.Position = strings.TrimSpace(j.Position)
	j.Location = strings.TrimSpace(j.Location)
	j.JobURL = strings.TrimSpace(j.JobURL)
	j.Notes = strings.TrimSpace(j.Notes)

	if j.Status == "" {
		j.Status = StatusApplied
	}
	if j.Priority == "" {
		j.Priority = PriorityMedium
	}

	for i := range j.Contacts {
		c := &j.Contacts[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))
		c.Phone = strings.TrimSpace(c.Phone)
		c.Role = strings.TrimSpace(c.Role)
	}

	for i := range j.Interviews {
		iv := &j.Interviews[i]
		if iv.ID == uuid.Nil {
			iv.ID = uuid.New()
		}
		iv.Interviewer = strings.TrimSpace(iv.Interviewer)
		iv.Notes = strings.TrimSpace(iv.Notes)
		if iv.Outcome == "" {
			iv.Outcome = OutcomePending
		}
	}

	for i := range j.Documents {
		d := &j.Documents[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.Name = strings.TrimSpace(d.Name)
		d.URL = strings.TrimSpace(d.URL)
		if d.UploadDate.IsZero() {
			d.UploadDate = now
		}
	}

	for i := range j.Reminders {
		rm := &j.Reminders[i]
		if rm.ID == uuid.Nil {
			rm.ID = uuid.New()
		}
		rm.Message = strings.TrimSpace(rm.Message)
	}

	for i := range j.Tags {
		j.Tags[i] = strings.TrimSpace(j.Tags[i])
	}
}

// DaysSinceApplication returns the elapsed whole days between now and the
// application date, rounded up.
func (j *JobApplication) DaysSinceApplication(now time.Time) int {
	diff := now.Sub(j.DateApplied.Time)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// OverdueForFollowUp reports whether the application has sat untouched too
// long: more than 14 days after applying, or more than 7 days in interview.
func (j *JobApplication) OverdueForFollowUp(now time.Time) bool {
	days := j.DaysSinceApplication(now)
	if j.Status == StatusApplied && days > 14 {
		return true
	}
	if j.Status == StatusInterview && days > 7 {
		return true
	}
	return false
}

// JobUpdate carries a partial update. Nil fields are left untouched; the
// merged record is re-validated as a whole before being stored.
type JobUpdate struct {
	Company     *string      `json:"company"`
	Position    *string      `json:"position"`
	Status      *Status      `json:"status"`
	DateApplied *Date        `json:"dateApplied"`
	Salary      *float64     `json:"salary"`
	Location    *string      `json:"location"`
	JobURL      *string      `json:"jobUrl"`
	Notes       *string      `json:"notes"`
	Priority    *Priority    `json:"priority"`
	Contacts    *[]Contact   `json:"contacts"`
	Interviews  *[]Interview `json:"interviews"`
	Documents   *[]Document  `json:"documents"`
	Reminders   *[]Reminder  `json:"reminders"`
	Tags        *[]string    `json:"tags"`
	IsArchived  *bool        `json:"isArchived"`
}

// ApplyTo merges the set fields of the update onto the record.
func (u *JobUpdate) ApplyTo(j *JobApplication) {
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Position != nil {
		j.Position = *u.Position
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.DateApplied != nil {
		j.DateApplied = *u.DateApplied
	}
	if u.Salary != nil {
		j.Salary = u.Salary
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.JobURL != nil {
		j.JobURL = *u.JobURL
	}
	if u.Notes != nil {
		j.Notes = *u.Notes
	}
	if u.Priority != nil {
		j.Priority = *u.Priority
	}
	if u.Contacts != nil {
		j.Contacts = *u.Contacts
	}
	if u.Interviews != nil {
		j.Interviews = *u.Interviews
	}
	if u.Documents != nil {
		j.Documents = *u.Documents
	}
	if u.Reminders != nil {
		j.Reminders = *u.Reminders
	}
	if u.Tags != nil {
		j.Tags = *u.Tags
	}
	if u.IsArchived != nil {
		j.IsArchived = *u.IsArchived
	}
}
