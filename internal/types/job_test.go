package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() *JobApplication {
	return &JobApplication{
		UserID:      uuid.New(),
		Company:     "Acme",
		Position:    "Engineer",
		Status:      StatusApplied,
		DateApplied: NewDate(2024, time.January, 1),
		Priority:    PriorityMedium,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestValidate_ValidRecord(t *testing.T) {
	j := validJob()
	j.Normalize(time.Now())
	assert.NoError(t, j.Validate())
}

func TestValidate_FieldRules(t *testing.T) {
	longString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name    string
		mutate  func(j *JobApplication)
		wantMsg string
	}{
		{
			name:    "missing company",
			mutate:  func(j *JobApplication) { j.Company = "" },
			wantMsg: "Company name is required",
		},
		{
			name:    "company too long",
			mutate:  func(j *JobApplication) { j.Company = longString(101) },
			wantMsg: "Company name cannot exceed 100 characters",
		},
		{
			name:    "missing position",
			mutate:  func(j *JobApplication) { j.Position = "" },
			wantMsg: "Position is required",
		},
		{
			name:    "unknown status",
			mutate:  func(j *JobApplication) { j.Status = "ghosted" },
			wantMsg: "Status must be one of: applied, interview, offer, rejected, withdrawn",
		},
		{
			name:    "missing date applied",
			mutate:  func(j *JobApplication) { j.DateApplied = Date{} },
			wantMsg: "Application date is required",
		},
		{
			name:    "negative salary",
			mutate:  func(j *JobApplication) { j.Salary = floatPtr(-1) },
			wantMsg: "Salary cannot be negative",
		},
		{
			name:    "salary too high",
			mutate:  func(j *JobApplication) { j.Salary = floatPtr(10000001) },
			wantMsg: "Salary seems too high",
		},
		{
			name:    "non-http job url",
			mutate:  func(j *JobApplication) { j.JobURL = "ftp://x" },
			wantMsg: "Please enter a valid URL",
		},
		{
			name:    "notes too long",
			mutate:  func(j *JobApplication) { j.Notes = longString(1001) },
			wantMsg: "Notes cannot exceed 1000 characters",
		},
		{
			name:    "unknown priority",
			mutate:  func(j *JobApplication) { j.Priority = "urgent" },
			wantMsg: "Priority must be one of: low, medium, high",
		},
		{
			name: "bad contact email",
			mutate: func(j *JobApplication) {
				j.Contacts = []Contact{{Name: "Sam", Email: "not-an-email"}}
			},
			wantMsg: "Please enter a valid email",
		},
		{
			name: "contact phone too long",
			mutate: func(j *JobApplication) {
				j.Contacts = []Contact{{Phone: longString(21)}}
			},
			wantMsg: "Phone number cannot exceed 20 characters",
		},
		{
			name: "interview missing type",
			mutate: func(j *JobApplication) {
				j.Interviews = []Interview{{Date: NewDate(2024, time.February, 1)}}
			},
			wantMsg: "Interview type must be one of: phone, video, in-person, technical, final",
		},
		{
			name: "interview missing date",
			mutate: func(j *JobApplication) {
				j.Interviews = []Interview{{Type: InterviewPhone}}
			},
			wantMsg: "Interview date is required",
		},
		{
			name: "document missing name",
			mutate: func(j *JobApplication) {
				j.Documents = []Document{{Type: DocumentResume}}
			},
			wantMsg: "Document name is required",
		},
		{
			name: "document unknown type",
			mutate: func(j *JobApplication) {
				j.Documents = []Document{{Name: "cv.pdf", Type: "spreadsheet"}}
			},
			wantMsg: "Document type must be one of: resume, cover_letter, portfolio, certificate, other",
		},
		{
			name: "reminder missing message",
			mutate: func(j *JobApplication) {
				j.Reminders = []Reminder{{Date: NewDate(2024, time.March, 1)}}
			},
			wantMsg: "Reminder message is required",
		},
		{
			name: "tag too long",
			mutate: func(j *JobApplication) {
				j.Tags = []string{longString(31)}
			},
			wantMsg: "Tag cannot exceed 30 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(j)
			j.Normalize(time.Now())

			err := j.Validate()
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Contains(t, verr.Messages(), tt.wantMsg)
		})
	}
}

func TestValidate_JobURLVariants(t *testing.T) {
	j := validJob()
	j.Normalize(time.Now())
	assert.NoError(t, j.Validate(), "absent jobUrl should validate")

	j.JobURL = "https://x.com"
	assert.NoError(t, j.Validate())

	j.JobURL = "http://jobs.example.com/posting/42"
	assert.NoError(t, j.Validate())
}

func TestValidate_SalaryBoundaries(t *testing.T) {
	j := validJob()
	j.Salary = floatPtr(0)
	j.Normalize(time.Now())
	assert.NoError(t, j.Validate(), "zero salary should validate")

	j.Salary = floatPtr(10000000)
	assert.NoError(t, j.Validate(), "exact cap should validate")
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	j := validJob()
	j.Company = ""
	j.Position = ""
	j.Salary = floatPtr(-5)
	j.JobURL = "ftp://x"
	j.Normalize(time.Now())

	err := j.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	msgs := verr.Messages()
	assert.Contains(t, msgs, "Company name is required")
	assert.Contains(t, msgs, "Position is required")
	assert.Contains(t, msgs, "Salary cannot be negative")
	assert.Contains(t, msgs, "Please enter a valid URL")
	assert.Len(t, verr.Fields, 4)
}

func TestNormalize_Defaults(t *testing.T) {
	now := time.Now()
	j := &JobApplication{
		Company:     "  Acme  ",
		Position:    "Engineer",
		DateApplied: NewDate(2024, time.January, 1),
		Contacts:    []Contact{{Email: "Recruiter@Example.COM"}},
		Interviews:  []Interview{{Date: NewDate(2024, time.February, 1), Type: InterviewVideo}},
		Documents:   []Document{{Name: "cv.pdf", Type: DocumentResume}},
	}
	j.Normalize(now)

	assert.Equal(t, "Acme", j.Company)
	assert.Equal(t, StatusApplied, j.Status)
	assert.Equal(t, PriorityMedium, j.Priority)
	assert.Equal(t, "recruiter@example.com", j.Contacts[0].Email)
	assert.Equal(t, OutcomePending, j.Interviews[0].Outcome)
	assert.Equal(t, now, j.Documents[0].UploadDate)
	assert.NotEqual(t, uuid.Nil, j.Contacts[0].ID)
	assert.NotEqual(t, uuid.Nil, j.Interviews[0].ID)
	assert.NotEqual(t, uuid.Nil, j.Documents[0].ID)
}

func TestDaysSinceApplication(t *testing.T) {
	j := validJob()
	j.DateApplied = NewDate(2024, time.January, 1)

	now := time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 11, j.DaysSinceApplication(now), "partial days round up")

	now = time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, j.DaysSinceApplication(now))
}

func TestOverdueForFollowUp(t *testing.T) {
	j := validJob()
	j.DateApplied = NewDate(2024, time.January, 1)

	tests := []struct {
		name   string
		status Status
		now    time.Time
		want   bool
	}{
		{"applied within window", StatusApplied, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), false},
		{"applied past 14 days", StatusApplied, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), true},
		{"interview within window", StatusInterview, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), false},
		{"interview past 7 days", StatusInterview, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), true},
		{"offer never overdue", StatusOffer, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j.Status = tt.status
			assert.Equal(t, tt.want, j.OverdueForFollowUp(tt.now))
		})
	}
}

func TestJobUpdate_ApplyTo(t *testing.T) {
	j := validJob()
	j.Notes = "original"

	newStatus := StatusInterview
	newCompany := "Initech"
	upd := &JobUpdate{
		Status:  &newStatus,
		Company: &newCompany,
		Tags:    &[]string{"remote"},
	}
	upd.ApplyTo(j)

	assert.Equal(t, StatusInterview, j.Status)
	assert.Equal(t, "Initech", j.Company)
	assert.Equal(t, []string{"remote"}, j.Tags)
	assert.Equal(t, "original", j.Notes, "unset fields stay untouched")
	assert.Equal(t, "Engineer", j.Position)
}
