package dto

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreatePostRequestRequiresDateForEventPosts(t *testing.T) {
	req := &CreatePostRequest{Type: "event", Title: "Hackathon", Content: "48h of code"}
	err := req.Validate()
	require.Error(t, err)

	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "eventDate")

	req.EventDate = strPtr("2026-11-05")
	assert.NoError(t, req.Validate())

	announcement := &CreatePostRequest{Type: "announcement", Title: "Hello", Content: "Welcome"}
	assert.NoError(t, announcement.Validate())
}

func TestCreatePostRequestRejectsUnknownType(t *testing.T) {
	req := &CreatePostRequest{Type: "poll", Title: "Vote", Content: "?"}
	assert.Error(t, req.Validate())
}

func TestCreateEventRequestValidateAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	base := func() *CreateEventRequest {
		return &CreateEventRequest{
			Title:        "Career Fair",
			Description:  "Meet employers",
			Category:     "Academic",
			Date:         "2026-03-11",
			Time:         "10:00",
			LocationType: "virtual",
		}
	}

	assert.NoError(t, base().ValidateAt(now))

	today := base()
	today.Date = "2026-03-10"
	err := today.ValidateAt(now)
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "date")

	inPerson := base()
	inPerson.LocationType = "in-person"
	err = inPerson.ValidateAt(now)
	require.Error(t, err)
	assert.Contains(t, err.(validation.Errors), "locationDetail")

	inPerson.LocationDetail = "Main Hall"
	assert.NoError(t, inPerson.ValidateAt(now))

	badCategory := base()
	badCategory.Category = "Party"
	assert.Error(t, badCategory.ValidateAt(now))
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.False(t, IsFutureDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsFutureDate(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsFutureDate(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), now))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-11-05")
	require.NoError(t, err)
	assert.Equal(t, 5, d.Day())

	_, err = ParseDate("2026-11-05T10:00:00Z")
	assert.NoError(t, err)

	_, err = ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestAlumniSignupRequestValidate(t *testing.T) {
	req := &AlumniSignupRequest{
		Name:          "Sam",
		Email:         "sam@alumni.edu",
		Password:      "secret1",
		PassingYear:   2018,
		CurrentStatus: "employed",
	}
	require.NoError(t, req.Validate())

	req.CurrentStatus = "retired"
	assert.Error(t, req.Validate())

	req.CurrentStatus = "phd"
	req.Bio = string(make([]byte, 501))
	assert.Error(t, req.Validate())
}

func TestCreateGroupRequestDefaults(t *testing.T) {
	req := &CreateGroupRequest{Name: "Algo", Subject: "CS", Tags: []string{"Graphs"}}
	require.NoError(t, req.Validate())

	g := req.ToModel(9)
	assert.Equal(t, models.VisibilityPublic, g.Visibility)
	assert.Equal(t, models.MeetingVirtual, g.MeetingType)
	assert.Equal(t, models.DefaultGroupMaxMembers, g.MaxMembers)
	assert.Equal(t, []string{"graphs"}, g.Tags)
	assert.Equal(t, int64(9), g.CreatedBy)

	req.MaxMembers = intPtr(2)
	assert.Equal(t, 2, req.ToModel(9).MaxMembers)

	req.Visibility = "hidden"
	assert.Error(t, req.Validate())
}

func TestCreateProjectRequestToModel(t *testing.T) {
	req := &CreateProjectRequest{Title: "Nav", Description: "Maps", MaxMembers: 3, Deadline: strPtr("2027-01-15")}
	require.NoError(t, req.Validate())

	p, err := req.ToModel(4)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectOpen, p.Status)
	require.NotNil(t, p.Deadline)
	assert.Equal(t, time.January, p.Deadline.Month())
}

func TestNewUserResponseVariants(t *testing.T) {
	student := &models.User{ID: 1, Name: "S", Role: models.RoleUser, Student: &models.StudentProfile{Course: "CS", Year: 0}}
	resp := NewUserResponse(student)
	require.NotNil(t, resp.Year)
	assert.Equal(t, 0, *resp.Year)
	assert.Nil(t, resp.PassingYear)

	alumni := &models.User{ID: 2, Name: "A", Role: models.RoleAlumni, Alumni: &models.AlumniProfile{PassingYear: 2015, CurrentStatus: models.AlumniMasters}}
	resp = NewUserResponse(alumni)
	assert.Nil(t, resp.Course)
	require.NotNil(t, resp.CurrentStatus)
	assert.Equal(t, "masters", *resp.CurrentStatus)
}

func TestHandleValidationErrorFromDomainRules(t *testing.T) {
	req := &CreateClubRequest{Name: "", Description: "d", TeamSize: 5, Category: "Technical"}
	detail := HandleValidationError(req.Validate())

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	fields, ok := detail.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, fields[0].Message, detail.Message)
}

func TestNewErrorResponseCopiesMessage(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeResourceNotFound, "Group not found"))
	assert.False(t, resp.Success)
	assert.Equal(t, "Group not found", resp.Message)
	assert.Equal(t, ErrorCodeResourceNotFound, resp.Error.Code)
}
