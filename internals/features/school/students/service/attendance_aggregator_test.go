package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	studentModel "schooldesk_backend/internals/features/school/students/model"
)

func day(value string) *time.Time {
	ts, _ := time.Parse("2006-01-02", value)
	return &ts
}

func TestGroupBySubject(t *testing.T) {
	mathID, sciID := uuid.New(), uuid.New()
	entries := []studentModel.AttendanceEntry{
		{SubjectID: mathID, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "Present"},
		{SubjectID: mathID, SubjectName: "Mathematics", Date: day("2026-03-03"), Status: "absent"},
		{SubjectID: mathID, SubjectName: "Mathematics", Date: day("2026-03-04"), Status: " present "},
		{SubjectID: sciID, SubjectName: "Science", Date: day("2026-03-02"), Status: "Absent"},
	}

	grouped := GroupBySubject(entries)
	assert.Len(t, grouped, 2)

	math := grouped["Mathematics"]
	assert.Equal(t, 2, math.Present)
	assert.Equal(t, 1, math.Absent)
	assert.Equal(t, 3, math.Sessions)
	assert.Len(t, math.Entries, 3)

	sci := grouped["Science"]
	assert.Equal(t, 0, sci.Present)
	assert.Equal(t, 1, sci.Absent)
	assert.Equal(t, 1, sci.Sessions)
}

func TestGroupBySubjectSkipsIncompleteEntries(t *testing.T) {
	id := uuid.New()
	entries := []studentModel.AttendanceEntry{
		{SubjectID: id, SubjectName: "Mathematics", Date: nil, Status: "Present"},
		{SubjectID: id, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "  "},
		{SubjectID: id, SubjectName: "Mathematics", Date: day("2026-03-03"), Status: "Present"},
	}

	grouped := GroupBySubject(entries)
	assert.Len(t, grouped, 1)
	assert.Equal(t, 1, grouped["Mathematics"].Sessions)
}

func TestGroupBySubjectLabelFallsBackToID(t *testing.T) {
	id := uuid.New()
	entries := []studentModel.AttendanceEntry{
		{SubjectID: id, Date: day("2026-03-02"), Status: "Present"},
	}

	grouped := GroupBySubject(entries)
	_, ok := grouped[id.String()]
	assert.True(t, ok)
}

func TestGroupBySubjectDoesNotMutateInput(t *testing.T) {
	id := uuid.New()
	entries := []studentModel.AttendanceEntry{
		{SubjectID: id, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "Present"},
	}
	GroupBySubject(entries)
	assert.Equal(t, "Present", entries[0].Status)
	assert.NotNil(t, entries[0].Date)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 75.0, Percentage(3, 4))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
}

func TestOverallPercentage(t *testing.T) {
	mathID, sciID := uuid.New(), uuid.New()
	entries := []studentModel.AttendanceEntry{
		{SubjectID: mathID, Date: day("2026-03-02"), Status: "Present"},
		{SubjectID: mathID, Date: day("2026-03-03"), Status: "Absent"},
		{SubjectID: sciID, Date: day("2026-03-02"), Status: "Present"},
		{SubjectID: sciID, Date: nil, Status: "Present"}, // skipped
	}
	assert.Equal(t, 66.67, OverallPercentage(entries))
	assert.Equal(t, 0.0, OverallPercentage(nil))
}
