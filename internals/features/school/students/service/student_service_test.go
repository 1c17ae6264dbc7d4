package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	studentModel "schooldesk_backend/internals/features/school/students/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&studentModel.StudentModel{}))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, att []studentModel.AttendanceEntry) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{
		StudentSchoolID:   uuid.New(),
		StudentClassID:    uuid.New(),
		StudentName:       "bob",
		StudentRollNumber: 1,
		StudentPassword:   "hashed",
		StudentAttendance: datatypes.NewJSONSlice(att),
	}
	require.NoError(t, db.Create(&st).Error)
	return st
}

func TestRecordAttendanceAppends(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)
	st := seedStudent(t, db, nil)
	subjectID := uuid.New()

	_, err := svc.RecordAttendance(context.Background(), st.StudentID, studentModel.AttendanceEntry{
		SubjectID: subjectID, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "Present",
	})
	require.NoError(t, err)
	_, err = svc.RecordAttendance(context.Background(), st.StudentID, studentModel.AttendanceEntry{
		SubjectID: subjectID, SubjectName: "Mathematics", Date: day("2026-03-03"), Status: "Absent",
	})
	require.NoError(t, err)

	var got studentModel.StudentModel
	require.NoError(t, db.First(&got, "student_id = ?", st.StudentID).Error)
	assert.Len(t, got.StudentAttendance, 2)
}

func TestRecordAttendanceReplacesSameDay(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)
	subjectID := uuid.New()
	st := seedStudent(t, db, []studentModel.AttendanceEntry{
		{SubjectID: subjectID, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "Absent"},
	})

	_, err := svc.RecordAttendance(context.Background(), st.StudentID, studentModel.AttendanceEntry{
		SubjectID: subjectID, SubjectName: "Mathematics", Date: day("2026-03-02"), Status: "Present",
	})
	require.NoError(t, err)

	var got studentModel.StudentModel
	require.NoError(t, db.First(&got, "student_id = ?", st.StudentID).Error)
	require.Len(t, got.StudentAttendance, 1)
	assert.Equal(t, "Present", got.StudentAttendance[0].Status)
}

func TestRecordAttendanceStudentNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)

	_, err := svc.RecordAttendance(context.Background(), uuid.New(), studentModel.AttendanceEntry{
		SubjectID: uuid.New(), Date: day("2026-03-02"), Status: "Present",
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestRecordExamResultUpserts(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)
	st := seedStudent(t, db, nil)
	subjectID := uuid.New()

	_, err := svc.RecordExamResult(context.Background(), st.StudentID, studentModel.ExamResult{
		SubjectID: subjectID, SubjectName: "Mathematics", Marks: 60,
	})
	require.NoError(t, err)
	_, err = svc.RecordExamResult(context.Background(), st.StudentID, studentModel.ExamResult{
		SubjectID: subjectID, Marks: 85,
	})
	require.NoError(t, err)

	var got studentModel.StudentModel
	require.NoError(t, db.First(&got, "student_id = ?", st.StudentID).Error)
	require.Len(t, got.StudentExamResults, 1)
	assert.Equal(t, 85.0, got.StudentExamResults[0].Marks)
	assert.Equal(t, "Mathematics", got.StudentExamResults[0].SubjectName, "name survives a nameless update")
}

func TestClearSubjectAttendance(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)
	mathID, sciID := uuid.New(), uuid.New()
	st := seedStudent(t, db, []studentModel.AttendanceEntry{
		{SubjectID: mathID, Date: day("2026-03-02"), Status: "Present"},
		{SubjectID: sciID, Date: day("2026-03-02"), Status: "Present"},
	})

	require.NoError(t, svc.ClearSubjectAttendance(context.Background(), st.StudentID, mathID))

	var got studentModel.StudentModel
	require.NoError(t, db.First(&got, "student_id = ?", st.StudentID).Error)
	require.Len(t, got.StudentAttendance, 1)
	assert.Equal(t, sciID, got.StudentAttendance[0].SubjectID)
}

func TestClearAllAttendanceBySubject(t *testing.T) {
	db := openTestDB(t)
	svc := NewStudentService(db)
	mathID := uuid.New()
	first := seedStudent(t, db, []studentModel.AttendanceEntry{
		{SubjectID: mathID, Date: day("2026-03-02"), Status: "Present"},
	})
	second := seedStudent(t, db, []studentModel.AttendanceEntry{
		{SubjectID: mathID, Date: day("2026-03-02"), Status: "Absent"},
		{SubjectID: uuid.New(), Date: day("2026-03-02"), Status: "Present"},
	})

	require.NoError(t, svc.ClearAllAttendanceBySubject(context.Background(), mathID))

	// fresh structs per lookup: a primed primary key would leak into the
	// second query's conditions
	var gotFirst studentModel.StudentModel
	require.NoError(t, db.First(&gotFirst, "student_id = ?", first.StudentID).Error)
	assert.Empty(t, gotFirst.StudentAttendance)

	var gotSecond studentModel.StudentModel
	require.NoError(t, db.First(&gotSecond, "student_id = ?", second.StudentID).Error)
	assert.Len(t, gotSecond.StudentAttendance, 1)
}
