package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentService "schooldesk_backend/internals/features/school/students/service"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
)

func TestDeleteSubjectCascades(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	math := seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")
	sci := seedSubject(t, db, schoolID, cls.ClassID, "Science", "SCI10")
	teach := seedTeacher(t, db, schoolID, "alice", &math.SubjectID)

	st := seedStudent(t, db, schoolID, cls.ClassID, "bob", 1,
		[]studentModel.AttendanceEntry{
			{SubjectID: math.SubjectID, SubjectName: "Mathematics", Date: dayPtr(t, "2026-03-02"), Status: "Present"},
			{SubjectID: math.SubjectID, SubjectName: "Mathematics", Date: dayPtr(t, "2026-03-03"), Status: "Absent"},
			{SubjectID: sci.SubjectID, SubjectName: "Science", Date: dayPtr(t, "2026-03-02"), Status: "Present"},
		},
		[]studentModel.ExamResult{
			{SubjectID: math.SubjectID, SubjectName: "Mathematics", Marks: 81},
			{SubjectID: sci.SubjectID, SubjectName: "Science", Marks: 74},
		})

	deleted, err := svc.DeleteSubject(context.Background(), math.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, math.SubjectID, deleted.SubjectID)

	// the row is gone, siblings stay
	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
	require.NoError(t, db.First(&subjectModel.SubjectModel{}, "subject_id = ?", sci.SubjectID).Error)

	// teacher unlinked, not deleted
	var gotTeacher teacherModel.TeacherModel
	require.NoError(t, db.First(&gotTeacher, "teacher_id = ?", teach.TeacherID).Error)
	assert.Nil(t, gotTeacher.TeacherSubjectID)

	// student records stripped of the deleted subject only
	var gotStudent studentModel.StudentModel
	require.NoError(t, db.First(&gotStudent, "student_id = ?", st.StudentID).Error)
	require.Len(t, gotStudent.StudentAttendance, 1)
	assert.Equal(t, sci.SubjectID, gotStudent.StudentAttendance[0].SubjectID)
	require.Len(t, gotStudent.StudentExamResults, 1)
	assert.Equal(t, sci.SubjectID, gotStudent.StudentExamResults[0].SubjectID)

	// only the Science "Present" survives, so overall attendance is back to 100
	assert.Equal(t, 100.0, studentService.OverallPercentage(gotStudent.StudentAttendance))

	// deleting again is a soft not-found, never a second cascade
	_, err = svc.DeleteSubject(context.Background(), math.SubjectID)
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestDeleteSubjectNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)

	_, err := svc.DeleteSubject(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestDeleteSubjectStripsAllStudentsStoreWide(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)
	schoolA, schoolB := uuid.New(), uuid.New()
	clsA := seedClass(t, db, schoolA, "Class 10A")
	clsB := seedClass(t, db, schoolB, "Class 7C")
	math := seedSubject(t, db, schoolA, clsA.ClassID, "Mathematics", "MATH10")

	// a stale reference in another school's student still gets cleaned
	far := seedStudent(t, db, schoolB, clsB.ClassID, "carol", 4,
		[]studentModel.AttendanceEntry{
			{SubjectID: math.SubjectID, Date: dayPtr(t, "2026-03-02"), Status: "Present"},
		},
		[]studentModel.ExamResult{
			{SubjectID: math.SubjectID, Marks: 55},
		})

	_, err := svc.DeleteSubject(context.Background(), math.SubjectID)
	require.NoError(t, err)

	var gotStudent studentModel.StudentModel
	require.NoError(t, db.First(&gotStudent, "student_id = ?", far.StudentID).Error)
	assert.Empty(t, gotStudent.StudentAttendance)
	assert.Empty(t, gotStudent.StudentExamResults)
}

func TestDeleteSubjectsByClass(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)
	schoolID := uuid.New()
	clsA := seedClass(t, db, schoolID, "Class 10A")
	clsB := seedClass(t, db, schoolID, "Class 10B")
	seedSubject(t, db, schoolID, clsA.ClassID, "Mathematics", "MATH10")
	seedSubject(t, db, schoolID, clsA.ClassID, "Science", "SCI10")
	other := seedSubject(t, db, schoolID, clsB.ClassID, "History", "HIS10")

	count, err := svc.DeleteSubjectsByClass(context.Background(), clsA.ClassID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var remaining []subjectModel.SubjectModel
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.SubjectID, remaining[0].SubjectID)
}

func TestDeleteSubjectsByClassEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)

	count, err := svc.DeleteSubjectsByClass(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteSubjectsBySchool(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)
	schoolA, schoolB := uuid.New(), uuid.New()
	clsA := seedClass(t, db, schoolA, "Class 10A")
	clsB := seedClass(t, db, schoolB, "Class 7C")
	seedSubject(t, db, schoolA, clsA.ClassID, "Mathematics", "MATH10")
	seedSubject(t, db, schoolA, clsA.ClassID, "Science", "SCI10")
	keep := seedSubject(t, db, schoolB, clsB.ClassID, "Mathematics", "MATH7")

	count, err := svc.DeleteSubjectsBySchool(context.Background(), schoolA)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var remaining []subjectModel.SubjectModel
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.SubjectID, remaining[0].SubjectID)
}

func TestDeleteWithinEmptySetNoop(t *testing.T) {
	db := openTestDB(t)
	svc := NewCascadeService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.DeleteWithin(tx, nil)
	}))

	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}
