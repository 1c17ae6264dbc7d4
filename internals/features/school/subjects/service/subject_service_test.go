package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
)

func TestCreateBatchCreatesAllRows(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")

	rows, err := svc.CreateBatch(context.Background(), schoolID, cls.ClassID, []SubjectInput{
		{Name: "Mathematics", Code: "MATH10", Sessions: 40},
		{Name: "Science", Code: "SCI10", Sessions: 35},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotEqual(t, uuid.Nil, r.SubjectID)
		assert.Equal(t, schoolID, r.SubjectSchoolID)
		assert.Equal(t, cls.ClassID, r.SubjectClassID)
	}

	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 2, cnt)
}

func TestCreateBatchRejectsExistingCode(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")

	// case-insensitive collision, and the valid row must not slip through
	_, err := svc.CreateBatch(context.Background(), schoolID, cls.ClassID, []SubjectInput{
		{Name: "Algebra", Code: "math10", Sessions: 20},
		{Name: "Science", Code: "SCI10", Sessions: 35},
	})
	require.ErrorIs(t, err, ErrDuplicateCode)

	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt, "nothing from the rejected batch may be written")
}

func TestCreateBatchRejectsDuplicateWithinBatch(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")

	_, err := svc.CreateBatch(context.Background(), schoolID, cls.ClassID, []SubjectInput{
		{Name: "Mathematics", Code: "MATH10"},
		{Name: "Maths Again", Code: "math10"},
	})
	require.ErrorIs(t, err, ErrDuplicateCode)

	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestCreateBatchSameCodeDifferentSchools(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolA, schoolB := uuid.New(), uuid.New()
	clsA := seedClass(t, db, schoolA, "Class 10A")
	clsB := seedClass(t, db, schoolB, "Class 10A")
	seedSubject(t, db, schoolA, clsA.ClassID, "Mathematics", "MATH10")

	// uniqueness is per school
	rows, err := svc.CreateBatch(context.Background(), schoolB, clsB.ClassID, []SubjectInput{
		{Name: "Mathematics", Code: "MATH10"},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateBatchEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)

	_, err := svc.CreateBatch(context.Background(), uuid.New(), uuid.New(), nil)
	require.ErrorIs(t, err, ErrEmptyBatch)

	_, err = svc.CreateBatch(context.Background(), uuid.New(), uuid.New(), []SubjectInput{
		{Name: "  ", Code: ""},
	})
	require.ErrorIs(t, err, ErrEmptyBatch)
}

func TestIsCodeTaken(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")

	taken, err := svc.IsCodeTaken(context.Background(), schoolID, "math10")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.IsCodeTaken(context.Background(), schoolID, "PHY10")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = svc.IsCodeTaken(context.Background(), uuid.New(), "MATH10")
	require.NoError(t, err)
	assert.False(t, taken, "other schools do not see the code")
}

func TestListFreeByClass(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	math := seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")
	sci := seedSubject(t, db, schoolID, cls.ClassID, "Science", "SCI10")
	seedTeacher(t, db, schoolID, "alice", &math.SubjectID)

	free, err := svc.ListFreeByClass(context.Background(), cls.ClassID)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, sci.SubjectID, free[0].SubjectID)
}

func TestDetailResolvesNames(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)
	schoolID := uuid.New()
	cls := seedClass(t, db, schoolID, "Class 10A")
	math := seedSubject(t, db, schoolID, cls.ClassID, "Mathematics", "MATH10")
	teach := seedTeacher(t, db, schoolID, "alice", &math.SubjectID)

	detail, err := svc.Detail(context.Background(), math.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, "Class 10A", detail.ClassName)
	require.NotNil(t, detail.TeacherName)
	assert.Equal(t, teach.TeacherName, *detail.TeacherName)
}

func TestDetailNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubjectService(db)

	_, err := svc.Detail(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrSubjectNotFound)
}
