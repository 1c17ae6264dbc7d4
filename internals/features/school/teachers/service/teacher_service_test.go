package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classModel "schooldesk_backend/internals/features/school/classes/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	subjectService "schooldesk_backend/internals/features/school/subjects/service"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
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

	require.NoError(t, db.AutoMigrate(
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&teacherModel.TeacherModel{},
	))
	return db
}

func seedSubject(t *testing.T, db *gorm.DB, schoolID, classID uuid.UUID, name, code string) subjectModel.SubjectModel {
	t.Helper()
	sub := subjectModel.SubjectModel{
		SubjectSchoolID: schoolID,
		SubjectClassID:  classID,
		SubjectName:     name,
		SubjectCode:     code,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func seedTeacher(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name string) teacherModel.TeacherModel {
	t.Helper()
	teach := teacherModel.TeacherModel{
		TeacherSchoolID: schoolID,
		TeacherName:     name,
		TeacherEmail:    name + "@example.test",
		TeacherPassword: "hashed",
	}
	require.NoError(t, db.Create(&teach).Error)
	return teach
}

func TestAssignSubjectLinksBothSides(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)
	schoolID, classID := uuid.New(), uuid.New()
	math := seedSubject(t, db, schoolID, classID, "Mathematics", "MATH10")
	teach := seedTeacher(t, db, schoolID, "alice")

	updated, err := svc.AssignSubject(context.Background(), teach.TeacherID, math.SubjectID)
	require.NoError(t, err)
	require.NotNil(t, updated.TeacherSubjectID)
	assert.Equal(t, math.SubjectID, *updated.TeacherSubjectID)
	require.NotNil(t, updated.TeacherClassID)
	assert.Equal(t, classID, *updated.TeacherClassID)

	var gotSubject subjectModel.SubjectModel
	require.NoError(t, db.First(&gotSubject, "subject_id = ?", math.SubjectID).Error)
	require.NotNil(t, gotSubject.SubjectTeacherID)
	assert.Equal(t, teach.TeacherID, *gotSubject.SubjectTeacherID)
}

func TestAssignSubjectFreesPreviousSubject(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)
	schoolID, classID := uuid.New(), uuid.New()
	math := seedSubject(t, db, schoolID, classID, "Mathematics", "MATH10")
	sci := seedSubject(t, db, schoolID, classID, "Science", "SCI10")
	teach := seedTeacher(t, db, schoolID, "alice")

	_, err := svc.AssignSubject(context.Background(), teach.TeacherID, math.SubjectID)
	require.NoError(t, err)
	_, err = svc.AssignSubject(context.Background(), teach.TeacherID, sci.SubjectID)
	require.NoError(t, err)

	var gotMath subjectModel.SubjectModel
	require.NoError(t, db.First(&gotMath, "subject_id = ?", math.SubjectID).Error)
	assert.Nil(t, gotMath.SubjectTeacherID)

	var gotSci subjectModel.SubjectModel
	require.NoError(t, db.First(&gotSci, "subject_id = ?", sci.SubjectID).Error)
	require.NotNil(t, gotSci.SubjectTeacherID)
	assert.Equal(t, teach.TeacherID, *gotSci.SubjectTeacherID)
}

func TestAssignSubjectNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)
	schoolID, classID := uuid.New(), uuid.New()
	math := seedSubject(t, db, schoolID, classID, "Mathematics", "MATH10")
	teach := seedTeacher(t, db, schoolID, "alice")

	_, err := svc.AssignSubject(context.Background(), uuid.New(), math.SubjectID)
	require.ErrorIs(t, err, ErrTeacherNotFound)

	_, err = svc.AssignSubject(context.Background(), teach.TeacherID, uuid.New())
	require.ErrorIs(t, err, subjectService.ErrSubjectNotFound)
}

func TestDeleteTeacherFreesSubject(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)
	schoolID, classID := uuid.New(), uuid.New()
	math := seedSubject(t, db, schoolID, classID, "Mathematics", "MATH10")
	teach := seedTeacher(t, db, schoolID, "alice")

	_, err := svc.AssignSubject(context.Background(), teach.TeacherID, math.SubjectID)
	require.NoError(t, err)

	deleted, err := svc.DeleteTeacher(context.Background(), teach.TeacherID)
	require.NoError(t, err)
	assert.Equal(t, teach.TeacherID, deleted.TeacherID)

	var cnt int64
	require.NoError(t, db.Model(&teacherModel.TeacherModel{}).Count(&cnt).Error)
	assert.Zero(t, cnt)

	// the subject row stays, only the link is cleared
	var gotSubject subjectModel.SubjectModel
	require.NoError(t, db.First(&gotSubject, "subject_id = ?", math.SubjectID).Error)
	assert.Nil(t, gotSubject.SubjectTeacherID)
}

func TestDeleteTeacherNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)

	_, err := svc.DeleteTeacher(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestDeleteTeachersBySchool(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)
	schoolA, schoolB := uuid.New(), uuid.New()
	classID := uuid.New()
	math := seedSubject(t, db, schoolA, classID, "Mathematics", "MATH10")

	alice := seedTeacher(t, db, schoolA, "alice")
	seedTeacher(t, db, schoolA, "bob")
	keep := seedTeacher(t, db, schoolB, "carol")

	_, err := svc.AssignSubject(context.Background(), alice.TeacherID, math.SubjectID)
	require.NoError(t, err)

	count, err := svc.DeleteTeachersBySchool(context.Background(), schoolA)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var remaining []teacherModel.TeacherModel
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.TeacherID, remaining[0].TeacherID)

	var gotSubject subjectModel.SubjectModel
	require.NoError(t, db.First(&gotSubject, "subject_id = ?", math.SubjectID).Error)
	assert.Nil(t, gotSubject.SubjectTeacherID)
}

func TestDeleteTeachersByClassEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewTeacherService(db)

	count, err := svc.DeleteTeachersByClass(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
}
