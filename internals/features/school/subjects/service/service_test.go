package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classModel "schooldesk_backend/internals/features/school/classes/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
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
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&teacherModel.TeacherModel{},
		&studentModel.StudentModel{},
	))
	return db
}

func seedClass(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name string) classModel.ClassModel {
	t.Helper()
	cls := classModel.ClassModel{ClassSchoolID: schoolID, ClassName: name}
	require.NoError(t, db.Create(&cls).Error)
	return cls
}

func seedSubject(t *testing.T, db *gorm.DB, schoolID, classID uuid.UUID, name, code string) subjectModel.SubjectModel {
	t.Helper()
	sub := subjectModel.SubjectModel{
		SubjectSchoolID: schoolID,
		SubjectClassID:  classID,
		SubjectName:     name,
		SubjectCode:     code,
		SubjectSessions: 30,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func seedTeacher(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name string, subjectID *uuid.UUID) teacherModel.TeacherModel {
	t.Helper()
	teach := teacherModel.TeacherModel{
		TeacherSchoolID:  schoolID,
		TeacherName:      name,
		TeacherEmail:     name + "@example.test",
		TeacherPassword:  "hashed",
		TeacherSubjectID: subjectID,
	}
	require.NoError(t, db.Create(&teach).Error)
	if subjectID != nil {
		require.NoError(t, db.Model(&subjectModel.SubjectModel{}).
			Where("subject_id = ?", *subjectID).
			Update("subject_teacher_id", teach.TeacherID).Error)
	}
	return teach
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID, classID uuid.UUID, name string, roll int,
	att []studentModel.AttendanceEntry, res []studentModel.ExamResult) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{
		StudentSchoolID:    schoolID,
		StudentClassID:     classID,
		StudentName:        name,
		StudentRollNumber:  roll,
		StudentPassword:    "hashed",
		StudentAttendance:  datatypes.NewJSONSlice(att),
		StudentExamResults: datatypes.NewJSONSlice(res),
	}
	require.NoError(t, db.Create(&st).Error)
	return st
}

func dayPtr(t *testing.T, value string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &ts
}
