package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentModel "schooldesk_backend/internals/features/school/students/model"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

// RecordAttendance upserts one attendance entry: same subject on the same
// calendar day replaces the stored status, anything else appends.
func (s *StudentService) RecordAttendance(ctx context.Context, studentID uuid.UUID, entry studentModel.AttendanceEntry) (studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&st, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		att := append([]studentModel.AttendanceEntry(nil), st.StudentAttendance...)
		replaced := false
		for i := range att {
			if att[i].SubjectID == entry.SubjectID && sameDay(att[i].Date, entry.Date) {
				att[i].Status = entry.Status
				replaced = true
				break
			}
		}
		if !replaced {
			att = append(att, entry)
		}

		st.StudentAttendance = datatypes.NewJSONSlice(att)
		return tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", st.StudentID).
			Update("student_attendance", st.StudentAttendance).Error
	})
	if err != nil {
		return studentModel.StudentModel{}, err
	}
	return st, nil
}

// RecordExamResult upserts the mark for one subject.
func (s *StudentService) RecordExamResult(ctx context.Context, studentID uuid.UUID, result studentModel.ExamResult) (studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&st, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		results := append([]studentModel.ExamResult(nil), st.StudentExamResults...)
		replaced := false
		for i := range results {
			if results[i].SubjectID == result.SubjectID {
				results[i].Marks = result.Marks
				if strings.TrimSpace(result.SubjectName) != "" {
					results[i].SubjectName = result.SubjectName
				}
				replaced = true
				break
			}
		}
		if !replaced {
			results = append(results, result)
		}

		st.StudentExamResults = datatypes.NewJSONSlice(results)
		return tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", st.StudentID).
			Update("student_exam_results", st.StudentExamResults).Error
	})
	if err != nil {
		return studentModel.StudentModel{}, err
	}
	return st, nil
}

// ClearSubjectAttendance removes one student's attendance entries for a
// subject (the subject itself stays).
func (s *StudentService) ClearSubjectAttendance(ctx context.Context, studentID, subjectID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st studentModel.StudentModel
		if err := tx.First(&st, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		kept := make([]studentModel.AttendanceEntry, 0, len(st.StudentAttendance))
		for _, e := range st.StudentAttendance {
			if e.SubjectID != subjectID {
				kept = append(kept, e)
			}
		}
		return tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", st.StudentID).
			Update("student_attendance", datatypes.NewJSONSlice(kept)).Error
	})
}

// ClearAllAttendanceBySubject removes the subject's attendance entries from
// every student that has any.
func (s *StudentService) ClearAllAttendanceBySubject(ctx context.Context, subjectID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var students []studentModel.StudentModel
		if err := tx.Find(&students).Error; err != nil {
			return err
		}
		for i := range students {
			st := &students[i]
			kept := make([]studentModel.AttendanceEntry, 0, len(st.StudentAttendance))
			for _, e := range st.StudentAttendance {
				if e.SubjectID != subjectID {
					kept = append(kept, e)
				}
			}
			if len(kept) == len(st.StudentAttendance) {
				continue
			}
			if err := tx.Model(&studentModel.StudentModel{}).
				Where("student_id = ?", st.StudentID).
				Update("student_attendance", datatypes.NewJSONSlice(kept)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
