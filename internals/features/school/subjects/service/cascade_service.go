package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentModel "schooldesk_backend/internals/features/school/students/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
)

var ErrSubjectNotFound = errors.New("subject not found")

// CascadeService keeps the relation graph consistent when subjects go away.
// There is no foreign-key enforcement in the schema for the embedded student
// records, so this service is the sole guarantor that no teacher link and no
// attendance/exam entry outlives its subject.
type CascadeService struct {
	DB *gorm.DB
}

func NewCascadeService(db *gorm.DB) *CascadeService {
	return &CascadeService{DB: db}
}

// DeleteSubject removes one subject and everything that referenced it,
// returning the deleted row. The whole cascade runs in one transaction.
func (s *CascadeService) DeleteSubject(ctx context.Context, id uuid.UUID) (subjectModel.SubjectModel, error) {
	var deleted subjectModel.SubjectModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "subject_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}
		return s.DeleteWithin(tx, []uuid.UUID{id})
	})
	if err != nil {
		return subjectModel.SubjectModel{}, err
	}
	return deleted, nil
}

// DeleteSubjectsByClass cascades every subject of the class and returns how
// many were removed. Zero matches is not an error.
func (s *CascadeService) DeleteSubjectsByClass(ctx context.Context, classID uuid.UUID) (int64, error) {
	return s.deleteWhere(ctx, "subject_class_id = ?", classID)
}

// DeleteSubjectsBySchool cascades every subject of the school.
func (s *CascadeService) DeleteSubjectsBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	return s.deleteWhere(ctx, "subject_school_id = ?", schoolID)
}

func (s *CascadeService) deleteWhere(ctx context.Context, cond string, arg any) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where(cond, arg).
			Pluck("subject_id", &ids).Error; err != nil {
			return err
		}
		count = int64(len(ids))
		return s.DeleteWithin(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteWithin runs the cascade for an already-resolved id set inside an
// existing transaction: delete the subject rows first, then clear teacher
// links, then strip student records. The later steps only need the id set,
// not the rows. An empty set is a no-op.
func (s *CascadeService) DeleteWithin(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Delete(&subjectModel.SubjectModel{}, "subject_id IN ?", ids).Error; err != nil {
		return err
	}

	// unlink, never delete: a teacher without a subject is just free
	if err := tx.Model(&teacherModel.TeacherModel{}).
		Where("teacher_subject_id IN ?", ids).
		Update("teacher_subject_id", nil).Error; err != nil {
		return err
	}

	return stripStudentRecords(tx, ids)
}

// stripStudentRecords drops every attendance and exam entry that points at a
// deleted subject, across all students store-wide. Unscoped on purpose: the
// embedded arrays are the only place these ids survive, and a school or
// class filter would miss rows moved between classes over time.
func stripStudentRecords(tx *gorm.DB, ids []uuid.UUID) error {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var students []studentModel.StudentModel
	if err := tx.Find(&students).Error; err != nil {
		return err
	}

	for i := range students {
		st := &students[i]
		att, attChanged := filterAttendance(st.StudentAttendance, drop)
		res, resChanged := filterExamResults(st.StudentExamResults, drop)
		if !attChanged && !resChanged {
			continue
		}
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", st.StudentID).
			Updates(map[string]any{
				"student_attendance":   datatypes.NewJSONSlice(att),
				"student_exam_results": datatypes.NewJSONSlice(res),
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func filterAttendance(entries []studentModel.AttendanceEntry, drop map[uuid.UUID]struct{}) ([]studentModel.AttendanceEntry, bool) {
	kept := make([]studentModel.AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		if _, gone := drop[e.SubjectID]; gone {
			continue
		}
		kept = append(kept, e)
	}
	return kept, len(kept) != len(entries)
}

func filterExamResults(entries []studentModel.ExamResult, drop map[uuid.UUID]struct{}) ([]studentModel.ExamResult, bool) {
	kept := make([]studentModel.ExamResult, 0, len(entries))
	for _, e := range entries {
		if _, gone := drop[e.SubjectID]; gone {
			continue
		}
		kept = append(kept, e)
	}
	return kept, len(kept) != len(entries)
}
