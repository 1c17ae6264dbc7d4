package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	subjectService "schooldesk_backend/internals/features/school/subjects/service"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
)

var ErrTeacherNotFound = errors.New("teacher not found")

type TeacherService struct {
	DB *gorm.DB
}

func NewTeacherService(db *gorm.DB) *TeacherService {
	return &TeacherService{DB: db}
}

// AssignSubject links both sides of the teacher/subject relation: the
// subject's teacher reference and the teacher's subject reference (the
// teacher's class follows the subject's class). A previously taught subject
// is freed first; at most one subject per teacher.
func (s *TeacherService) AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (teacherModel.TeacherModel, error) {
	var teacher teacherModel.TeacherModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&teacher, "teacher_id = ?", teacherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeacherNotFound
			}
			return err
		}

		var subject subjectModel.SubjectModel
		if err := tx.First(&subject, "subject_id = ?", subjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return subjectService.ErrSubjectNotFound
			}
			return err
		}

		if teacher.TeacherSubjectID != nil && *teacher.TeacherSubjectID != subjectID {
			if err := tx.Model(&subjectModel.SubjectModel{}).
				Where("subject_id = ?", *teacher.TeacherSubjectID).
				Update("subject_teacher_id", nil).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_id = ?", subjectID).
			Update("subject_teacher_id", teacherID).Error; err != nil {
			return err
		}

		teacher.TeacherSubjectID = &subject.SubjectID
		teacher.TeacherClassID = &subject.SubjectClassID
		return tx.Model(&teacherModel.TeacherModel{}).
			Where("teacher_id = ?", teacherID).
			Updates(map[string]any{
				"teacher_subject_id": subject.SubjectID,
				"teacher_class_id":   subject.SubjectClassID,
			}).Error
	})
	if err != nil {
		return teacherModel.TeacherModel{}, err
	}
	return teacher, nil
}

// DeleteTeacher frees the taught subject and removes the teacher row.
func (s *TeacherService) DeleteTeacher(ctx context.Context, id uuid.UUID) (teacherModel.TeacherModel, error) {
	var deleted teacherModel.TeacherModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "teacher_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeacherNotFound
			}
			return err
		}
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_teacher_id = ?", id).
			Update("subject_teacher_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&teacherModel.TeacherModel{}, "teacher_id = ?", id).Error
	})
	if err != nil {
		return teacherModel.TeacherModel{}, err
	}
	return deleted, nil
}

// DeleteTeachersByClass removes every teacher assigned to the class,
// freeing their subjects, and returns the count.
func (s *TeacherService) DeleteTeachersByClass(ctx context.Context, classID uuid.UUID) (int64, error) {
	return s.deleteWhere(ctx, "teacher_class_id = ?", classID)
}

// DeleteTeachersBySchool removes every teacher of the school.
func (s *TeacherService) DeleteTeachersBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	return s.deleteWhere(ctx, "teacher_school_id = ?", schoolID)
}

func (s *TeacherService) deleteWhere(ctx context.Context, cond string, arg any) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&teacherModel.TeacherModel{}).
			Where(cond, arg).
			Pluck("teacher_id", &ids).Error; err != nil {
			return err
		}
		count = int64(len(ids))
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_teacher_id IN ?", ids).
			Update("subject_teacher_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&teacherModel.TeacherModel{}, "teacher_id IN ?", ids).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
