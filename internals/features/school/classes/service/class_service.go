package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schooldesk_backend/internals/features/school/classes/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	subjectService "schooldesk_backend/internals/features/school/subjects/service"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
)

var ErrClassNotFound = errors.New("class not found")

type ClassService struct {
	DB      *gorm.DB
	Cascade *subjectService.CascadeService
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{DB: db, Cascade: subjectService.NewCascadeService(db)}
}

// DeleteClass removes the class, its students, and cascades its subjects
// exactly as deleting each subject individually would: teachers unlinked,
// student records stripped. One transaction for the whole thing.
func (s *ClassService) DeleteClass(ctx context.Context, id uuid.UUID) (classModel.ClassModel, error) {
	var deleted classModel.ClassModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}
		return s.deleteClassWithin(tx, id)
	})
	if err != nil {
		return classModel.ClassModel{}, err
	}
	return deleted, nil
}

// DeleteClassesBySchool removes every class of the school the same way and
// returns how many classes were removed.
func (s *ClassService) DeleteClassesBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&classModel.ClassModel{}).
			Where("class_school_id = ?", schoolID).
			Pluck("class_id", &ids).Error; err != nil {
			return err
		}
		count = int64(len(ids))
		for _, id := range ids {
			if err := s.deleteClassWithin(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *ClassService) deleteClassWithin(tx *gorm.DB, classID uuid.UUID) error {
	var subjectIDs []uuid.UUID
	if err := tx.Model(&subjectModel.SubjectModel{}).
		Where("subject_class_id = ?", classID).
		Pluck("subject_id", &subjectIDs).Error; err != nil {
		return err
	}
	if err := s.Cascade.DeleteWithin(tx, subjectIDs); err != nil {
		return err
	}

	// teachers of the class stay but lose the class link
	if err := tx.Model(&teacherModel.TeacherModel{}).
		Where("teacher_class_id = ?", classID).
		Update("teacher_class_id", nil).Error; err != nil {
		return err
	}

	if err := tx.Delete(&studentModel.StudentModel{}, "student_class_id = ?", classID).Error; err != nil {
		return err
	}
	return tx.Delete(&classModel.ClassModel{}, "class_id = ?", classID).Error
}
