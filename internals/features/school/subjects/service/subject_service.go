package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schooldesk_backend/internals/features/school/classes/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
)

var (
	ErrEmptyBatch    = errors.New("subjects batch is empty")
	ErrDuplicateCode = errors.New("subject code already exists in this school")
)

type SubjectInput struct {
	Name     string
	Code     string
	Sessions int
}

type SubjectService struct {
	DB *gorm.DB
}

func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{DB: db}
}

// IsCodeTaken reports whether the school already has a subject with this
// code. Comparison is case-insensitive.
func (s *SubjectService) IsCodeTaken(ctx context.Context, schoolID uuid.UUID, code string) (bool, error) {
	var cnt int64
	err := s.DB.WithContext(ctx).Model(&subjectModel.SubjectModel{}).
		Where("subject_school_id = ? AND lower(subject_code) = lower(?)", schoolID, strings.TrimSpace(code)).
		Count(&cnt).Error
	return cnt > 0, err
}

// CreateBatch inserts every pair as a subject of the class. The whole batch
// is validated up front: codes must not collide with existing subjects of
// the school nor with each other, and either all rows are written or none.
func (s *SubjectService) CreateBatch(ctx context.Context, schoolID, classID uuid.UUID, items []SubjectInput) ([]subjectModel.SubjectModel, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	codes := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	rows := make([]subjectModel.SubjectModel, 0, len(items))
	for _, it := range items {
		code := strings.TrimSpace(it.Code)
		name := strings.TrimSpace(it.Name)
		if code == "" || name == "" {
			return nil, ErrEmptyBatch
		}
		lowered := strings.ToLower(code)
		if _, dup := seen[lowered]; dup {
			return nil, ErrDuplicateCode
		}
		seen[lowered] = struct{}{}
		codes = append(codes, lowered)

		rows = append(rows, subjectModel.SubjectModel{
			SubjectSchoolID: schoolID,
			SubjectClassID:  classID,
			SubjectName:     name,
			SubjectCode:     code,
			SubjectSessions: it.Sessions,
		})
	}

	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_school_id = ? AND lower(subject_code) IN ?", schoolID, codes).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrDuplicateCode
		}
		return tx.Create(&rows).Error
	}); err != nil {
		return nil, err
	}
	return rows, nil
}

// SubjectWithClass is the school-wide listing row: the subject plus its
// class name resolved for display.
type SubjectWithClass struct {
	subjectModel.SubjectModel `gorm:"embedded"`
	ClassName                 string `gorm:"column:class_name" json:"class_name"`
}

func (s *SubjectService) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]SubjectWithClass, error) {
	var rows []SubjectWithClass
	err := s.DB.WithContext(ctx).Model(&subjectModel.SubjectModel{}).
		Select("subjects.*, classes.class_name AS class_name").
		Joins("LEFT JOIN classes ON classes.class_id = subjects.subject_class_id").
		Where("subject_school_id = ?", schoolID).
		Order("subject_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *SubjectService) ListByClass(ctx context.Context, classID uuid.UUID) ([]subjectModel.SubjectModel, error) {
	var rows []subjectModel.SubjectModel
	err := s.DB.WithContext(ctx).
		Where("subject_class_id = ?", classID).
		Order("subject_created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListFreeByClass returns the subjects of a class with no teacher assigned.
func (s *SubjectService) ListFreeByClass(ctx context.Context, classID uuid.UUID) ([]subjectModel.SubjectModel, error) {
	var rows []subjectModel.SubjectModel
	err := s.DB.WithContext(ctx).
		Where("subject_class_id = ? AND subject_teacher_id IS NULL", classID).
		Order("subject_created_at ASC").
		Find(&rows).Error
	return rows, err
}

// SubjectDetail resolves the class name and teacher name for display.
// Read-only projection: the stored references are untouched.
type SubjectDetail struct {
	Subject     subjectModel.SubjectModel
	ClassName   string
	TeacherName *string
}

func (s *SubjectService) Detail(ctx context.Context, id uuid.UUID) (SubjectDetail, error) {
	var out SubjectDetail
	db := s.DB.WithContext(ctx)

	if err := db.First(&out.Subject, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrSubjectNotFound
		}
		return out, err
	}

	var cls classModel.ClassModel
	if err := db.First(&cls, "class_id = ?", out.Subject.SubjectClassID).Error; err == nil {
		out.ClassName = cls.ClassName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return out, err
	}

	if out.Subject.SubjectTeacherID != nil {
		var t teacherModel.TeacherModel
		if err := db.First(&t, "teacher_id = ?", *out.Subject.SubjectTeacherID).Error; err == nil {
			out.TeacherName = &t.TeacherName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return out, err
		}
	}

	return out, nil
}
