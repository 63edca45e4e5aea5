// file: internals/features/school/examination/store/gorm_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "edutrack_backend/internals/features/school/academics/model"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/model"
	userModel "edutrack_backend/internals/features/users/user/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

var _ DataStore = (*GormStore)(nil)

// isUniqueViolation works for both pgx and pq: match SQLSTATE 23505 or the
// common phrases.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint")
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

/* ========================= Collaborators ========================= */

func (s *GormStore) UserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var row userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) ClassByID(ctx context.Context, id uuid.UUID) (*academicsModel.ClassModel, error) {
	var row academicsModel.ClassModel
	if err := s.DB.WithContext(ctx).
		Where("class_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) SubjectByID(ctx context.Context, id uuid.UUID) (*academicsModel.SubjectModel, error) {
	var row academicsModel.SubjectModel
	if err := s.DB.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) StudentByID(ctx context.Context, id uuid.UUID) (*academicsModel.StudentModel, error) {
	var row academicsModel.StudentModel
	if err := s.DB.WithContext(ctx).
		Where("student_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) StudentsByClass(ctx context.Context, classID uuid.UUID) ([]academicsModel.StudentModel, error) {
	var rows []academicsModel.StudentModel
	if err := s.DB.WithContext(ctx).
		Where("student_class_id = ?", classID).
		Order("student_enrollment_no ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) SubjectIDsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&academicsModel.SubjectModel{}).
		Where("subject_teacher_id = ?", teacherID).
		Pluck("subject_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

/* ========================= Exams ========================= */

func (s *GormStore) CreateExam(ctx context.Context, exam *model.ExamModel) error {
	return s.DB.WithContext(ctx).Create(exam).Error
}

func (s *GormStore) ExamByID(ctx context.Context, id uuid.UUID) (*model.ExamModel, error) {
	var row model.ExamModel
	if err := s.DB.WithContext(ctx).
		Where("exam_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) UpdateExam(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.ExamModel{}).
		Where("exam_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.ExamByID(ctx, id)
}

func (s *GormStore) DeleteExam(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("exam_id = ?", id).
		Delete(&model.ExamModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListExams(ctx context.Context, filter ExamFilter) ([]model.ExamModel, error) {
	qry := s.DB.WithContext(ctx).
		Model(&model.ExamModel{}).
		Where("exam_school_id = ?", filter.SchoolID)

	if filter.ClassID != nil {
		qry = qry.Where("exam_class_id = ?", *filter.ClassID)
	}
	if filter.SubjectID != nil {
		qry = qry.Where("exam_subject_id = ?", *filter.SubjectID)
	}
	if filter.Type != nil {
		qry = qry.Where("exam_type = ?", *filter.Type)
	}
	if filter.Status != nil {
		qry = qry.Where("exam_status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		qry = qry.Where("exam_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		qry = qry.Where("exam_date <= ?", *filter.EndDate)
	}
	if filter.SubjectIDs != nil {
		qry = qry.Where("exam_subject_id IN ?", filter.SubjectIDs)
	}

	var rows []model.ExamModel
	if err := qry.Order("exam_date DESC, exam_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

/* ========================= Marks ========================= */

func (s *GormStore) CreateMarks(ctx context.Context, marks *model.MarksModel) error {
	if err := s.DB.WithContext(ctx).Create(marks).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *GormStore) MarksByID(ctx context.Context, id uuid.UUID) (*model.MarksModel, error) {
	var row model.MarksModel
	if err := s.DB.WithContext(ctx).
		Where("marks_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) MarksByExam(ctx context.Context, examID uuid.UUID) ([]model.MarksModel, error) {
	var rows []model.MarksModel
	if err := s.DB.WithContext(ctx).
		Where("marks_exam_id = ?", examID).
		Order("marks_entered_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) MarksByStudent(ctx context.Context, studentID uuid.UUID) ([]model.MarksModel, error) {
	var rows []model.MarksModel
	if err := s.DB.WithContext(ctx).
		Where("marks_student_id = ?", studentID).
		Order("marks_entered_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) MarksByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*model.MarksModel, error) {
	var row model.MarksModel
	if err := s.DB.WithContext(ctx).
		Where("marks_exam_id = ? AND marks_student_id = ?", examID, studentID).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

// UpdateMarksUnverified mutates only while marks_verified_by is still NULL.
// The guard lives in the UPDATE itself, so a concurrent verify can never be
// overwritten.
func (s *GormStore) UpdateMarksUnverified(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.MarksModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.MarksModel{}).
		Where("marks_id = ? AND marks_verified_by IS NULL", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.MarksByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrVerified
	}
	return s.MarksByID(ctx, id)
}

func (s *GormStore) DeleteMarksUnverified(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("marks_id = ? AND marks_verified_by IS NULL", id).
		Delete(&model.MarksModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.MarksByID(ctx, id); err != nil {
			return err
		}
		return ErrVerified
	}
	return nil
}

// VerifyMarks is a one-way gate: the conditional UPDATE guarantees exactly
// one of two concurrent verifies wins.
func (s *GormStore) VerifyMarks(ctx context.Context, id, verifierID uuid.UUID, at time.Time) (*model.MarksModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.MarksModel{}).
		Where("marks_id = ? AND marks_verified_by IS NULL", id).
		Updates(map[string]interface{}{
			"marks_verified_by": verifierID,
			"marks_verified_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.MarksByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyVerified
	}
	return s.MarksByID(ctx, id)
}

/* ========================= Grade config ========================= */

func (s *GormStore) GradeTableBySchool(ctx context.Context, schoolID uuid.UUID) (*grading.Table, error) {
	var row model.GradeConfigModel
	if err := s.DB.WithContext(ctx).
		Where("grade_config_school_id = ?", schoolID).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}

	var bands []grading.Band
	if err := json.Unmarshal(row.Bands, &bands); err != nil {
		return nil, err
	}
	return &grading.Table{Name: row.Name, Bands: bands}, nil
}

/* ========================= Exam templates ========================= */

func (s *GormStore) CreateTemplate(ctx context.Context, tpl *model.ExamTemplateModel) error {
	return s.DB.WithContext(ctx).Create(tpl).Error
}

func (s *GormStore) TemplateByID(ctx context.Context, id uuid.UUID) (*model.ExamTemplateModel, error) {
	var row model.ExamTemplateModel
	if err := s.DB.WithContext(ctx).
		Where("exam_template_id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &row, nil
}

func (s *GormStore) ListTemplates(ctx context.Context, schoolID uuid.UUID, activeOnly bool) ([]model.ExamTemplateModel, error) {
	tx := s.DB.WithContext(ctx).
		Where("exam_template_school_id = ?", schoolID)
	if activeOnly {
		tx = tx.Where("exam_template_is_active = TRUE")
	}
	var rows []model.ExamTemplateModel
	if err := tx.Order("exam_template_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) UpdateTemplate(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamTemplateModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.ExamTemplateModel{}).
		Where("exam_template_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.TemplateByID(ctx, id)
}

func (s *GormStore) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("exam_template_id = ?", id).
		Delete(&model.ExamTemplateModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
