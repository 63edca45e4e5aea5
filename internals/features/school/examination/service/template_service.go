// file: internals/features/school/examination/service/template_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/model"
	"edutrack_backend/internals/features/school/examination/store"
	"edutrack_backend/internals/features/school/examination/validation"
)

// TemplateService manages reusable exam blueprints. Templates never touch
// live exams; they only pre-fill the create form on the client.
type TemplateService struct {
	store store.DataStore

	nowFn func() time.Time
}

func NewTemplateService(st store.DataStore) *TemplateService {
	return &TemplateService{store: st}
}

func (s *TemplateService) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}

func (s *TemplateService) Create(ctx context.Context, req dto.CreateTemplateRequest, schoolID, createdBy uuid.UUID) (dto.TemplateResponse, error) {
	v := validation.Template(validation.TemplateData{
		Name:         req.Name,
		Type:         req.Type,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		Weightage:    req.Weightage,
	})
	if err := v.Err(); err != nil {
		return dto.TemplateResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tpl := model.ExamTemplateModel{
		ID:           uuid.New(),
		SchoolID:     schoolID,
		Name:         req.Name,
		Type:         req.Type,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		Weightage:    req.Weightage,
		IsActive:     active,
		CreatedBy:    createdBy,
	}
	if err := s.store.CreateTemplate(ctx, &tpl); err != nil {
		return dto.TemplateResponse{}, err
	}
	return dto.NewTemplateResponse(&tpl), nil
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*model.ExamTemplateModel, error) {
	tpl, err := s.store.TemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

func (s *TemplateService) List(ctx context.Context, schoolID uuid.UUID, activeOnly bool) ([]dto.TemplateResponse, error) {
	tpls, err := s.store.ListTemplates(ctx, schoolID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(tpls))
	for i := range tpls {
		out = append(out, dto.NewTemplateResponse(&tpls[i]))
	}
	return out, nil
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTemplateRequest) (dto.TemplateResponse, error) {
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return dto.TemplateResponse{}, err
	}

	// validate against the effective values so a lone passingMarks change
	// is still checked against the stored total
	data := validation.TemplateData{
		Name:         tpl.Name,
		Type:         tpl.Type,
		TotalMarks:   tpl.TotalMarks,
		PassingMarks: tpl.PassingMarks,
		Weightage:    tpl.Weightage,
	}
	fields := map[string]interface{}{
		"exam_template_updated_at": s.now(),
	}
	if req.Name != nil {
		data.Name = *req.Name
		fields["exam_template_name"] = *req.Name
	}
	if req.Type != nil {
		data.Type = *req.Type
		fields["exam_template_type"] = *req.Type
	}
	if req.TotalMarks != nil {
		data.TotalMarks = *req.TotalMarks
		fields["exam_template_total_marks"] = *req.TotalMarks
	}
	if req.PassingMarks != nil {
		data.PassingMarks = *req.PassingMarks
		fields["exam_template_passing_marks"] = *req.PassingMarks
	}
	if req.Weightage != nil {
		data.Weightage = *req.Weightage
		fields["exam_template_weightage"] = *req.Weightage
	}
	if req.IsActive != nil {
		fields["exam_template_is_active"] = *req.IsActive
	}
	if err := validation.Template(data).Err(); err != nil {
		return dto.TemplateResponse{}, err
	}

	updated, err := s.store.UpdateTemplate(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.TemplateResponse{}, ErrTemplateNotFound
		}
		return dto.TemplateResponse{}, err
	}
	return dto.NewTemplateResponse(updated), nil
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}
