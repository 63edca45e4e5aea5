// file: internals/features/school/examination/service/template_service_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/model"
)

func newTemplateService(fx *fixture) *TemplateService {
	svc := NewTemplateService(fx.st)
	svc.nowFn = func() time.Time { return fixedNow }
	return svc
}

func TestTemplateCreateDefaultsActive(t *testing.T) {
	fx := newFixture()
	svc := newTemplateService(fx)

	resp, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name:         "Standard Midterm",
		Type:         model.ExamTypeMidterm,
		TotalMarks:   100,
		PassingMarks: 33,
		Weightage:    1.0,
	}, fx.schoolID, fx.adminID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.IsActive {
		t.Error("template must default to active")
	}
	if resp.SchoolID != fx.schoolID {
		t.Errorf("schoolID = %v", resp.SchoolID)
	}

	inactive := false
	resp, err = svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name:         "Retired Quiz",
		Type:         model.ExamTypeQuiz,
		TotalMarks:   20,
		PassingMarks: 7,
		Weightage:    0.5,
		IsActive:     &inactive,
	}, fx.schoolID, fx.adminID)
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	if resp.IsActive {
		t.Error("explicit isActive=false must be honored")
	}
}

func TestTemplateCreateValidation(t *testing.T) {
	fx := newFixture()
	svc := newTemplateService(fx)

	_, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name:         "Broken",
		Type:         "viva",
		TotalMarks:   0,
		PassingMarks: 10,
		Weightage:    1.0,
	}, fx.schoolID, fx.adminID)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Invalid exam type", "Total marks must be greater than 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestTemplateListActiveOnly(t *testing.T) {
	fx := newFixture()
	svc := newTemplateService(fx)

	inactive := false
	mustCreate := func(name string, active *bool) {
		t.Helper()
		_, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
			Name: name, Type: model.ExamTypeUnitTest,
			TotalMarks: 50, PassingMarks: 17, Weightage: 1.0, IsActive: active,
		}, fx.schoolID, fx.adminID)
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	mustCreate("Unit Test A", nil)
	mustCreate("Unit Test B", &inactive)

	all, err := svc.List(context.Background(), fx.schoolID, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}

	active, err := svc.List(context.Background(), fx.schoolID, true)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Unit Test A" {
		t.Errorf("active = %+v", active)
	}
}

func TestTemplateUpdateChecksEffectiveValues(t *testing.T) {
	fx := newFixture()
	svc := newTemplateService(fx)

	created, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name: "Final Blueprint", Type: model.ExamTypeFinal,
		TotalMarks: 100, PassingMarks: 33, Weightage: 0.4,
	}, fx.schoolID, fx.adminID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// passing above the stored total must be rejected even though the
	// request carries only one field
	over := 150
	_, err = svc.Update(context.Background(), created.ID, dto.UpdateTemplateRequest{PassingMarks: &over})
	if err == nil || !strings.Contains(err.Error(), "Passing marks must be less than total marks") {
		t.Errorf("err = %v", err)
	}

	newPassing := 40
	resp, err := svc.Update(context.Background(), created.ID, dto.UpdateTemplateRequest{PassingMarks: &newPassing})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.PassingMarks != 40 || resp.TotalMarks != 100 {
		t.Errorf("updated = %+v", resp)
	}
}

func TestTemplateDelete(t *testing.T) {
	fx := newFixture()
	svc := newTemplateService(fx)

	created, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name: "Throwaway", Type: model.ExamTypeQuiz,
		TotalMarks: 10, PassingMarks: 4, Weightage: 0.2,
	}, fx.schoolID, fx.adminID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("get missing: err = %v", err)
	}
}
