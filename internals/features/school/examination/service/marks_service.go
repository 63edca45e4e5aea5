// file: internals/features/school/examination/service/marks_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	academicsModel "edutrack_backend/internals/features/school/academics/model"
	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/model"
	"edutrack_backend/internals/features/school/examination/store"
	"edutrack_backend/internals/features/school/examination/validation"
)

// MarksService owns marks entry, grading, verification and aggregate
// statistics. The grade table is an explicit dependency: the constructor
// default is used whenever a school has no grade_configs row, so swapping a
// school's scheme never touches a call site.
type MarksService struct {
	store        store.DataStore
	defaultTable grading.Table

	nowFn func() time.Time
}

func NewMarksService(st store.DataStore, defaultTable grading.Table) *MarksService {
	return &MarksService{store: st, defaultTable: defaultTable}
}

func (s *MarksService) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}

// EffectiveTable exposes the resolved grade table for a school, for the
// read-only config endpoint.
func (s *MarksService) EffectiveTable(ctx context.Context, schoolID uuid.UUID) grading.Table {
	return s.tableFor(ctx, schoolID)
}

// tableFor resolves the school's grade table, falling back to the injected
// default.
func (s *MarksService) tableFor(ctx context.Context, schoolID uuid.UUID) grading.Table {
	if t, err := s.store.GradeTableBySchool(ctx, schoolID); err == nil {
		return *t
	}
	return s.defaultTable
}

// outcome derives the stored numbers for one marks row. Absent/exempted
// rows always store zero marks, zero percentage and no grade.
func outcome(status string, marksObtained *float64, totalMarks int, table grading.Table) (stored, pct float64, grade *string, gradePoint *float64) {
	if status != model.MarksStatusPresent {
		return 0, 0, nil, nil
	}
	obtained := 0.0
	if marksObtained != nil {
		obtained = *marksObtained
	}
	pct = grading.Percentage(obtained, totalMarks)
	if band, ok := table.Resolve(pct); ok {
		g := band.Grade
		gp := band.GradePoint
		grade, gradePoint = &g, &gp
	}
	return obtained, pct, grade, gradePoint
}

/* ========================= Single entry ========================= */

func (s *MarksService) Enter(ctx context.Context, req dto.EnterMarksRequest, enteredBy uuid.UUID) (dto.MarksResponse, error) {
	exam, err := s.store.ExamByID(ctx, req.ExamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.MarksResponse{}, errors.New("Exam not found")
		}
		return dto.MarksResponse{}, err
	}

	rec, err := s.enterOne(ctx, exam, dto.BulkMarksItem{
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
		Status:        req.Status,
		Remarks:       req.Remarks,
	}, enteredBy)
	if err != nil {
		return dto.MarksResponse{}, err
	}

	out := dto.NewMarksResponse(rec)
	if student, err := s.store.StudentByID(ctx, req.StudentID); err == nil {
		out.StudentName = student.Name
		out.EnrollmentNo = student.EnrollmentNo
	}
	out.ExamName = exam.Name
	if subject, err := s.store.SubjectByID(ctx, exam.SubjectID); err == nil {
		out.SubjectName = subject.Name
	}
	return out, nil
}

// enterOne validates and inserts one marks row for a known exam. The unique
// index is the final authority on duplicates; the pre-check only produces
// the friendlier error on the common path.
func (s *MarksService) enterOne(ctx context.Context, exam *model.ExamModel, item dto.BulkMarksItem, enteredBy uuid.UUID) (*model.MarksModel, error) {
	v := validation.Marks(validation.MarksData{
		Status:        item.Status,
		MarksObtained: item.MarksObtained,
	}, exam.TotalMarks)
	if err := v.Err(); err != nil {
		return nil, err
	}

	student, err := s.store.StudentByID(ctx, item.StudentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("Student not found")
		}
		return nil, err
	}
	if student.ClassID != exam.ClassID {
		return nil, errors.New("Student does not belong to this exam's class")
	}

	if _, err := s.store.MarksByExamAndStudent(ctx, exam.ID, item.StudentID); err == nil {
		return nil, ErrDuplicateMarks
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	table := s.tableFor(ctx, exam.SchoolID)
	stored, pct, grade, gradePoint := outcome(item.Status, item.MarksObtained, exam.TotalMarks, table)

	rec := model.MarksModel{
		ID:            uuid.New(),
		ExamID:        exam.ID,
		StudentID:     item.StudentID,
		MarksObtained: stored,
		Percentage:    pct,
		Grade:         grade,
		GradePoint:    gradePoint,
		Status:        item.Status,
		Remarks:       item.Remarks,
		EnteredBy:     enteredBy,
		EnteredAt:     s.now(),
	}
	if err := s.store.CreateMarks(ctx, &rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateMarks
		}
		return nil, err
	}
	return &rec, nil
}

/* ========================= Bulk entry ========================= */

// EnterBulk processes rows independently: an existing (exam, student) row is
// updated in place, a missing one is created, and one bad row never aborts
// the batch. Entered+Failed always equals len(req.Marks).
func (s *MarksService) EnterBulk(ctx context.Context, req dto.BulkMarksRequest, enteredBy uuid.UUID) (dto.BulkMarksResult, error) {
	exam, err := s.store.ExamByID(ctx, req.ExamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.BulkMarksResult{}, errors.New("Exam not found")
		}
		return dto.BulkMarksResult{}, err
	}

	result := dto.BulkMarksResult{
		Records: []dto.MarksResponse{},
		Errors:  []dto.BulkMarksError{},
	}

	for _, item := range req.Marks {
		rec, err := s.upsertOne(ctx, exam, item, enteredBy)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BulkMarksError{
				StudentID: item.StudentID,
				Error:     err.Error(),
			})
			continue
		}
		result.Entered++
		result.Records = append(result.Records, dto.NewMarksResponse(rec))
	}
	return result, nil
}

func (s *MarksService) upsertOne(ctx context.Context, exam *model.ExamModel, item dto.BulkMarksItem, enteredBy uuid.UUID) (*model.MarksModel, error) {
	existing, err := s.store.MarksByExamAndStudent(ctx, exam.ID, item.StudentID)
	switch {
	case err == nil:
		return s.updateExisting(ctx, exam, existing.ID, item, enteredBy)
	case errors.Is(err, store.ErrNotFound):
		rec, err := s.enterOne(ctx, exam, item, enteredBy)
		if errors.Is(err, ErrDuplicateMarks) {
			// lost the insert race to a concurrent writer; fall back to update
			if winner, lookupErr := s.store.MarksByExamAndStudent(ctx, exam.ID, item.StudentID); lookupErr == nil {
				return s.updateExisting(ctx, exam, winner.ID, item, enteredBy)
			}
			return nil, err
		}
		return rec, err
	default:
		return nil, err
	}
}

func (s *MarksService) updateExisting(ctx context.Context, exam *model.ExamModel, marksID uuid.UUID, item dto.BulkMarksItem, editorID uuid.UUID) (*model.MarksModel, error) {
	v := validation.Marks(validation.MarksData{
		Status:        item.Status,
		MarksObtained: item.MarksObtained,
	}, exam.TotalMarks)
	if err := v.Err(); err != nil {
		return nil, err
	}

	table := s.tableFor(ctx, exam.SchoolID)
	stored, pct, grade, gradePoint := outcome(item.Status, item.MarksObtained, exam.TotalMarks, table)

	updated, err := s.store.UpdateMarksUnverified(ctx, marksID, map[string]interface{}{
		"marks_obtained":    stored,
		"marks_percentage":  pct,
		"marks_grade":       grade,
		"marks_grade_point": gradePoint,
		"marks_status":      item.Status,
		"marks_remarks":     item.Remarks,
		"marks_updated_by":  editorID,
		"marks_updated_at":  s.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrVerified) {
			return nil, ErrMarksVerifiedUpdate
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMarksNotFound
		}
		return nil, err
	}
	return updated, nil
}

/* ========================= Update / verify / delete ========================= */

func (s *MarksService) Update(ctx context.Context, marksID uuid.UUID, req dto.UpdateMarksRequest, editorID uuid.UUID) (dto.MarksResponse, error) {
	rec, err := s.store.MarksByID(ctx, marksID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.MarksResponse{}, ErrMarksNotFound
		}
		return dto.MarksResponse{}, err
	}
	if rec.IsVerified() {
		return dto.MarksResponse{}, ErrMarksVerifiedUpdate
	}

	exam, err := s.store.ExamByID(ctx, rec.ExamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.MarksResponse{}, errors.New("Exam not found")
		}
		return dto.MarksResponse{}, err
	}

	if req.MarksObtained != nil {
		if *req.MarksObtained < 0 || *req.MarksObtained > float64(exam.TotalMarks) {
			return dto.MarksResponse{}, fmt.Errorf("Marks must be between 0 and %d", exam.TotalMarks)
		}
	}
	if req.Status != nil {
		if err := validation.MarksStatus(*req.Status).Err(); err != nil {
			return dto.MarksResponse{}, err
		}
	}

	fields := map[string]interface{}{
		"marks_updated_by": editorID,
		"marks_updated_at": s.now(),
	}
	if req.Remarks != nil {
		fields["marks_remarks"] = *req.Remarks
	}

	// any change to marks or status recomputes the derived numbers
	if req.MarksObtained != nil || req.Status != nil {
		newStatus := rec.Status
		if req.Status != nil {
			newStatus = *req.Status
		}
		newMarks := rec.MarksObtained
		if req.MarksObtained != nil {
			newMarks = *req.MarksObtained
		}

		table := s.tableFor(ctx, exam.SchoolID)
		stored, pct, grade, gradePoint := outcome(newStatus, &newMarks, exam.TotalMarks, table)

		fields["marks_obtained"] = stored
		fields["marks_percentage"] = pct
		fields["marks_grade"] = grade
		fields["marks_grade_point"] = gradePoint
		fields["marks_status"] = newStatus
	}

	updated, err := s.store.UpdateMarksUnverified(ctx, marksID, fields)
	if err != nil {
		if errors.Is(err, store.ErrVerified) {
			return dto.MarksResponse{}, ErrMarksVerifiedUpdate
		}
		if errors.Is(err, store.ErrNotFound) {
			return dto.MarksResponse{}, ErrMarksNotFound
		}
		return dto.MarksResponse{}, err
	}

	out := dto.NewMarksResponse(updated)
	if student, err := s.store.StudentByID(ctx, updated.StudentID); err == nil {
		out.StudentName = student.Name
		out.EnrollmentNo = student.EnrollmentNo
	}
	out.ExamName = exam.Name
	return out, nil
}

// Verify is a one-way gate; of two concurrent calls exactly one succeeds.
func (s *MarksService) Verify(ctx context.Context, marksID, verifierID uuid.UUID) (dto.MarksResponse, error) {
	rec, err := s.store.VerifyMarks(ctx, marksID, verifierID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return dto.MarksResponse{}, ErrMarksNotFound
		case errors.Is(err, store.ErrAlreadyVerified):
			return dto.MarksResponse{}, ErrAlreadyVerified
		default:
			return dto.MarksResponse{}, err
		}
	}
	return dto.NewMarksResponse(rec), nil
}

func (s *MarksService) Delete(ctx context.Context, marksID, editorID uuid.UUID) error {
	if err := s.store.DeleteMarksUnverified(ctx, marksID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrMarksNotFound
		case errors.Is(err, store.ErrVerified):
			return ErrMarksVerifiedDelete
		default:
			return err
		}
	}
	return nil
}

/* ========================= Reads ========================= */

func (s *MarksService) Get(ctx context.Context, marksID uuid.UUID) (*model.MarksModel, error) {
	rec, err := s.store.MarksByID(ctx, marksID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMarksNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ExamMarks lists an exam's marks enriched with student identity, plus the
// statistics block.
func (s *MarksService) ExamMarks(ctx context.Context, exam *model.ExamModel) ([]dto.MarksResponse, dto.ExamStatistics, error) {
	marks, err := s.store.MarksByExam(ctx, exam.ID)
	if err != nil {
		return nil, dto.ExamStatistics{}, err
	}
	students, err := s.store.StudentsByClass(ctx, exam.ClassID)
	if err != nil {
		return nil, dto.ExamStatistics{}, err
	}

	byID := make(map[uuid.UUID]*academicsModel.StudentModel, len(students))
	for i := range students {
		byID[students[i].ID] = &students[i]
	}

	out := make([]dto.MarksResponse, 0, len(marks))
	for i := range marks {
		item := dto.NewMarksResponse(&marks[i])
		if student, ok := byID[marks[i].StudentID]; ok {
			item.StudentName = student.Name
			item.EnrollmentNo = student.EnrollmentNo
		} else if student, err := s.store.StudentByID(ctx, marks[i].StudentID); err == nil {
			item.StudentName = student.Name
			item.EnrollmentNo = student.EnrollmentNo
		}
		out = append(out, item)
	}

	return out, buildExamStatistics(exam, marks, len(students)), nil
}

// PerformanceFilter narrows a student's marks; date filters compare against
// the owning exam's date.
type PerformanceFilter struct {
	SubjectID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// StudentPerformance aggregates one student's filtered marks into a summary
// plus the enriched per-exam rows. The student must belong to the caller's
// school; a cross-school ID reads as missing.
func (s *MarksService) StudentPerformance(ctx context.Context, studentID, schoolID uuid.UUID, filter PerformanceFilter) (dto.StudentPerformance, error) {
	student, err := s.store.StudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.StudentPerformance{}, ErrStudentNotFound
		}
		return dto.StudentPerformance{}, err
	}

	class, err := s.store.ClassByID(ctx, student.ClassID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.StudentPerformance{}, ErrStudentNotFound
		}
		return dto.StudentPerformance{}, err
	}
	if class.SchoolID != schoolID {
		return dto.StudentPerformance{}, ErrStudentNotFound
	}

	marks, err := s.store.MarksByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentPerformance{}, err
	}

	exams := map[uuid.UUID]*model.ExamModel{}
	filtered := make([]model.MarksModel, 0, len(marks))
	for i := range marks {
		m := &marks[i]
		exam, ok := exams[m.ExamID]
		if !ok {
			exam, err = s.store.ExamByID(ctx, m.ExamID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				return dto.StudentPerformance{}, err
			}
			exams[m.ExamID] = exam
		}

		if filter.SubjectID != nil && exam.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.StartDate != nil && exam.ExamDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && exam.ExamDate.After(*filter.EndDate) {
			continue
		}
		filtered = append(filtered, *m)
	}

	summary := dto.StudentPerformanceSummary{TotalExams: len(filtered)}
	var sumPct, sumGP float64
	for i := range filtered {
		if filtered[i].Status != model.MarksStatusPresent {
			continue
		}
		summary.ExamsAppeared++
		sumPct += filtered[i].Percentage
		if filtered[i].GradePoint != nil {
			sumGP += *filtered[i].GradePoint
		}
	}
	if summary.ExamsAppeared > 0 {
		summary.AveragePercentage = grading.Round2(sumPct / float64(summary.ExamsAppeared))
		summary.AverageGradePoint = grading.Round2(sumGP / float64(summary.ExamsAppeared))
	}
	if summary.AveragePercentage > 0 {
		table := s.tableFor(ctx, class.SchoolID)
		if band, ok := table.Resolve(summary.AveragePercentage); ok {
			g := band.Grade
			summary.OverallGrade = &g
		}
	}

	items := make([]dto.StudentMarksItem, 0, len(filtered))
	subjectNames := map[uuid.UUID]string{}
	for i := range filtered {
		m := &filtered[i]
		exam := exams[m.ExamID]

		item := dto.StudentMarksItem{MarksResponse: dto.NewMarksResponse(m)}
		item.ExamName = exam.Name
		item.ExamType = exam.Type
		item.ExamDate = exam.ExamDate.Format("2006-01-02")
		item.TotalMarks = exam.TotalMarks

		if _, ok := subjectNames[exam.SubjectID]; !ok {
			name := "Unknown"
			if subject, err := s.store.SubjectByID(ctx, exam.SubjectID); err == nil {
				name = subject.Name
			}
			subjectNames[exam.SubjectID] = name
		}
		item.SubjectName = subjectNames[exam.SubjectID]

		items = append(items, item)
	}

	return dto.StudentPerformance{
		StudentID:    student.ID,
		StudentName:  student.Name,
		EnrollmentNo: student.EnrollmentNo,
		ClassID:      student.ClassID,
		Summary:      summary,
		Marks:        items,
	}, nil
}
