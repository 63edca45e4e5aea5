// file: internals/features/school/examination/service/exam_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"edutrack_backend/internals/constants"
	"edutrack_backend/internals/features/school/examination/dto"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/model"
	"edutrack_backend/internals/features/school/examination/store"
	"edutrack_backend/internals/features/school/examination/validation"
)

// ExamService owns the exam lifecycle: creation, mutation, status changes,
// deletion and derived statistics. The status machine is deliberately
// permissive: any of the four states may be set explicitly, matching how
// school staff actually correct mis-marked exams.
type ExamService struct {
	store store.DataStore

	// injectable clock, nil means time.Now
	nowFn func() time.Time
}

func NewExamService(st store.DataStore) *ExamService {
	return &ExamService{store: st}
}

func (s *ExamService) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}

/* ========================= Create ========================= */

func (s *ExamService) Create(ctx context.Context, req dto.CreateExamRequest, creatorID uuid.UUID) (dto.ExamResponse, error) {
	examDate, err := dto.ParseExamDate(req.ExamDate)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	v := validation.Exam(validation.ExamData{
		Name:         req.Name,
		Type:         req.Type,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		ExamDate:     examDate,
		Weightage:    req.Weightage,
		Duration:     req.Duration,
	}, s.now())
	if err := v.Err(); err != nil {
		return dto.ExamResponse{}, err
	}

	class, err := s.store.ClassByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, errors.New("Class not found")
		}
		return dto.ExamResponse{}, err
	}
	subject, err := s.store.SubjectByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, errors.New("Subject not found")
		}
		return dto.ExamResponse{}, err
	}
	creator, err := s.store.UserByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, errors.New("User not found")
		}
		return dto.ExamResponse{}, err
	}
	if class.SchoolID != creator.SchoolID {
		return dto.ExamResponse{}, errors.New("Class does not belong to your school")
	}

	weightage := 1.0
	if req.Weightage != nil {
		weightage = *req.Weightage
	}

	exam := model.ExamModel{
		ID:             uuid.New(),
		SchoolID:       creator.SchoolID,
		Name:           req.Name,
		Type:           req.Type,
		ClassID:        req.ClassID,
		SubjectID:      req.SubjectID,
		TotalMarks:     req.TotalMarks,
		PassingMarks:   req.PassingMarks,
		Weightage:      weightage,
		ExamDate:       examDate,
		Duration:       req.Duration,
		Instructions:   req.Instructions,
		SyllabusTopics: pq.StringArray(req.SyllabusTopics),
		CreatedBy:      creatorID,
		Status:         model.ExamStatusScheduled,
	}
	if err := s.store.CreateExam(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	out := dto.NewExamResponse(&exam)
	out.ClassName = class.Name
	out.SubjectName = subject.Name
	return out, nil
}

/* ========================= Update ========================= */

func (s *ExamService) Update(ctx context.Context, examID uuid.UUID, req dto.UpdateExamRequest, editorID uuid.UUID) (dto.ExamResponse, error) {
	exam, err := s.store.ExamByID(ctx, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	marks, err := s.store.MarksByExam(ctx, examID)
	if err != nil {
		return dto.ExamResponse{}, err
	}
	if len(marks) > 0 {
		// totalMarks, class and subject are frozen once results exist
		if req.TotalMarks != nil && *req.TotalMarks != exam.TotalMarks {
			return dto.ExamResponse{}, errors.New("Cannot change total marks after marks have been entered")
		}
		if req.ClassID != nil && *req.ClassID != exam.ClassID {
			return dto.ExamResponse{}, errors.New("Cannot change class after marks have been entered")
		}
		if req.SubjectID != nil && *req.SubjectID != exam.SubjectID {
			return dto.ExamResponse{}, errors.New("Cannot change subject after marks have been entered")
		}
	}

	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["exam_name"] = *req.Name
	}
	if req.Type != nil {
		if err := validation.ExamType(*req.Type).Err(); err != nil {
			return dto.ExamResponse{}, err
		}
		fields["exam_type"] = *req.Type
	}
	if req.ExamDate != nil {
		examDate, err := dto.ParseExamDate(*req.ExamDate)
		if err != nil {
			return dto.ExamResponse{}, err
		}
		if err := validation.ExamDate(examDate, s.now()).Err(); err != nil {
			return dto.ExamResponse{}, err
		}
		fields["exam_date"] = examDate
	}
	if req.TotalMarks != nil || req.PassingMarks != nil {
		total := exam.TotalMarks
		passing := exam.PassingMarks
		if req.TotalMarks != nil {
			total = *req.TotalMarks
		}
		if req.PassingMarks != nil {
			passing = *req.PassingMarks
		}
		if err := validation.MarksRange(total, passing).Err(); err != nil {
			return dto.ExamResponse{}, err
		}
		if req.TotalMarks != nil {
			fields["exam_total_marks"] = *req.TotalMarks
		}
		if req.PassingMarks != nil {
			fields["exam_passing_marks"] = *req.PassingMarks
		}
	}
	if req.Weightage != nil {
		if err := validation.Weightage(*req.Weightage).Err(); err != nil {
			return dto.ExamResponse{}, err
		}
		fields["exam_weightage"] = *req.Weightage
	}
	if req.Duration != nil {
		if err := validation.Duration(*req.Duration).Err(); err != nil {
			return dto.ExamResponse{}, err
		}
		fields["exam_duration"] = *req.Duration
	}
	if req.ClassID != nil {
		fields["exam_class_id"] = *req.ClassID
	}
	if req.SubjectID != nil {
		fields["exam_subject_id"] = *req.SubjectID
	}
	if req.Instructions != nil {
		fields["exam_instructions"] = *req.Instructions
	}
	if req.SyllabusTopics != nil {
		fields["exam_syllabus_topics"] = pq.StringArray(req.SyllabusTopics)
	}

	if len(fields) == 0 {
		return s.enrich(ctx, exam), nil
	}

	updated, err := s.store.UpdateExam(ctx, examID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return s.enrich(ctx, updated), nil
}

/* ========================= Status / Delete ========================= */

func (s *ExamService) ChangeStatus(ctx context.Context, examID uuid.UUID, newStatus string, editorID uuid.UUID) (dto.ExamResponse, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return dto.ExamResponse{}, err
	}
	if err := validation.ExamStatus(newStatus).Err(); err != nil {
		return dto.ExamResponse{}, err
	}

	updated, err := s.store.UpdateExam(ctx, examID, map[string]interface{}{
		"exam_status": newStatus,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(updated), nil
}

func (s *ExamService) Delete(ctx context.Context, examID uuid.UUID, editorID uuid.UUID) error {
	if _, err := s.Get(ctx, examID); err != nil {
		return err
	}
	marks, err := s.store.MarksByExam(ctx, examID)
	if err != nil {
		return err
	}
	if len(marks) > 0 {
		return ErrExamHasMarks
	}
	if err := s.store.DeleteExam(ctx, examID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrExamNotFound
		}
		return err
	}
	return nil
}

/* ========================= Reads ========================= */

func (s *ExamService) Get(ctx context.Context, examID uuid.UUID) (*model.ExamModel, error) {
	exam, err := s.store.ExamByID(ctx, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

// Details returns the exam plus the derived statistics block.
func (s *ExamService) Details(ctx context.Context, examID uuid.UUID) (dto.ExamResponse, dto.ExamStatistics, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return dto.ExamResponse{}, dto.ExamStatistics{}, err
	}

	marks, err := s.store.MarksByExam(ctx, examID)
	if err != nil {
		return dto.ExamResponse{}, dto.ExamStatistics{}, err
	}
	students, err := s.store.StudentsByClass(ctx, exam.ClassID)
	if err != nil {
		return dto.ExamResponse{}, dto.ExamStatistics{}, err
	}

	stats := buildExamStatistics(exam, marks, len(students))

	out := s.enrich(ctx, exam)
	if creator, err := s.store.UserByID(ctx, exam.CreatedBy); err == nil {
		out.CreatedByName = creator.FullName
	}
	return out, stats, nil
}

// List applies the caller's filters; teachers additionally only see exams
// for subjects assigned to them.
func (s *ExamService) List(ctx context.Context, filter store.ExamFilter, callerID uuid.UUID, callerRole string) ([]dto.ExamListItem, error) {
	if callerRole == constants.RoleTeacher {
		subjectIDs, err := s.store.SubjectIDsByTeacher(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if subjectIDs == nil {
			subjectIDs = []uuid.UUID{}
		}
		filter.SubjectIDs = subjectIDs
	}

	exams, err := s.store.ListExams(ctx, filter)
	if err != nil {
		return nil, err
	}

	classNames := map[uuid.UUID]string{}
	subjectNames := map[uuid.UUID]string{}
	studentCounts := map[uuid.UUID]int{}

	items := make([]dto.ExamListItem, 0, len(exams))
	for i := range exams {
		e := &exams[i]

		if _, ok := classNames[e.ClassID]; !ok {
			name := "Unknown"
			count := 0
			if class, err := s.store.ClassByID(ctx, e.ClassID); err == nil {
				name = class.Name
			}
			if students, err := s.store.StudentsByClass(ctx, e.ClassID); err == nil {
				count = len(students)
			}
			classNames[e.ClassID] = name
			studentCounts[e.ClassID] = count
		}
		if _, ok := subjectNames[e.SubjectID]; !ok {
			name := "Unknown"
			if subject, err := s.store.SubjectByID(ctx, e.SubjectID); err == nil {
				name = subject.Name
			}
			subjectNames[e.SubjectID] = name
		}

		marks, err := s.store.MarksByExam(ctx, e.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, dto.ExamListItem{
			ID:            e.ID,
			Name:          e.Name,
			Type:          e.Type,
			ClassID:       e.ClassID,
			SubjectID:     e.SubjectID,
			ClassName:     classNames[e.ClassID],
			SubjectName:   subjectNames[e.SubjectID],
			ExamDate:      e.ExamDate.Format("2006-01-02"),
			TotalMarks:    e.TotalMarks,
			PassingMarks:  e.PassingMarks,
			Status:        e.Status,
			MarksEntered:  len(marks),
			TotalStudents: studentCounts[e.ClassID],
			CreatedAt:     e.CreatedAt,
		})
	}
	return items, nil
}

/* ========================= Authorization guard ========================= */

// IsTeacherAuthorized reports whether the caller is a teacher of the exam's
// school who is assigned to the exam's subject. Admin bypass happens at the
// call site, never here.
func (s *ExamService) IsTeacherAuthorized(ctx context.Context, teacherID, examID uuid.UUID) (bool, error) {
	teacher, err := s.store.UserByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if teacher.Role != constants.RoleTeacher {
		return false, nil
	}

	exam, err := s.store.ExamByID(ctx, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if teacher.SchoolID != exam.SchoolID {
		return false, nil
	}

	return s.IsSubjectTeacher(ctx, teacherID, exam.SubjectID)
}

// IsSubjectTeacher is the pre-create variant of the guard, used before an
// exam row exists.
func (s *ExamService) IsSubjectTeacher(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	subject, err := s.store.SubjectByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return subject.TeacherID != nil && *subject.TeacherID == teacherID, nil
}

/* ========================= Helpers ========================= */

func (s *ExamService) enrich(ctx context.Context, exam *model.ExamModel) dto.ExamResponse {
	out := dto.NewExamResponse(exam)
	if class, err := s.store.ClassByID(ctx, exam.ClassID); err == nil {
		out.ClassName = class.Name
	}
	if subject, err := s.store.SubjectByID(ctx, exam.SubjectID); err == nil {
		out.SubjectName = subject.Name
	}
	return out
}

func buildExamStatistics(exam *model.ExamModel, marks []model.MarksModel, totalStudents int) dto.ExamStatistics {
	stats := dto.ExamStatistics{
		TotalStudents: totalStudents,
		MarksEntered:  len(marks),
		Pending:       totalStudents - len(marks),
	}

	var sumMarks, sumPct float64
	var present int
	for i := range marks {
		m := &marks[i]
		switch m.Status {
		case model.MarksStatusAbsent:
			stats.AbsentCount++
			continue
		case model.MarksStatusExempted:
			stats.ExemptedCount++
			continue
		}

		present++
		sumMarks += m.MarksObtained
		sumPct += m.Percentage
		if present == 1 || m.MarksObtained > stats.HighestMarks {
			stats.HighestMarks = m.MarksObtained
		}
		if present == 1 || m.MarksObtained < stats.LowestMarks {
			stats.LowestMarks = m.MarksObtained
		}
		if m.MarksObtained >= float64(exam.PassingMarks) {
			stats.PassCount++
		} else {
			stats.FailCount++
		}
	}
	if present > 0 {
		stats.AverageMarks = grading.Round2(sumMarks / float64(present))
		stats.AveragePercentage = grading.Round2(sumPct / float64(present))
	}
	return stats
}
