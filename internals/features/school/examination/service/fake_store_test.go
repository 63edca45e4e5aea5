// file: internals/features/school/examination/service/fake_store_test.go
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	academicsModel "edutrack_backend/internals/features/school/academics/model"
	"edutrack_backend/internals/features/school/examination/grading"
	"edutrack_backend/internals/features/school/examination/model"
	"edutrack_backend/internals/features/school/examination/store"
	userModel "edutrack_backend/internals/features/users/user/model"
)

// fakeStore is an in-memory store.DataStore mirroring the Postgres
// semantics the services rely on: the (exam, student) unique index and the
// verified-row freeze on conditional writes.
type fakeStore struct {
	mu sync.Mutex

	users     map[uuid.UUID]userModel.UserModel
	classes   map[uuid.UUID]academicsModel.ClassModel
	subjects  map[uuid.UUID]academicsModel.SubjectModel
	students  map[uuid.UUID]academicsModel.StudentModel
	exams     map[uuid.UUID]model.ExamModel
	marks     map[uuid.UUID]model.MarksModel
	templates map[uuid.UUID]model.ExamTemplateModel
	tables    map[uuid.UUID]grading.Table
}

var _ store.DataStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]userModel.UserModel{},
		classes:   map[uuid.UUID]academicsModel.ClassModel{},
		subjects:  map[uuid.UUID]academicsModel.SubjectModel{},
		students:  map[uuid.UUID]academicsModel.StudentModel{},
		exams:     map[uuid.UUID]model.ExamModel{},
		marks:     map[uuid.UUID]model.MarksModel{},
		templates: map[uuid.UUID]model.ExamTemplateModel{},
		tables:    map[uuid.UUID]grading.Table{},
	}
}

/* ===== Collaborator lookups ===== */

func (f *fakeStore) UserByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ClassByID(_ context.Context, id uuid.UUID) (*academicsModel.ClassModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.classes[id]; ok {
		return &c, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) SubjectByID(_ context.Context, id uuid.UUID) (*academicsModel.SubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.subjects[id]; ok {
		return &s, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) StudentByID(_ context.Context, id uuid.UUID) (*academicsModel.StudentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.students[id]; ok {
		return &s, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) StudentsByClass(_ context.Context, classID uuid.UUID) ([]academicsModel.StudentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []academicsModel.StudentModel
	for _, s := range f.students {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SubjectIDsByTeacher(_ context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for _, s := range f.subjects {
		if s.TeacherID != nil && *s.TeacherID == teacherID {
			out = append(out, s.ID)
		}
	}
	return out, nil
}

/* ===== Exams ===== */

func (f *fakeStore) CreateExam(_ context.Context, exam *model.ExamModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now()
	}
	exam.UpdatedAt = exam.CreatedAt
	f.exams[exam.ID] = *exam
	return nil
}

func (f *fakeStore) ExamByID(_ context.Context, id uuid.UUID) (*model.ExamModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.exams[id]; ok {
		return &e, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UpdateExam(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.exams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "exam_name":
			e.Name = v.(string)
		case "exam_type":
			e.Type = v.(string)
		case "exam_date":
			e.ExamDate = v.(time.Time)
		case "exam_total_marks":
			e.TotalMarks = v.(int)
		case "exam_passing_marks":
			e.PassingMarks = v.(int)
		case "exam_weightage":
			e.Weightage = v.(float64)
		case "exam_duration":
			d := v.(int)
			e.Duration = &d
		case "exam_class_id":
			e.ClassID = v.(uuid.UUID)
		case "exam_subject_id":
			e.SubjectID = v.(uuid.UUID)
		case "exam_instructions":
			s := v.(string)
			e.Instructions = &s
		case "exam_syllabus_topics":
			e.SyllabusTopics = v.(pq.StringArray)
		case "exam_status":
			e.Status = v.(string)
		}
	}
	e.UpdatedAt = time.Now()
	f.exams[id] = e
	return &e, nil
}

func (f *fakeStore) DeleteExam(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.exams[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.exams, id)
	return nil
}

func (f *fakeStore) ListExams(_ context.Context, filter store.ExamFilter) ([]model.ExamModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ExamModel
	for _, e := range f.exams {
		if e.SchoolID != filter.SchoolID {
			continue
		}
		if filter.ClassID != nil && e.ClassID != *filter.ClassID {
			continue
		}
		if filter.SubjectID != nil && e.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && e.ExamDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.ExamDate.After(*filter.EndDate) {
			continue
		}
		if filter.SubjectIDs != nil {
			found := false
			for _, id := range filter.SubjectIDs {
				if e.SubjectID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExamDate.After(out[j].ExamDate) })
	return out, nil
}

/* ===== Marks ===== */

func (f *fakeStore) CreateMarks(_ context.Context, marks *model.MarksModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.marks {
		if m.ExamID == marks.ExamID && m.StudentID == marks.StudentID {
			return store.ErrDuplicate
		}
	}
	if marks.EnteredAt.IsZero() {
		marks.EnteredAt = time.Now()
	}
	f.marks[marks.ID] = *marks
	return nil
}

func (f *fakeStore) MarksByID(_ context.Context, id uuid.UUID) (*model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.marks[id]; ok {
		return &m, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) MarksByExam(_ context.Context, examID uuid.UUID) ([]model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.MarksModel
	for _, m := range f.marks {
		if m.ExamID == examID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnteredAt.Before(out[j].EnteredAt) })
	return out, nil
}

func (f *fakeStore) MarksByStudent(_ context.Context, studentID uuid.UUID) ([]model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.MarksModel
	for _, m := range f.marks {
		if m.StudentID == studentID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnteredAt.Before(out[j].EnteredAt) })
	return out, nil
}

func (f *fakeStore) MarksByExamAndStudent(_ context.Context, examID, studentID uuid.UUID) (*model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.marks {
		if m.ExamID == examID && m.StudentID == studentID {
			return &m, nil
		}
	}
	return nil, store.ErrNotFound
}

func applyMarksFields(m *model.MarksModel, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "marks_obtained":
			m.MarksObtained = v.(float64)
		case "marks_percentage":
			m.Percentage = v.(float64)
		case "marks_grade":
			if v == nil {
				m.Grade = nil
			} else {
				m.Grade = v.(*string)
			}
		case "marks_grade_point":
			if v == nil {
				m.GradePoint = nil
			} else {
				m.GradePoint = v.(*float64)
			}
		case "marks_status":
			m.Status = v.(string)
		case "marks_remarks":
			switch r := v.(type) {
			case *string:
				m.Remarks = r
			case string:
				m.Remarks = &r
			}
		case "marks_updated_by":
			id := v.(uuid.UUID)
			m.UpdatedBy = &id
		case "marks_updated_at":
			at := v.(time.Time)
			m.UpdatedAt = &at
		}
	}
}

func (f *fakeStore) UpdateMarksUnverified(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.marks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if m.VerifiedBy != nil {
		return nil, store.ErrVerified
	}
	applyMarksFields(&m, fields)
	f.marks[id] = m
	return &m, nil
}

func (f *fakeStore) DeleteMarksUnverified(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.marks[id]
	if !ok {
		return store.ErrNotFound
	}
	if m.VerifiedBy != nil {
		return store.ErrVerified
	}
	delete(f.marks, id)
	return nil
}

func (f *fakeStore) VerifyMarks(_ context.Context, id, verifierID uuid.UUID, at time.Time) (*model.MarksModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.marks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if m.VerifiedBy != nil {
		return nil, store.ErrAlreadyVerified
	}
	m.VerifiedBy = &verifierID
	m.VerifiedAt = &at
	f.marks[id] = m
	return &m, nil
}

/* ===== Grade config ===== */

func (f *fakeStore) GradeTableBySchool(_ context.Context, schoolID uuid.UUID) (*grading.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[schoolID]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

/* ===== Templates ===== */

func (f *fakeStore) CreateTemplate(_ context.Context, tpl *model.ExamTemplateModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now()
	}
	tpl.UpdatedAt = tpl.CreatedAt
	f.templates[tpl.ID] = *tpl
	return nil
}

func (f *fakeStore) TemplateByID(_ context.Context, id uuid.UUID) (*model.ExamTemplateModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.templates[id]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListTemplates(_ context.Context, schoolID uuid.UUID, activeOnly bool) ([]model.ExamTemplateModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ExamTemplateModel
	for _, t := range f.templates {
		if t.SchoolID != schoolID {
			continue
		}
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*model.ExamTemplateModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "exam_template_name":
			t.Name = v.(string)
		case "exam_template_type":
			t.Type = v.(string)
		case "exam_template_total_marks":
			t.TotalMarks = v.(int)
		case "exam_template_passing_marks":
			t.PassingMarks = v.(int)
		case "exam_template_weightage":
			t.Weightage = v.(float64)
		case "exam_template_is_active":
			t.IsActive = v.(bool)
		case "exam_template_updated_at":
			t.UpdatedAt = v.(time.Time)
		}
	}
	f.templates[id] = t
	return &t, nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

/* ===== Fixture ===== */

// fixture seeds one school with a class, a subject assigned to a teacher,
// two students, an admin and a teacher account.
type fixture struct {
	st *fakeStore

	schoolID  uuid.UUID
	classID   uuid.UUID
	subjectID uuid.UUID

	adminID   uuid.UUID
	teacherID uuid.UUID

	studentA uuid.UUID
	studentB uuid.UUID
}

func newFixture() *fixture {
	st := newFakeStore()
	fx := &fixture{
		st:        st,
		schoolID:  uuid.New(),
		classID:   uuid.New(),
		subjectID: uuid.New(),
		adminID:   uuid.New(),
		teacherID: uuid.New(),
		studentA:  uuid.New(),
		studentB:  uuid.New(),
	}

	st.users[fx.adminID] = userModel.UserModel{
		ID: fx.adminID, SchoolID: fx.schoolID,
		FullName: "Asha Verma", Email: "asha@school.test",
		Role: "admin", IsActive: true,
	}
	st.users[fx.teacherID] = userModel.UserModel{
		ID: fx.teacherID, SchoolID: fx.schoolID,
		FullName: "Ravi Iyer", Email: "ravi@school.test",
		Role: "teacher", IsActive: true,
	}
	st.classes[fx.classID] = academicsModel.ClassModel{
		ID: fx.classID, SchoolID: fx.schoolID, Name: "Class 8A",
	}
	teacherID := fx.teacherID
	st.subjects[fx.subjectID] = academicsModel.SubjectModel{
		ID: fx.subjectID, SchoolID: fx.schoolID, ClassID: fx.classID,
		Name: "Mathematics", TeacherID: &teacherID,
	}
	st.students[fx.studentA] = academicsModel.StudentModel{
		ID: fx.studentA, ClassID: fx.classID, Name: "Meera Nair", EnrollmentNo: "8A-001",
	}
	st.students[fx.studentB] = academicsModel.StudentModel{
		ID: fx.studentB, ClassID: fx.classID, Name: "Arjun Rao", EnrollmentNo: "8A-002",
	}
	return fx
}
