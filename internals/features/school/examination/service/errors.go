// file: internals/features/school/examination/service/errors.go
package service

import "errors"

// Sentinels the controllers map onto HTTP statuses. Not-found errors from
// nested referential checks during create are deliberately NOT these
// sentinels: a bad reference supplied by the caller is a 400, not a 404.
var (
	ErrExamNotFound     = errors.New("Exam not found")
	ErrMarksNotFound    = errors.New("Marks record not found")
	ErrStudentNotFound  = errors.New("Student not found")
	ErrTemplateNotFound = errors.New("Exam template not found")

	ErrDuplicateMarks = errors.New("Marks already entered for this student in this exam")

	ErrMarksVerifiedUpdate = errors.New("Cannot update verified marks. Please contact admin.")
	ErrMarksVerifiedDelete = errors.New("Cannot delete verified marks. Please contact admin.")
	ErrAlreadyVerified     = errors.New("Marks already verified")

	ErrExamHasMarks = errors.New("Cannot delete exam with marks entered. Cancel the exam instead.")
)
