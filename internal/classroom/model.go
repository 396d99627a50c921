package classroom

import "github.com/uptrace/bun"

type ClassRoom struct {
	bun.BaseModel `bun:"table:classes,alias:c"`

	ID          string   `bun:"id,pk" json:"id"`
	Code        string   `bun:"code,unique" json:"code"`
	Name        string   `bun:"name,notnull" json:"name" validate:"required"`
	SubjectID   string   `bun:"subject_id" json:"subjectId"`
	SubjectName string   `bun:"subject_name" json:"subjectName" validate:"required"`
	Semester    string   `bun:"semester" json:"semester"`
	Year        int      `bun:"year" json:"year"`
	StudentIDs  []string `bun:"student_ids,array" json:"studentIds"`

	// StudentNIMs is only read from seed files to resolve StudentIDs.
	StudentNIMs []string `bun:"-" json:"studentNims,omitempty"`
}

// HasStudent reports whether studentID is enrolled.
func (c *ClassRoom) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
