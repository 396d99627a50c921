package student

import "github.com/uptrace/bun"

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusNotActive Status = "NOT_ACTIVE"
	StatusDropout   Status = "DROPOUT"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID     string `bun:"id,pk" json:"id"`
	NIM    string `bun:"nim,unique" json:"nim"`
	Name   string `bun:"name,notnull" json:"name" validate:"required,alphaspace"`
	Email  string `bun:"email,notnull" json:"email" validate:"required,email"`
	Major  string `bun:"major" json:"major"`
	Batch  int    `bun:"batch" json:"batch" validate:"required,min=2010,max=2030"`
	Status Status `bun:"status" json:"status" validate:"omitempty,oneof=ACTIVE NOT_ACTIVE DROPOUT"`
}

// Statistics is the dashboard summary of students per major and status.
type Statistics struct {
	SITotal       int `json:"siTotal"`
	TITotal       int `json:"tiTotal"`
	SIActive      int `json:"siActive"`
	TIActive      int `json:"tiActive"`
	SINotActive   int `json:"siNotActive"`
	TINotActive   int `json:"tiNotActive"`
	TotalStudents int `json:"totalStudents"`
}
