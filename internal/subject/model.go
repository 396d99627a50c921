package subject

import "github.com/uptrace/bun"

type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:sb"`

	ID    string `bun:"id,pk" json:"id"`
	Code  string `bun:"code,unique" json:"code"`
	Name  string `bun:"name,notnull" json:"name" validate:"required,alphaspace"`
	Major string `bun:"major" json:"major" validate:"required"`
	SKS   int    `bun:"sks" json:"sks" validate:"required,min=1,max=6"`
}
