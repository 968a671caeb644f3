package model

import (
	"strings"
	"time"

	"github.com/Astemirdum/library-catalog/pkg/validate"
)

// AuthorForm is the raw author create submission. Field order is the order
// in which validation messages are reported.
type AuthorForm struct {
	FirstName   string `form:"first_name" label:"First name" validate:"required,alphanum"`
	FamilyName  string `form:"family_name" label:"Family name" validate:"required,alphanum"`
	DateOfBirth string `form:"date_of_birth" label:"Date of birth" validate:"omitempty,isodate"`
	DateOfDeath string `form:"date_of_death" label:"Date of death" validate:"omitempty,isodate"`
}

// Normalize trims the name fields. Dates are left as submitted.
func (f AuthorForm) Normalize() AuthorForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	return f
}

// Author builds the candidate record from a normalized form whether or not it
// validated. Unparseable dates are left unset.
func (f AuthorForm) Author() Author {
	return Author{
		FirstName:   validate.Escape(f.FirstName),
		FamilyName:  validate.Escape(f.FamilyName),
		DateOfBirth: optionalDate(f.DateOfBirth),
		DateOfDeath: optionalDate(f.DateOfDeath),
	}
}

type BookInstanceForm struct {
	Book    string `form:"book" label:"Book" validate:"required"`
	Imprint string `form:"imprint" label:"Imprint"`
	Status  string `form:"status" label:"Status"`
	DueBack string `form:"due_back" label:"Due back" validate:"omitempty,isodate"`
}

// Normalize trims book and imprint; status is only escaped later.
func (f BookInstanceForm) Normalize() BookInstanceForm {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	return f
}

func (f BookInstanceForm) BookInstance() BookInstance {
	status := Status(validate.Escape(f.Status))
	if status == "" {
		status = StatusMaintenance
	}
	return BookInstance{
		BookID:  validate.Escape(f.Book),
		Imprint: validate.Escape(f.Imprint),
		Status:  status,
		DueBack: optionalDate(f.DueBack),
	}
}

func optionalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := validate.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &t
}
