package model

import (
	"fmt"
	"time"
)

const (
	authorsPath       = "/catalog/authors"
	authorPath        = "/catalog/author/"
	bookInstancePath  = "/catalog/bookinstance/"
	bookPath          = "/catalog/book/"
	displayDateLayout = "Jan 2, 2006"
)

// AuthorsURL is where the author list lives; deletes redirect here.
func AuthorsURL() string {
	return authorsPath
}

type Author struct {
	ID          string     `json:"id" db:"id"`
	FirstName   string     `json:"firstName" db:"first_name"`
	FamilyName  string     `json:"familyName" db:"family_name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"dateOfDeath,omitempty" db:"date_of_death"`
}

// Name is "family, first", or empty when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return authorPath + a.ID
}

func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", displayDate(a.DateOfBirth), displayDate(a.DateOfDeath))
}

func (a Author) DateOfBirthInput() string {
	return inputDate(a.DateOfBirth)
}

func (a Author) DateOfDeathInput() string {
	return inputDate(a.DateOfDeath)
}

// AuthorDetail is an author joined with the books referencing it.
type AuthorDetail struct {
	Author Author
	Books  []Book
}

// Book is owned by the wider catalog; only the fields read here are mapped.
type Book struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Summary  string `json:"summary,omitempty" db:"summary"`
	ISBN     string `json:"isbn,omitempty" db:"isbn"`
	AuthorID string `json:"authorId,omitempty" db:"author_id"`
}

func (b Book) URL() string {
	return bookPath + b.ID
}

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists the values offered by the copy form, in display order.
func Statuses() []Status {
	return []Status{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}
}

// BookInstance is a physical copy of a Book. Book is populated on reads.
type BookInstance struct {
	ID      string     `json:"id" db:"id"`
	BookID  string     `json:"bookId" db:"book_id"`
	Book    *Book      `json:"book,omitempty" db:"-"`
	Imprint string     `json:"imprint" db:"imprint"`
	Status  Status     `json:"status" db:"status"`
	DueBack *time.Time `json:"dueBack,omitempty" db:"due_back"`
}

func (bi BookInstance) URL() string {
	return bookInstancePath + bi.ID
}

func (bi BookInstance) DueBackFormatted() string {
	return displayDate(bi.DueBack)
}

func (bi BookInstance) DueBackInput() string {
	return inputDate(bi.DueBack)
}

func displayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDateLayout)
}

func inputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
