package models

import "time"

// Relation is a directed, typed edge from the owning person to either a
// registered person (RelatedPersonID set) or an external relative kept
// inline (ExternalInfo set). Exactly one of the two is ever populated.
type Relation struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PersonID        uint   `gorm:"index;not null"`
	RelatedPersonID *uint  `gorm:"index"`
	RelationType    string `gorm:"index;not null"`

	ExternalInfo *ExternalPersonInfo `gorm:"serializer:json"`
	Notes        string
}

// IsExternal reports whether the edge points at an inline external relative
// rather than a registered person.
func (r *Relation) IsExternal() bool {
	return r.RelatedPersonID == nil && r.ExternalInfo != nil
}

// ExternalPersonInfo describes a relative who is not in the directory.
type ExternalPersonInfo struct {
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	FatherName   string     `json:"fatherName,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	HebrewDate   string     `json:"hebrewDate,omitempty"`
	Sex          string     `json:"sex,omitempty"`
	MobileNumber string     `json:"mobileNumber,omitempty"`
	Email        string     `json:"email,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	IsDeceased   bool       `json:"isDeceased,omitempty"`
	DeceasedDate *time.Time `json:"deceasedDate,omitempty"`
}

// RelationType is a catalog row. The reverse of a gender-specific type is a
// base symbol ("child", "parent", ...) that still has to be resolved against
// a sex; see the relations package.
type RelationType struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Type           string `gorm:"uniqueIndex;not null"`
	NameRu         string `gorm:"not null"`
	NameHe         string
	ReverseType    string
	GenderSpecific bool
}
