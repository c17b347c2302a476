package models

import "time"

// Sex values used throughout the registry. Persons imported from older
// datasets may have an empty sex.
const (
	SexMale   = "male"
	SexFemale = "female"
)

type Person struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	FirstName  string `gorm:"not null"`
	LastName   string `gorm:"not null;index"`
	FatherName string // patronymic

	BirthDate *time.Time
	// Derived from BirthDate; recomputed on every birth-date change and by
	// the nightly job.
	HebrewDate     string
	Age            *int
	BarMitzvahDate *time.Time

	Sex          string // male | female | ""
	MobileNumber string
	Email        string

	Address       Address       `gorm:"serializer:json"`
	ReligiousInfo ReligiousInfo `gorm:"serializer:json"`
	Notes         string
}

// Address mirrors the columns the export sheet needs.
type Address struct {
	City         string `json:"city"`
	Street       string `json:"street"`
	HouseNumber  string `json:"houseNumber"`
	Building     string `json:"building"`
	Apartment    string `json:"apartment"`
	MetroStation string `json:"metroStation"`
}

type ReligiousInfo struct {
	KeepsKosher  bool   `json:"keepsKosher"`
	KeepsShabbat bool   `json:"keepsShabbat"`
	Synagogue    string `json:"synagogue"`
	Community    string `json:"community"`
}

// Status: "unread", "read"
type Notification struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PersonID uint   `gorm:"index;not null"`
	Message  string `gorm:"not null"`
	Type     string // birthday | bar-mitzvah
	Status   string `gorm:"default:unread"`
}
