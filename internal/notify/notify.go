// Package notify creates and serves in-app notification rows for upcoming
// calendar events (birthdays, bnai mitzvah).
package notify

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

// BarMitzvahLeadDays is how far ahead families are told about an upcoming
// bar/bat mitzvah.
const BarMitzvahLeadDays = 180

var ErrNotFound = errors.New("notification not found")

// CheckUpcomingBnaiMitzvah creates one notification per person whose bar or
// bat mitzvah falls exactly BarMitzvahLeadDays from now. Returns how many
// were created.
func CheckUpcomingBnaiMitzvah(gdb *gorm.DB, now time.Time) (int, error) {
	target := midnight(now).AddDate(0, 0, BarMitzvahLeadDays)
	var persons []models.Person
	if err := gdb.Where("bar_mitzvah_date >= ? AND bar_mitzvah_date < ?",
		target, target.AddDate(0, 0, 1)).Find(&persons).Error; err != nil {
		return 0, err
	}
	created := 0
	for _, p := range persons {
		kind := "Bar mitzvah"
		if p.Sex == models.SexFemale {
			kind = "Bat mitzvah"
		}
		n := models.Notification{
			PersonID: p.ID,
			Message:  fmt.Sprintf("%s of %s %s in %d days", kind, p.FirstName, p.LastName, BarMitzvahLeadDays),
			Type:     "bar-mitzvah",
			Status:   "unread",
		}
		if err := gdb.Create(&n).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// CheckBirthdays creates a notification for every person whose birthday
// (month and day) is today. The batch job refreshes ages before running this
// check, so on the birthday Age already holds the age the person turns.
func CheckBirthdays(gdb *gorm.DB, now time.Time) (int, error) {
	var persons []models.Person
	if err := gdb.Where("birth_date IS NOT NULL").Find(&persons).Error; err != nil {
		return 0, err
	}
	created := 0
	for _, p := range persons {
		if p.BirthDate == nil {
			continue
		}
		if p.BirthDate.Month() != now.Month() || p.BirthDate.Day() != now.Day() {
			continue
		}
		msg := fmt.Sprintf("Birthday of %s %s today", p.FirstName, p.LastName)
		if p.Age != nil {
			msg = fmt.Sprintf("%s %s turns %d today", p.FirstName, p.LastName, *p.Age)
		}
		n := models.Notification{
			PersonID: p.ID,
			Message:  msg,
			Type:     "birthday",
			Status:   "unread",
		}
		if err := gdb.Create(&n).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ListForPerson returns a person's notifications, newest first.
func ListForPerson(gdb *gorm.DB, personID uint) ([]models.Notification, error) {
	var out []models.Notification
	if err := gdb.Where("person_id = ?", personID).
		Order("created_at desc, id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func MarkRead(gdb *gorm.DB, id uint) error {
	var n models.Notification
	if err := gdb.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("notification %d: %w", id, ErrNotFound)
		}
		return err
	}
	n.Status = "read"
	return gdb.Save(&n).Error
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
