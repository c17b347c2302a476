// Package hebdate wraps the Hebrew-calendar conversions the registry derives
// person fields from. The rest of the code treats the label as opaque text.
package hebdate

import (
	"time"

	"github.com/hebcal/hdate"

	"github.com/geula-list/registry/internal/models"
)

// Label converts a Gregorian date to its Hebrew-calendar string form,
// e.g. "15 Cheshvan 5784".
func Label(t time.Time) string {
	hd := hdate.FromGregorian(t.Year(), t.Month(), t.Day())
	return hd.String()
}

// Age returns full years between birthDate and now.
func Age(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	anniversary := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}

// BarMitzvahDate returns the Gregorian date of the person's bar (13th Hebrew
// birthday) or bat (12th) mitzvah. Sex defaults to the bar-mitzvah offset
// when unset.
func BarMitzvahDate(birthDate time.Time, sex string) time.Time {
	offset := 13
	if sex == models.SexFemale {
		offset = 12
	}
	born := hdate.FromGregorian(birthDate.Year(), birthDate.Month(), birthDate.Day())
	mitzvah := hdate.New(born.Year()+offset, born.Month(), born.Day())
	y, m, d := mitzvah.Greg()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
