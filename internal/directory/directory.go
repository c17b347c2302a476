// Package directory owns registered person records and the fields derived
// from their birth date (age, Hebrew-date label, bar/bat-mitzvah date).
package directory

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/hebdate"
	"github.com/geula-list/registry/internal/models"
)

// ErrNotFound is returned when a person id does not resolve.
var ErrNotFound = errors.New("person not found")

type Service struct {
	db *gorm.DB
}

func NewService(gdb *gorm.DB) *Service {
	return &Service{db: gdb}
}

// Fields carries the caller-settable person attributes.
type Fields struct {
	FirstName     string
	LastName      string
	FatherName    string
	BirthDate     *time.Time
	Sex           string
	MobileNumber  string
	Email         string
	Address       models.Address
	ReligiousInfo models.ReligiousInfo
	Notes         string
}

func (s *Service) Create(f Fields) (*models.Person, error) {
	p := models.Person{
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		FatherName:    strings.TrimSpace(f.FatherName),
		BirthDate:     f.BirthDate,
		Sex:           f.Sex,
		MobileNumber:  f.MobileNumber,
		Email:         f.Email,
		Address:       f.Address,
		ReligiousInfo: f.ReligiousInfo,
		Notes:         f.Notes,
	}
	applyDerived(&p, time.Now())
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Get(id uint) (*models.Person, error) {
	var p models.Person
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) List() ([]models.Person, error) {
	var persons []models.Person
	if err := s.db.Order("last_name asc, first_name asc").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *Service) Update(id uint, f Fields) (*models.Person, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	p.FirstName = strings.TrimSpace(f.FirstName)
	p.LastName = strings.TrimSpace(f.LastName)
	p.FatherName = strings.TrimSpace(f.FatherName)
	p.BirthDate = f.BirthDate
	p.Sex = f.Sex
	p.MobileNumber = f.MobileNumber
	p.Email = f.Email
	p.Address = f.Address
	p.ReligiousInfo = f.ReligiousInfo
	p.Notes = f.Notes
	applyDerived(p, time.Now())
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the person. Edges that point *at* them from other people's
// graphs are kept: each is rewritten into an external stub carrying a
// snapshot of the person's fields, so relational history survives the
// deletion. The person's own outgoing edges go with them.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Person
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("person %d: %w", id, ErrNotFound)
			}
			return err
		}

		var inbound []models.Relation
		if err := tx.Where("related_person_id = ?", id).Find(&inbound).Error; err != nil {
			return err
		}
		stub := stubFromPerson(&p)
		for i := range inbound {
			inbound[i].RelatedPersonID = nil
			inbound[i].ExternalInfo = stub
			if err := tx.Model(&inbound[i]).
				Select("related_person_id", "external_info").
				Updates(&inbound[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("person_id = ?", id).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// Search finds registered persons by name fragments (LIKE is case-insensitive
// for ASCII in SQLite) and an optional birth date matched within ±2 years.
// At most 20 rows.
func (s *Service) Search(firstName, lastName string, birthDate *time.Time) ([]models.Person, error) {
	q := s.db.Model(&models.Person{})
	if f := strings.TrimSpace(firstName); f != "" {
		q = q.Where("first_name LIKE ?", "%"+f+"%")
	}
	if l := strings.TrimSpace(lastName); l != "" {
		q = q.Where("last_name LIKE ?", "%"+l+"%")
	}
	if birthDate != nil {
		q = q.Where("birth_date BETWEEN ? AND ?",
			birthDate.AddDate(-2, 0, 0), birthDate.AddDate(2, 0, 0))
	}
	var persons []models.Person
	if err := q.Limit(20).Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// RecalculateDerived refreshes age, Hebrew label and mitzvah date for every
// person with a birth date. Run by the nightly job; per-row failures are
// logged and skipped so one bad row doesn't starve the rest.
func (s *Service) RecalculateDerived(now time.Time) (int, error) {
	var persons []models.Person
	if err := s.db.Where("birth_date IS NOT NULL").Find(&persons).Error; err != nil {
		return 0, err
	}
	updated := 0
	for i := range persons {
		applyDerived(&persons[i], now)
		if err := s.db.Save(&persons[i]).Error; err != nil {
			log.Printf("directory: recalculate person %d: %v", persons[i].ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

func applyDerived(p *models.Person, now time.Time) {
	if p.BirthDate == nil {
		p.HebrewDate = ""
		p.Age = nil
		p.BarMitzvahDate = nil
		return
	}
	p.HebrewDate = hebdate.Label(*p.BirthDate)
	age := hebdate.Age(*p.BirthDate, now)
	p.Age = &age
	mitzvah := hebdate.BarMitzvahDate(*p.BirthDate, p.Sex)
	p.BarMitzvahDate = &mitzvah
}

func stubFromPerson(p *models.Person) *models.ExternalPersonInfo {
	return &models.ExternalPersonInfo{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FatherName:   p.FatherName,
		BirthDate:    p.BirthDate,
		HebrewDate:   p.HebrewDate,
		Sex:          p.Sex,
		MobileNumber: p.MobileNumber,
		Email:        p.Email,
		Notes:        "converted from registered person on deletion",
	}
}
