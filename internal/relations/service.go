package relations

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

// Service owns the relation graph: directed edges between registered persons,
// or from a registered person to an inline external relative.
type Service struct {
	db *gorm.DB
}

func NewService(gdb *gorm.DB) *Service {
	return &Service{db: gdb}
}

// CreateRequest describes a new edge. Exactly one of RelatedPersonID and
// External must be set.
type CreateRequest struct {
	OwnerID         uint
	RelationType    string
	RelatedPersonID *uint
	External        *models.ExternalPersonInfo
	Notes           string
	CreateReverse   bool
	CheckDuplicates bool
}

// Create persists the forward edge and, for registered targets with
// CreateReverse set, the sex-resolved reverse edge, all in one transaction.
// No partial edge survives a failure anywhere in the sequence.
func (s *Service) Create(req CreateRequest) (*models.Relation, error) {
	if (req.RelatedPersonID == nil) == (req.External == nil) {
		return nil, fmt.Errorf("%w: exactly one of relatedPersonId and relatedPersonInfo must be set", ErrInvalidInput)
	}
	if req.External != nil {
		if strings.TrimSpace(req.External.FirstName) == "" || strings.TrimSpace(req.External.LastName) == "" {
			return nil, fmt.Errorf("%w: external relative needs first and last name", ErrInvalidInput)
		}
	}

	var created models.Relation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var owner models.Person
		if err := tx.First(&owner, req.OwnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("person %d: %w", req.OwnerID, ErrNotFound)
			}
			return err
		}

		typeInfo, err := ReciprocalOf(tx, req.RelationType)
		if err != nil {
			return err
		}

		var related *models.Person
		if req.RelatedPersonID != nil {
			related = &models.Person{}
			if err := tx.First(related, *req.RelatedPersonID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("related person %d: %w", *req.RelatedPersonID, ErrNotFound)
				}
				return err
			}
		} else if req.CheckDuplicates {
			candidates, err := findExternalDuplicates(tx, req.External.FirstName, req.External.LastName, req.External.BirthDate)
			if err != nil {
				return err
			}
			if len(candidates) > 0 {
				return &DuplicateError{Candidates: candidates}
			}
		}

		created = models.Relation{
			PersonID:        req.OwnerID,
			RelatedPersonID: req.RelatedPersonID,
			RelationType:    req.RelationType,
			ExternalInfo:    req.External,
			Notes:           req.Notes,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		if req.CreateReverse && related != nil {
			if err := insertReverse(tx, typeInfo, req.OwnerID, related); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// insertReverse inserts the companion edge owned by the related person,
// with its symbol resolved against that person's sex.
func insertReverse(tx *gorm.DB, typeInfo *models.RelationType, ownerID uint, related *models.Person) error {
	if typeInfo.ReverseType == "" {
		return nil
	}
	reverseType := ResolveReverse(typeInfo.ReverseType, typeInfo.GenderSpecific, related.Sex)
	rev := models.Relation{
		PersonID:        related.ID,
		RelatedPersonID: &ownerID,
		RelationType:    reverseType,
		Notes:           "auto-created reverse relation",
	}
	return tx.Create(&rev).Error
}

// UpdateRequest carries the mutable edge fields; nil means "leave as is".
type UpdateRequest struct {
	RelationType *string
	Notes        *string
}

func (s *Service) Update(id uint, req UpdateRequest) (*models.Relation, error) {
	var rel models.Relation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("relation %d: %w", id, ErrNotFound)
			}
			return err
		}
		if req.RelationType != nil && *req.RelationType != rel.RelationType {
			if _, err := ReciprocalOf(tx, *req.RelationType); err != nil {
				return err
			}
			rel.RelationType = *req.RelationType
		}
		if req.Notes != nil {
			rel.Notes = *req.Notes
		}
		return tx.Save(&rel).Error
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Delete removes the edge. With deleteReverse it also looks up and removes
// the matching reverse edge (swapped ids, reciprocal symbol). The reverse is
// weak: its absence, or a failure deleting it, does not fail the operation.
func (s *Service) Delete(id uint, deleteReverse bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rel models.Relation
		if err := tx.First(&rel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("relation %d: %w", id, ErrNotFound)
			}
			return err
		}

		if deleteReverse && rel.RelatedPersonID != nil {
			typeInfo, err := ReciprocalOf(tx, rel.RelationType)
			if err == nil {
				if symbols := reverseCandidates(typeInfo); len(symbols) > 0 {
					res := tx.Where("person_id = ? AND related_person_id = ? AND relation_type IN ?",
						*rel.RelatedPersonID, rel.PersonID, symbols).
						Delete(&models.Relation{})
					if res.Error != nil {
						log.Printf("relations: delete reverse of %d: %v", rel.ID, res.Error)
					}
				}
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
		}

		return tx.Delete(&rel).Error
	})
}

// LinkExternal rewrites an external-relative edge so it references a
// registered person instead, clearing the inline info. This is the
// reconciliation path after a duplicate conflict, and the guard against
// double-linking is the caller's signal that someone else got there first.
func (s *Service) LinkExternal(relationID, personID uint, createReverse bool) (*models.Relation, error) {
	var rel models.Relation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rel, relationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("relation %d: %w", relationID, ErrNotFound)
			}
			return err
		}
		if rel.RelatedPersonID != nil {
			return ErrAlreadyLinked
		}

		var person models.Person
		if err := tx.First(&person, personID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("person %d: %w", personID, ErrNotFound)
			}
			return err
		}

		rel.RelatedPersonID = &person.ID
		rel.ExternalInfo = nil
		// Save skips nil-pointer serializer fields; clear the column explicitly.
		if err := tx.Model(&rel).Updates(map[string]interface{}{
			"related_person_id": person.ID,
			"external_info":     nil,
		}).Error; err != nil {
			return err
		}

		if createReverse {
			typeInfo, err := ReciprocalOf(tx, rel.RelationType)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil
				}
				return err
			}
			// Upgrade, don't duplicate: skip only when a reciprocal reverse
			// edge already exists. Unrelated edges between the pair (say a
			// spouse edge) don't count.
			if symbols := reverseCandidates(typeInfo); len(symbols) > 0 {
				var existing int64
				if err := tx.Model(&models.Relation{}).
					Where("person_id = ? AND related_person_id = ? AND relation_type IN ?",
						person.ID, rel.PersonID, symbols).
					Count(&existing).Error; err != nil {
					return err
				}
				if existing == 0 {
					if err := insertReverse(tx, typeInfo, rel.PersonID, &person); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// RelationView is a graph edge optionally enriched with the related person's
// public fields.
type RelationView struct {
	models.Relation
	RelatedPerson *PersonSummary `json:"relatedPerson,omitempty"`
}

// PersonSummary is the public slice of a person record exposed alongside
// relation edges and duplicate candidates.
type PersonSummary struct {
	ID           uint    `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	FatherName   string  `json:"fatherName,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
	HebrewDate   string  `json:"hebrewDate,omitempty"`
	Sex          string  `json:"sex,omitempty"`
	MobileNumber string  `json:"mobileNumber,omitempty"`
	Email        string  `json:"email,omitempty"`
}

func summarize(p *models.Person) *PersonSummary {
	sum := &PersonSummary{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FatherName:   p.FatherName,
		HebrewDate:   p.HebrewDate,
		Sex:          p.Sex,
		MobileNumber: p.MobileNumber,
		Email:        p.Email,
	}
	if p.BirthDate != nil {
		d := p.BirthDate.Format("2006-01-02")
		sum.BirthDate = &d
	}
	return sum
}

// ListForPerson returns the person's outgoing edges ordered by relation-type
// symbol. With details, registered targets are enriched in one batched load.
func (s *Service) ListForPerson(personID uint, details bool) ([]RelationView, error) {
	var rels []models.Relation
	if err := s.db.Where("person_id = ?", personID).
		Order("relation_type asc").Find(&rels).Error; err != nil {
		return nil, err
	}

	views := make([]RelationView, len(rels))
	for i := range rels {
		views[i] = RelationView{Relation: rels[i]}
	}
	if !details {
		return views, nil
	}

	ids := make([]uint, 0, len(rels))
	for _, r := range rels {
		if r.RelatedPersonID != nil {
			ids = append(ids, *r.RelatedPersonID)
		}
	}
	if len(ids) == 0 {
		return views, nil
	}

	var persons []models.Person
	if err := s.db.Where("id IN ?", ids).Find(&persons).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Person, len(persons))
	for i := range persons {
		byID[persons[i].ID] = &persons[i]
	}
	for i := range views {
		if rid := views[i].RelatedPersonID; rid != nil {
			if p, ok := byID[*rid]; ok {
				views[i].RelatedPerson = summarize(p)
			}
		}
	}
	return views, nil
}
