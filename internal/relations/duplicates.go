package relations

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

// DuplicateCandidate is an existing external-relative edge that plausibly
// describes the same person a caller is about to add. The owner's display
// name is included so the caller can decide to link instead of duplicate.
type DuplicateCandidate struct {
	RelationID   uint                      `json:"relationId"`
	OwnerID      uint                      `json:"ownerId"`
	OwnerName    string                    `json:"ownerName"`
	RelationType string                    `json:"relationType"`
	External     models.ExternalPersonInfo `json:"externalInfo"`
}

// FindExternalDuplicates searches edges with no registered target for an
// exact case-insensitive given+family name match, optionally narrowed by
// birth-date equality. It fails open: a query with missing name fields, or a
// stored stub without them, simply never matches.
func (s *Service) FindExternalDuplicates(firstName, lastName string, birthDate *time.Time) ([]DuplicateCandidate, error) {
	return findExternalDuplicates(s.db, firstName, lastName, birthDate)
}

func findExternalDuplicates(tx *gorm.DB, firstName, lastName string, birthDate *time.Time) ([]DuplicateCandidate, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, nil
	}

	// External info is a JSON column; the stub population is small enough to
	// filter here rather than depend on the driver's JSON1 functions.
	var rels []models.Relation
	if err := tx.Where("related_person_id IS NULL AND external_info IS NOT NULL").
		Find(&rels).Error; err != nil {
		return nil, err
	}

	var matched []models.Relation
	for _, rel := range rels {
		ext := rel.ExternalInfo
		if ext == nil || ext.FirstName == "" || ext.LastName == "" {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(ext.FirstName), firstName) ||
			!strings.EqualFold(strings.TrimSpace(ext.LastName), lastName) {
			continue
		}
		if birthDate != nil && ext.BirthDate != nil && !sameDay(*birthDate, *ext.BirthDate) {
			continue
		}
		matched = append(matched, rel)
	}
	if len(matched) == 0 {
		return nil, nil
	}

	ownerIDs := make([]uint, 0, len(matched))
	for _, rel := range matched {
		ownerIDs = append(ownerIDs, rel.PersonID)
	}
	var owners []models.Person
	if err := tx.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, err
	}
	ownerName := make(map[uint]string, len(owners))
	for _, o := range owners {
		ownerName[o.ID] = strings.TrimSpace(o.FirstName + " " + o.LastName)
	}

	out := make([]DuplicateCandidate, 0, len(matched))
	for _, rel := range matched {
		out = append(out, DuplicateCandidate{
			RelationID:   rel.ID,
			OwnerID:      rel.PersonID,
			OwnerName:    ownerName[rel.PersonID],
			RelationType: rel.RelationType,
			External:     *rel.ExternalInfo,
		})
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
