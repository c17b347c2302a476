package relations

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

// DefaultTreeDepth is used when a caller does not pass a depth.
const DefaultTreeDepth = 2

// TreeNode is one person in the expanded family tree. Relations maps a
// relation-type symbol to the nodes reached over edges of that type.
// External relatives appear as leaf nodes with NotInDirectory set and are
// never expanded.
type TreeNode struct {
	ID             uint                       `json:"id,omitempty"`
	FirstName      string                     `json:"firstName"`
	LastName       string                     `json:"lastName"`
	FatherName     string                     `json:"fatherName,omitempty"`
	BirthDate      *time.Time                 `json:"birthDate,omitempty"`
	Sex            string                     `json:"sex,omitempty"`
	NotInDirectory bool                       `json:"notInDirectory,omitempty"`
	External       *models.ExternalPersonInfo `json:"externalInfo,omitempty"`
	Relations      map[string][]*TreeNode     `json:"relations,omitempty"`
}

// BuildTree expands rootID's relation graph to at most maxDepth levels.
// A single visited set spans the whole traversal, so any person appears at
// most once, at the position where the walk first reached them; that is what
// guarantees termination on cycles (mutual spouse edges are the common one).
// Reads are not wrapped in a transaction; the tree is an advisory snapshot.
func (s *Service) BuildTree(rootID uint, maxDepth int) (*TreeNode, error) {
	if maxDepth <= 0 {
		return nil, nil
	}
	var root models.Person
	if err := s.db.First(&root, rootID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", rootID, ErrNotFound)
		}
		return nil, err
	}
	visited := map[uint]bool{}
	return s.expand(&root, maxDepth, visited)
}

func (s *Service) expand(person *models.Person, depth int, visited map[uint]bool) (*TreeNode, error) {
	visited[person.ID] = true
	node := &TreeNode{
		ID:         person.ID,
		FirstName:  person.FirstName,
		LastName:   person.LastName,
		FatherName: person.FatherName,
		BirthDate:  person.BirthDate,
		Sex:        person.Sex,
	}

	var rels []models.Relation
	if err := s.db.Where("person_id = ?", person.ID).
		Order("relation_type asc").Find(&rels).Error; err != nil {
		return nil, err
	}

	for _, rel := range rels {
		var child *TreeNode

		switch {
		case rel.RelatedPersonID != nil:
			if depth <= 1 || visited[*rel.RelatedPersonID] {
				continue
			}
			var related models.Person
			if err := s.db.First(&related, *rel.RelatedPersonID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Target vanished mid-traversal; advisory read, skip.
					continue
				}
				return nil, err
			}
			var err error
			child, err = s.expand(&related, depth-1, visited)
			if err != nil {
				return nil, err
			}
		case rel.ExternalInfo != nil:
			// Stubs sit one level below their owner, same as registered
			// targets, so the depth bound cuts them identically.
			if depth <= 1 {
				continue
			}
			child = &TreeNode{
				FirstName:      rel.ExternalInfo.FirstName,
				LastName:       rel.ExternalInfo.LastName,
				FatherName:     rel.ExternalInfo.FatherName,
				BirthDate:      rel.ExternalInfo.BirthDate,
				Sex:            rel.ExternalInfo.Sex,
				NotInDirectory: true,
				External:       rel.ExternalInfo,
			}
		default:
			continue
		}

		if child != nil {
			if node.Relations == nil {
				node.Relations = map[string][]*TreeNode{}
			}
			node.Relations[rel.RelationType] = append(node.Relations[rel.RelationType], child)
		}
	}
	return node, nil
}
