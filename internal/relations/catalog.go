package relations

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

// catalogSeed is the fixed relation-type reference table. Reverse types are
// base symbols that still need sex-resolution (see ResolveReverse).
var catalogSeed = []models.RelationType{
	{Type: "father", NameRu: "Отец", NameHe: "אבא", ReverseType: "child", GenderSpecific: true},
	{Type: "mother", NameRu: "Мать", NameHe: "אמא", ReverseType: "child", GenderSpecific: true},
	{Type: "son", NameRu: "Сын", NameHe: "בן", ReverseType: "parent", GenderSpecific: true},
	{Type: "daughter", NameRu: "Дочь", NameHe: "בת", ReverseType: "parent", GenderSpecific: true},
	{Type: "husband", NameRu: "Муж", NameHe: "בעל", ReverseType: "wife", GenderSpecific: true},
	{Type: "wife", NameRu: "Жена", NameHe: "אישה", ReverseType: "husband", GenderSpecific: true},
	{Type: "brother", NameRu: "Брат", NameHe: "אח", ReverseType: "sibling", GenderSpecific: true},
	{Type: "sister", NameRu: "Сестра", NameHe: "אחות", ReverseType: "sibling", GenderSpecific: true},
	{Type: "grandfather", NameRu: "Дедушка", NameHe: "סבא", ReverseType: "grandchild", GenderSpecific: true},
	{Type: "grandmother", NameRu: "Бабушка", NameHe: "סבתא", ReverseType: "grandchild", GenderSpecific: true},
	{Type: "grandson", NameRu: "Внук", NameHe: "נכד", ReverseType: "grandparent", GenderSpecific: true},
	{Type: "granddaughter", NameRu: "Внучка", NameHe: "נכדה", ReverseType: "grandparent", GenderSpecific: true},
	{Type: "uncle", NameRu: "Дядя", NameHe: "דוד", ReverseType: "nephew", GenderSpecific: true},
	{Type: "aunt", NameRu: "Тётя", NameHe: "דודה", ReverseType: "niece", GenderSpecific: true},
	{Type: "nephew", NameRu: "Племянник", NameHe: "אחיין", ReverseType: "uncle", GenderSpecific: true},
	{Type: "niece", NameRu: "Племянница", NameHe: "אחיינית", ReverseType: "aunt", GenderSpecific: true},
	{Type: "cousin_male", NameRu: "Двоюродный брат", NameHe: "בן דוד", ReverseType: "cousin", GenderSpecific: true},
	{Type: "cousin_female", NameRu: "Двоюродная сестра", NameHe: "בת דודה", ReverseType: "cousin", GenderSpecific: true},
}

// EnsureSeeded inserts each catalog row only if its symbol is absent.
// Insert-if-absent keeps manual edits to seeded rows intact, and makes the
// call safe to repeat on every startup.
func EnsureSeeded(gdb *gorm.DB) error {
	for _, t := range catalogSeed {
		var row models.RelationType
		if err := gdb.Where(models.RelationType{Type: t.Type}).Attrs(t).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed relation type %q: %w", t.Type, err)
		}
	}
	return nil
}

// ReciprocalOf looks up the catalog entry for symbol.
func ReciprocalOf(gdb *gorm.DB, symbol string) (*models.RelationType, error) {
	var t models.RelationType
	if err := gdb.Where("type = ?", symbol).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("relation type %q: %w", symbol, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// ListTypes returns the full catalog ordered by Russian display name.
func ListTypes(gdb *gorm.DB) ([]models.RelationType, error) {
	var types []models.RelationType
	if err := gdb.Order("name_ru asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
