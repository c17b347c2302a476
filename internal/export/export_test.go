package export

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/geula-list/registry/internal/models"
)

func TestWorkbook(t *testing.T) {
	age := 42
	persons := []models.Person{
		{
			FirstName: "David", LastName: "Levin", FatherName: "Moshe",
			Age: &age, MobileNumber: "+79990001122", Email: "david@example.org",
			Sex: models.SexMale,
			Address: models.Address{
				City: "Moscow", Street: "Arbat", HouseNumber: "12",
				Apartment: "7", MetroStation: "Smolenskaya",
			},
		},
		{FirstName: "Rivka", LastName: "Adler", Sex: models.SexFemale},
	}

	f, err := Workbook(persons)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	read, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer read.Close()

	get := func(cell string) string {
		t.Helper()
		v, err := read.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("get %s: %v", cell, err)
		}
		return v
	}

	if got := get("A1"); got != "Last name" {
		t.Errorf("A1 = %q", got)
	}
	if got := get("M1"); got != "Metro station" {
		t.Errorf("M1 = %q", got)
	}

	// rows sorted by family name: Adler before Levin
	if got := get("A2"); got != "Adler" {
		t.Errorf("A2 = %q, want Adler", got)
	}
	if got := get("A3"); got != "Levin" {
		t.Errorf("A3 = %q, want Levin", got)
	}
	if got := get("D3"); got != "42" {
		t.Errorf("D3 (age) = %q", got)
	}
	if got := get("H3"); got != "Moscow" {
		t.Errorf("H3 (city) = %q", got)
	}
	// person without an address still gets a full row
	if got := get("D2"); got != "" {
		t.Errorf("D2 (age, unset) = %q", got)
	}
}
