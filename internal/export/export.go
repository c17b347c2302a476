// Package export renders selected person records to an xlsx workbook.
package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geula-list/registry/internal/models"
)

const sheet = "Members"

var headers = []string{
	"Last name", "First name", "Patronymic", "Age",
	"Mobile number", "Email", "Sex",
	"City", "Street", "House", "Building", "Apartment", "Metro station",
}

// Workbook builds the export sheet: one row per person, sorted by family
// name. Close() the file when done.
func Workbook(persons []models.Person) (*excelize.File, error) {
	sorted := make([]models.Person, len(persons))
	copy(sorted, persons)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i].LastName), strings.ToLower(sorted[j].LastName)
		if a != b {
			return a < b
		}
		return strings.ToLower(sorted[i].FirstName) < strings.ToLower(sorted[j].FirstName)
	})

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "M", 18); err != nil {
		return nil, err
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, p := range sorted {
		age := ""
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		values := []string{
			p.LastName, p.FirstName, p.FatherName, age,
			p.MobileNumber, p.Email, p.Sex,
			p.Address.City, p.Address.Street, p.Address.HouseNumber,
			p.Address.Building, p.Address.Apartment, p.Address.MetroStation,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
