package core

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// linksSheetName is the single worksheet of a link export.
const linksSheetName = "Links"

var linksHeader = []interface{}{"File", "Text", "URL", "Type", "Error"}

// LinkRows flattens extracted links into spreadsheet rows. A file that
// failed extraction contributes one row carrying the error; a file with
// no links contributes nothing.
func LinkRows(linkData []FileLinks) [][]interface{} {
	var rows [][]interface{}
	for _, item := range linkData {
		if item.Error != "" {
			rows = append(rows, []interface{}{item.Path, "", "", "", item.Error})
			continue
		}
		for _, link := range item.Links {
			rows = append(rows, []interface{}{item.Path, link.Text, link.URL, string(link.Type), ""})
		}
	}
	return rows
}

// WriteLinksXLSX writes rows as an xlsx workbook with a header row.
func WriteLinksXLSX(w io.Writer, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", linksSheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(linksSheetName, "A1", &linksHeader); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(linksSheetName, cell, &rows[i]); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
