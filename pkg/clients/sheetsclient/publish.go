package sheetsclient

import (
	"fmt"
	"time"
)

// PublishedRosterRow represents a single slot row in the published grid
type PublishedRosterRow struct {
	Date  time.Time
	Day   string
	Slot  string
	Staff []string
}

// PublishedRoster represents a two week roster formatted for publishing
type PublishedRoster struct {
	StartDate time.Time
	Rows      []PublishedRosterRow
}

// TabTitle returns the sheet tab name for the roster period
func (r PublishedRoster) TabTitle() string {
	end := r.StartDate.AddDate(0, 0, 13)
	return fmt.Sprintf("%s - %s", r.StartDate.Format("02 Jan"), end.Format("02 Jan 2006"))
}

// PublishRoster writes the roster grid to its own tab, creating the tab
// if necessary and overwriting any previous contents.
func (c *Client) PublishRoster(spreadsheetID string, roster PublishedRoster) (string, error) {
	title := roster.TabTitle()

	if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
		return "", fmt.Errorf("failed to prepare tab: %w", err)
	}

	values := [][]interface{}{
		{"Date", "Day", "Slot", "Staff 1", "Staff 2"},
	}

	for _, row := range roster.Rows {
		cells := []interface{}{
			row.Date.Format("02/01/2006"),
			row.Day,
			row.Slot,
		}
		for i := 0; i < 2; i++ {
			if i < len(row.Staff) {
				cells = append(cells, row.Staff[i])
			} else {
				cells = append(cells, "")
			}
		}
		values = append(values, cells)
	}

	sheetRange := fmt.Sprintf("'%s'!A1:E%d", title, len(values))
	if err := c.UpdateValues(spreadsheetID, sheetRange, values); err != nil {
		return "", fmt.Errorf("failed to write roster values: %w", err)
	}

	return title, nil
}
