// Package export writes filtered views in download formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Clark-Hu/movies-dashboard/internal/engine"
)

// Header is the first CSV row.
var Header = []string{"title", "genre", "rating", "voters", "duration"}

// Filename is the suggested download name for an exported view.
const Filename = "filtered_movies.csv"

// WriteCSV writes the view's rows in view order. Numbers are written raw,
// without grouping separators or units.
func WriteCSV(w io.Writer, v engine.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(Header))
	for i := 0; i < v.Len(); i++ {
		m := v.At(i)
		record[0] = m.Title
		record[1] = m.Genre
		record[2] = strconv.FormatFloat(m.Rating, 'f', -1, 64)
		record[3] = strconv.FormatInt(m.Voters, 10)
		record[4] = strconv.Itoa(m.Duration)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
