package loader

import (
	"io"

	"courseplanner/pkg/catalog"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ParseHTML reads a course table from an HTML document into store.
//
// Every row of a table with at least one <td> cell is one record. Its <th>
// and <td> cells, in order, are read with the same field rules as Parse:
// course number, name, then prerequisite numbers. Rows in <thead> and rows
// made of <th> cells only are headers and are skipped. Tables nested inside
// a cell are part of that cell's text, not records of their own.
func ParseHTML(r io.Reader, store *catalog.Store) (Result, error) {
	return parseHTML(r, store, zap.NewNop())
}

func parseHTML(r io.Reader, store *catalog.Store, log *zap.Logger) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, err
	}

	var res Result

	// The parser always wraps rows in a table section
	rows := doc.Find("table").Not("table table").
		ChildrenFiltered("thead, tbody, tfoot").
		ChildrenFiltered("tr")

	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		if row.Parent().Is("thead") || cells.Filter("td").Length() == 0 {
			res.Skipped++
			log.Debug("skipping header row", zap.Int("row", i))
			return
		}

		fields := cells.Map(func(_ int, cell *goquery.Selection) string {
			return cell.Text()
		})
		store.Insert(courseFromFields(fields))
		res.Records++
	})

	return res, nil
}
