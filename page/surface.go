package page

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"marc/chart"
)

// ResolveSurface parses an HTML document and checks that elementID names
// exactly one <canvas> in it.
func ResolveSurface(r io.Reader, elementID string) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to parse host document: %w", err)
	}
	return Resolve(doc, elementID)
}

func Resolve(doc *goquery.Document, elementID string) error {
	matches := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == elementID
	})

	switch n := matches.Length(); n {
	case 0:
		return &chart.SurfaceNotFoundError{ElementID: elementID}
	case 1:
	default:
		return &chart.SurfaceNotFoundError{
			ElementID: elementID,
			Reason:    fmt.Sprintf("%d elements share this id", n),
		}
	}

	if name := goquery.NodeName(matches); name != "canvas" {
		return &chart.SurfaceNotFoundError{
			ElementID: elementID,
			Reason:    fmt.Sprintf("element is a <%s>, not a <canvas>", name),
		}
	}
	return nil
}
