package productview

import (
	"math"
	"strings"

	"github.com/dukerupert/vitrine/internal/domain"
)

// Tab is a section of the product tabs panel.
type Tab string

const (
	TabDescription    Tab = "Description"
	TabReviews        Tab = "Reviews"
	TabSpecifications Tab = "Specifications"
)

// AllTabs lists the tabs in display order.
var AllTabs = []Tab{TabDescription, TabReviews, TabSpecifications}

// NoSpecifications is shown when a product has no specifications to list.
const NoSpecifications = "No specifications available"

// ParseTab matches a tab name case-insensitively. Unknown or empty names
// select the description tab.
func ParseTab(s string) Tab {
	for _, t := range AllTabs {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return TabDescription
}

// Star is one of the five rating stars.
type Star string

const (
	StarFull  Star = "full"
	StarHalf  Star = "half"
	StarEmpty Star = "empty"
)

// Stars returns five stars for a rating: full stars up to the whole part,
// a half star when the fraction is at least one half, then empty stars.
// Ratings outside 0..5 are clamped.
func Stars(rating float64) []Star {
	if math.IsNaN(rating) {
		rating = 0
	}
	rating = math.Max(0, math.Min(5, rating))

	full := int(math.Floor(rating))
	half := rating-float64(full) >= 0.5

	stars := make([]Star, 5)
	for i := range stars {
		switch {
		case i < full:
			stars[i] = StarFull
		case i == full && half:
			stars[i] = StarHalf
		default:
			stars[i] = StarEmpty
		}
	}
	return stars
}

// SpecRow is one rendered specification line.
type SpecRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SpecRows renders specifications in order. The first underscore of each
// key becomes a space, list values are joined with ", ", and empty lists
// are skipped.
func SpecRows(specs domain.Specifications) []SpecRow {
	rows := make([]SpecRow, 0, len(specs))
	for _, spec := range specs {
		if spec.IsList && len(spec.Values) == 0 {
			continue
		}
		rows = append(rows, SpecRow{
			Label: strings.Replace(spec.Key, "_", " ", 1),
			Value: strings.Join(spec.Values, ", "),
		})
	}
	return rows
}

// ReviewItem is one rendered review.
type ReviewItem struct {
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Stars   []Star  `json:"stars"`
	Comment string  `json:"comment"`
	Date    string  `json:"date,omitempty"`
}

// TabsModel is everything the product tabs panel renders.
type TabsModel struct {
	Active Tab   `json:"active"`
	Tabs   []Tab `json:"tabs"`

	Description string `json:"description"`

	Reviews     []ReviewItem `json:"reviews"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
	Stars       []Star       `json:"stars"`

	Specifications []SpecRow `json:"specifications"`
	EmptySpecsText string    `json:"empty_specifications,omitempty"`
}

// Tabs builds the tabs panel with the given tab active.
func (v *View) Tabs(active Tab) TabsModel {
	p := v.product

	reviews := make([]ReviewItem, len(p.Reviews))
	for i, r := range p.Reviews {
		item := ReviewItem{
			Author:  r.Author,
			Rating:  r.Rating,
			Stars:   Stars(r.Rating),
			Comment: r.Comment,
		}
		if !r.Date.IsZero() {
			item.Date = r.Date.Format("2 January 2006")
		}
		reviews[i] = item
	}

	m := TabsModel{
		Active:         ParseTab(string(active)),
		Tabs:           AllTabs,
		Description:    p.Description,
		Reviews:        reviews,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Stars:          Stars(p.Rating),
		Specifications: SpecRows(p.Specs),
	}
	if len(p.Specs) == 0 {
		m.EmptySpecsText = NoSpecifications
	}
	return m
}
