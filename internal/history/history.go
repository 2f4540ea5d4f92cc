// Package history filters and pages a shopper's order list.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/models"
)

const PageSize = 10

// All disables the status or date filter.
const All = "all"

type DateRange string

const (
	DateAll     DateRange = All
	DateWeek    DateRange = "week"
	DateMonth   DateRange = "month"
	DateQuarter DateRange = "quarter"
	DateYear    DateRange = "year"
)

func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(s)); r {
	case "":
		return DateAll, nil
	case DateAll, DateWeek, DateMonth, DateQuarter, DateYear:
		return r, nil
	}
	return "", fmt.Errorf("unknown date filter %q", s)
}

// Since returns the earliest creation time r admits relative to now. The
// zero time means no lower bound.
func (r DateRange) Since(now time.Time) time.Time {
	switch r {
	case DateWeek:
		return now.AddDate(0, 0, -7)
	case DateMonth:
		return now.AddDate(0, -1, 0)
	case DateQuarter:
		return now.AddDate(0, -3, 0)
	case DateYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// ParseStatus accepts "all" or a known order status. Empty means "all".
func ParseStatus(s string) (string, error) {
	s = strings.ToLower(s)
	if s == "" || s == All {
		return All, nil
	}
	if _, err := models.ParseOrderStatus(s); err != nil {
		return "", err
	}
	return s, nil
}

func ParsePage(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page %q", s)
	}
	if page < 1 {
		page = 1
	}
	return page, nil
}

// Query is the state of the history view. The With* methods return a copy
// with the page reset to 1.
type Query struct {
	Search string
	Status string
	Date   DateRange
	Page   int
}

func NewQuery() Query {
	return Query{Status: All, Date: DateAll, Page: 1}
}

func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1
	return q
}

func (q Query) WithStatus(status string) Query {
	q.Status = status
	q.Page = 1
	return q
}

func (q Query) WithDate(r DateRange) Query {
	q.Date = r
	q.Page = 1
	return q
}

func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Filter keeps the orders matching q, preserving their order.
func Filter(orders []models.Order, q Query, now time.Time) []models.Order {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	since := q.Date.Since(now)

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		if q.Status != "" && q.Status != All && string(o.Status) != q.Status {
			continue
		}
		if !since.IsZero() && o.CreatedAt.Before(since) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesSearch(o models.Order, search string) bool {
	if strings.Contains(strconv.Itoa(o.OrderID), search) {
		return true
	}
	if strings.Contains(strings.ToLower(o.UserEmail), search) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), search) {
			return true
		}
	}
	return false
}

type Page struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	TotalCount int            `json:"totalCount"`
}

// Paginate slices orders into PageSize pages. Pages past the end are
// empty; pages below 1 are treated as 1.
func Paginate(orders []models.Order, page int) Page {
	if page < 1 {
		page = 1
	}
	p := Page{
		Orders:     []models.Order{},
		Page:       page,
		PageSize:   PageSize,
		TotalPages: (len(orders) + PageSize - 1) / PageSize,
		TotalCount: len(orders),
	}

	start := (page - 1) * PageSize
	if start >= len(orders) {
		return p
	}
	end := min(start+PageSize, len(orders))
	p.Orders = orders[start:end]
	return p
}

// Apply filters then paginates.
func Apply(orders []models.Order, q Query, now time.Time) Page {
	return Paginate(Filter(orders, q, now), q.Page)
}
