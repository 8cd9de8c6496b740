package util

import (
	"errors"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

var ErrInvalidPage = errors.New("page and limit must be greater than 0")

// Page is a validated page/limit pair.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage reads page and limit query values, applying the defaults
// (page 1, limit 10) when absent. Non-numeric or non-positive values
// fail with ErrInvalidPage.
func ParsePage(pageStr, limitStr string) (Page, error) {
	p := Page{Number: defaultPage, Limit: defaultLimit}
	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n <= 0 {
			return Page{}, ErrInvalidPage
		}
		p.Number = n
	}
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			return Page{}, ErrInvalidPage
		}
		p.Limit = n
	}
	return p, nil
}

// TotalPages computes ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageMeta describes a page of results for list responses.
type PageMeta struct {
	Total      int64
	TotalPages int
	Page       int
	Limit      int
	Count      int
}
