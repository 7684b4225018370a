package handlers

import (
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"spacecrew/internal/domain"
	"spacecrew/internal/utils"
)

// parsePageRequest reads page, size and repeated sort=field[,asc|desc]
// parameters. sortable lists the accepted field names.
func parsePageRequest(q url.Values, sortable []string) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 0, Size: domain.DefaultPageSize}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, domain.ValidationError{Field: "page", Msg: "must be a non-negative integer", Err: err}
		}
		req.Page = n
	}
	if raw := strings.TrimSpace(q.Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return req, domain.ValidationError{Field: "size", Msg: "must be a positive integer", Err: err}
		}
		req.Size = n
	}
	req = req.Normalized()
	if req.Page > (math.MaxInt-req.Size)/req.Size {
		return req, domain.ValidationError{Field: "page", Msg: "is too large for the requested size"}
	}

	for _, raw := range q["sort"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		field, dir, _ := strings.Cut(raw, ",")
		field = strings.TrimSpace(field)
		if !slices.Contains(sortable, field) {
			return req, domain.ValidationError{
				Field: "sort",
				Msg:   "unknown field " + strconv.Quote(field) + " (allowed: " + strings.Join(sortable, ", ") + ")",
			}
		}
		s := domain.Sort{Field: field, Direction: domain.Asc}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			s.Direction = domain.Desc
		default:
			return req, domain.ValidationError{Field: "sort", Msg: "direction must be asc or desc"}
		}
		req.Sort = append(req.Sort, s)
	}
	return req, nil
}

type pageMetadata struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type pageLinks struct {
	Self  string `json:"self"`
	First string `json:"first"`
	Last  string `json:"last"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

type pageResponse[T any] struct {
	Content []T          `json:"content"`
	Page    pageMetadata `json:"page"`
	Links   pageLinks    `json:"links"`
}

// newPageResponse wraps p with navigation links that keep every query
// parameter of r except page and size.
func newPageResponse[T any](r *http.Request, publicBaseURL string, p domain.Page[T]) pageResponse[T] {
	base := utils.BaseURL(r, publicBaseURL)
	link := func(number int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(number))
		q.Set("size", strconv.Itoa(p.Size))
		return utils.WithQuery(base, r.URL.Path, q)
	}

	last := max(p.TotalPages()-1, 0)
	links := pageLinks{
		Self:  link(p.Number),
		First: link(0),
		Last:  link(last),
	}
	if p.HasNext() {
		links.Next = link(p.Number + 1)
	}
	if p.HasPrevious() {
		links.Prev = link(min(p.Number-1, last))
	}

	return pageResponse[T]{
		Content: p.Content,
		Page: pageMetadata{
			Number:        p.Number,
			Size:          p.Size,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages(),
		},
		Links: links,
	}
}
