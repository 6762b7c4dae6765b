package client

import (
	"context"
	"net/url"
	"strconv"
)

// PeopleService provides person directory operations.
type PeopleService struct {
	c *Client
}

// ListOptions controls directory paging and filtering.
type ListOptions struct {
	Query  string
	Limit  int
	Offset int
}

// List returns one page of the person directory.
func (s *PeopleService) List(ctx context.Context, opts ListOptions) (*ListPeopleResponse, error) {
	params := url.Values{}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}

	var resp ListPeopleResponse
	if err := s.c.get(ctx, "/api/v1/people", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one person by registry ID.
func (s *PeopleService) Get(ctx context.Context, id string) (*Person, error) {
	var p Person
	if err := s.c.get(ctx, "/api/v1/people/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Relatives returns the immediate relatives of one person.
func (s *PeopleService) Relatives(ctx context.Context, id string) (*Relatives, error) {
	var rel Relatives
	if err := s.c.get(ctx, "/api/v1/people/"+url.PathEscape(id)+"/relatives", nil, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}
