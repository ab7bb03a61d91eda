package xcoobee

import (
	"context"
	"maps"
	"slices"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

// PageInfo describes where a page sits in a result set. A nil HasNextPage
// means unknown, not false.
type PageInfo struct {
	EndCursor   *string `json:"end_cursor"    yaml:"end_cursor"`
	HasNextPage *bool   `json:"has_next_page" yaml:"has_next_page"`
}

func (i PageInfo) clone() PageInfo {
	var out PageInfo

	if i.EndCursor != nil {
		cursor := *i.EndCursor
		out.EndCursor = &cursor
	}

	if i.HasNextPage != nil {
		flag := *i.HasNextPage
		out.HasNextPage = &flag
	}

	return out
}

// Page is one page of results.
type Page[T any] struct {
	Data     []T      `json:"data"      yaml:"data"`
	PageInfo PageInfo `json:"page_info" yaml:"page_info"`
}

// PageParams are the parameters handed to a PageFetcher. Filters carries
// operation-specific values such as a consent status.
type PageParams struct {
	After   string
	First   int
	Filters map[string]string
}

// WithAfter returns a copy of p positioned after cursor.
func (p PageParams) WithAfter(cursor string) PageParams {
	next := p
	next.After = cursor
	next.Filters = maps.Clone(p.Filters)

	return next
}

// Filter returns the named filter value or "".
func (p PageParams) Filter(name string) string {
	return p.Filters[name]
}

// PageFetcher fetches one page for the given config and params.
type PageFetcher[T any] func(ctx context.Context, cfg EffectiveConfig, params PageParams) (*Page[T], error)

// PagingResponse is an immutable handle on one fetched page. Navigating
// forward returns a new handle; the receiver is never consumed.
type PagingResponse[T any] struct {
	fetcher PageFetcher[T]
	cfg     EffectiveConfig
	params  PageParams
	current *Page[T]
}

// StartPaging fetches the first page with params as given and wraps the
// outcome in an envelope.
func StartPaging[T any](ctx context.Context, fetcher PageFetcher[T], cfg EffectiveConfig, params PageParams) *Response[*PagingResponse[T]] {
	return Envelope(func() (*PagingResponse[T], error) {
		page, err := fetcher(ctx, cfg, params)
		if err != nil {
			return nil, err
		}

		return newPagingResponse(fetcher, cfg, params, page), nil
	})
}

func newPagingResponse[T any](fetcher PageFetcher[T], cfg EffectiveConfig, params PageParams, page *Page[T]) *PagingResponse[T] {
	if page == nil {
		page = &Page[T]{}
	}

	params.Filters = maps.Clone(params.Filters)

	return &PagingResponse[T]{
		fetcher: fetcher,
		cfg:     cfg,
		params:  params,
		current: page,
	}
}

// CurrentPage returns a copy of the page this handle holds. Items are
// copied shallowly.
func (p *PagingResponse[T]) CurrentPage() *Page[T] {
	return &Page[T]{
		Data:     slices.Clone(p.current.Data),
		PageInfo: p.current.PageInfo.clone(),
	}
}

// Data returns a copy of the items of the current page.
func (p *PagingResponse[T]) Data() []T {
	return slices.Clone(p.current.Data)
}

// Params returns a copy of the params the sequence was started with.
func (p *PagingResponse[T]) Params() PageParams {
	params := p.params
	params.Filters = maps.Clone(p.params.Filters)

	return params
}

// HasNextPage reports the current page's has_next_page flag. Unknown is
// reported as false.
func (p *PagingResponse[T]) HasNextPage() bool {
	flag := p.current.PageInfo.HasNextPage

	return flag != nil && *flag
}

// GetNextPage fetches the page after this one. It returns (nil, nil) when
// there is no next page, without touching the network. On failure it returns
// an *ErrorResponse and leaves the receiver unchanged.
func (p *PagingResponse[T]) GetNextPage(ctx context.Context) (*PagingResponse[T], error) {
	if !p.HasNextPage() {
		return nil, nil //nolint:nilnil // end of sequence is not an error
	}

	cursor := ""
	if p.current.PageInfo.EndCursor != nil {
		cursor = *p.current.PageInfo.EndCursor
	}

	page, err := p.fetcher(ctx, p.cfg, p.params.WithAfter(cursor))
	if err != nil {
		return nil, NewErrorResponse(constants.ClientErrorCode, err)
	}

	return newPagingResponse(p.fetcher, p.cfg, p.params, page), nil
}

// Collect walks forward from this handle and returns the data of at most
// maxPages pages (this one included). maxPages <= 0 applies a default bound.
// On failure the data gathered so far is returned with the error.
func (p *PagingResponse[T]) Collect(ctx context.Context, maxPages int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = constants.DefaultMaxPages
	}

	all := append([]T(nil), p.Data()...)
	handle := p

	for pages := 1; pages < maxPages; pages++ {
		next, err := handle.GetNextPage(ctx)
		if err != nil {
			return all, err
		}

		if next == nil {
			break
		}

		all = append(all, next.Data()...)
		handle = next
	}

	return all, nil
}
