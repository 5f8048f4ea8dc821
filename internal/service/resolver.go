package service

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
	"github.com/koinonia-dev/koinonia/internal/pagination"
)

// ResolverStorage is the slice of the persistence layer the resolver reads
// through. All listings are count-then-fetch; lookups report missing rows as
// ErrorWithStatusCode with a 404.
type ResolverStorage interface {
	ChurchCount() (int, error)
	Churches(limit, offset int) ([]domain.Church, error)
	Church(name domain.ChurchName) (domain.Church, error)
	SeriesCount(churchId domain.ChurchId) (int, error)
	Series(churchId domain.ChurchId, limit, offset int) ([]domain.Series, error)
	SermonCount(churchId domain.ChurchId, seriesName domain.SeriesName) (int, error)
	Sermons(churchId domain.ChurchId, seriesName domain.SeriesName, limit, offset int) ([]domain.Sermon, error)
	Sermon(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error)
	ThreadCount(sermonId domain.SermonId) (int, error)
	Threads(sermonId domain.SermonId, limit, offset int) ([]domain.Thread, error)
	Thread(sermonId domain.SermonId, id domain.ThreadId) (domain.Thread, error)
	PostCount(threadId domain.ThreadId) (int, error)
	Posts(threadId domain.ThreadId, limit, offset int) ([]domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
}

// Listing is one resolved page of a paginated level of the hierarchy.
// Page is the page actually fetched; Warning is set when the requested page
// was invalid and the listing fell back to page 1.
type Listing[T any] struct {
	Items       []T
	PageCount   int
	PageNumbers []int
	Page        int
	Warning     string
}

// Resolver walks the church -> series -> sermon -> thread -> post hierarchy.
// Each level validates existence before the next is consulted; listings run
// the requested page through the pagination rules and clamp to page 1 with a
// warning when it is out of range.
type Resolver struct {
	storage ResolverStorage
}

func NewResolver(storage ResolverStorage) *Resolver {
	return &Resolver{storage}
}

// resolveListing is the shared count -> validate page -> fetch sequence.
// The page index sequence always reflects the actual page count, never the
// requested page.
func resolveListing[T any](
	page pagination.Request,
	pageSize int,
	count func() (int, error),
	fetch func(limit, offset int) ([]T, error),
) (Listing[T], error) {
	total, err := count()
	if err != nil {
		return Listing[T]{}, err
	}

	pageCount := pagination.PageCount(total, pageSize)
	listing := Listing[T]{
		PageCount:   pageCount,
		PageNumbers: pagination.PageNumbers(pageCount),
		Page:        page.Number,
	}
	if !page.Valid(pageCount) {
		listing.Page = 1
		listing.Warning = fmt.Sprintf("Page %s does not exist.", page.Raw)
	}

	items, err := fetch(pageSize, pagination.Offset(listing.Page, pageSize))
	if err != nil {
		return Listing[T]{}, err
	}
	listing.Items = items
	return listing, nil
}

func (r *Resolver) Churches(page pagination.Request) (Listing[domain.Church], error) {
	return resolveListing(page, pagination.ListingPageSize,
		r.storage.ChurchCount,
		r.storage.Churches,
	)
}

func (r *Resolver) Church(name domain.ChurchName) (domain.Church, error) {
	return r.storage.Church(name)
}

func (r *Resolver) Series(churchId domain.ChurchId, page pagination.Request) (Listing[domain.Series], error) {
	return resolveListing(page, pagination.ListingPageSize,
		func() (int, error) { return r.storage.SeriesCount(churchId) },
		func(limit, offset int) ([]domain.Series, error) { return r.storage.Series(churchId, limit, offset) },
	)
}

func (r *Resolver) Sermons(churchId domain.ChurchId, seriesName domain.SeriesName, page pagination.Request) (Listing[domain.Sermon], error) {
	return resolveListing(page, pagination.ListingPageSize,
		func() (int, error) { return r.storage.SermonCount(churchId, seriesName) },
		func(limit, offset int) ([]domain.Sermon, error) {
			return r.storage.Sermons(churchId, seriesName, limit, offset)
		},
	)
}

func (r *Resolver) Sermon(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error) {
	return r.storage.Sermon(churchId, seriesName, sermonName)
}

func (r *Resolver) Threads(sermonId domain.SermonId, page pagination.Request) (Listing[domain.Thread], error) {
	return resolveListing(page, pagination.ListingPageSize,
		func() (int, error) { return r.storage.ThreadCount(sermonId) },
		func(limit, offset int) ([]domain.Thread, error) { return r.storage.Threads(sermonId, limit, offset) },
	)
}

// Thread resolves a thread id taken from the URL. A raw id that is not a
// positive integer is not found by definition; no storage call is made.
func (r *Resolver) Thread(sermonId domain.SermonId, rawThreadId string) (domain.Thread, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawThreadId), 10, 64)
	if err != nil || id < 1 {
		return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return r.storage.Thread(sermonId, id)
}

func (r *Resolver) Posts(threadId domain.ThreadId, page pagination.Request) (Listing[domain.Post], error) {
	return resolveListing(page, pagination.PostPageSize,
		func() (int, error) { return r.storage.PostCount(threadId) },
		func(limit, offset int) ([]domain.Post, error) { return r.storage.Posts(threadId, limit, offset) },
	)
}

// Post resolves a post id taken from the URL for the edit form.
func (r *Resolver) Post(rawPostId string) (domain.Post, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawPostId), 10, 64)
	if err != nil || id < 1 {
		return domain.Post{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return r.storage.Post(id)
}
