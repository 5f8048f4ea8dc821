package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
	"github.com/koinonia-dev/koinonia/internal/pagination"
)

type MockResolverStorage struct {
	MockChurchCount func() (int, error)
	MockChurches    func(limit, offset int) ([]domain.Church, error)
	MockChurch      func(name domain.ChurchName) (domain.Church, error)
	MockSeriesCount func(churchId domain.ChurchId) (int, error)
	MockSeries      func(churchId domain.ChurchId, limit, offset int) ([]domain.Series, error)
	MockSermonCount func(churchId domain.ChurchId, seriesName domain.SeriesName) (int, error)
	MockSermons     func(churchId domain.ChurchId, seriesName domain.SeriesName, limit, offset int) ([]domain.Sermon, error)
	MockSermon      func(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error)
	MockThreadCount func(sermonId domain.SermonId) (int, error)
	MockThreads     func(sermonId domain.SermonId, limit, offset int) ([]domain.Thread, error)
	MockThread      func(sermonId domain.SermonId, id domain.ThreadId) (domain.Thread, error)
	MockPostCount   func(threadId domain.ThreadId) (int, error)
	MockPosts       func(threadId domain.ThreadId, limit, offset int) ([]domain.Post, error)
	MockPost        func(id domain.PostId) (domain.Post, error)

	ThreadCalls int
	PostCalls   int
}

func (m *MockResolverStorage) ChurchCount() (int, error) {
	if m.MockChurchCount != nil {
		return m.MockChurchCount()
	}
	return 0, nil
}

func (m *MockResolverStorage) Churches(limit, offset int) ([]domain.Church, error) {
	if m.MockChurches != nil {
		return m.MockChurches(limit, offset)
	}
	return nil, nil
}

func (m *MockResolverStorage) Church(name domain.ChurchName) (domain.Church, error) {
	if m.MockChurch != nil {
		return m.MockChurch(name)
	}
	return domain.Church{}, nil
}

func (m *MockResolverStorage) SeriesCount(churchId domain.ChurchId) (int, error) {
	if m.MockSeriesCount != nil {
		return m.MockSeriesCount(churchId)
	}
	return 0, nil
}

func (m *MockResolverStorage) Series(churchId domain.ChurchId, limit, offset int) ([]domain.Series, error) {
	if m.MockSeries != nil {
		return m.MockSeries(churchId, limit, offset)
	}
	return nil, nil
}

func (m *MockResolverStorage) SermonCount(churchId domain.ChurchId, seriesName domain.SeriesName) (int, error) {
	if m.MockSermonCount != nil {
		return m.MockSermonCount(churchId, seriesName)
	}
	return 0, nil
}

func (m *MockResolverStorage) Sermons(churchId domain.ChurchId, seriesName domain.SeriesName, limit, offset int) ([]domain.Sermon, error) {
	if m.MockSermons != nil {
		return m.MockSermons(churchId, seriesName, limit, offset)
	}
	return nil, nil
}

func (m *MockResolverStorage) Sermon(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error) {
	if m.MockSermon != nil {
		return m.MockSermon(churchId, seriesName, sermonName)
	}
	return domain.Sermon{}, nil
}

func (m *MockResolverStorage) ThreadCount(sermonId domain.SermonId) (int, error) {
	if m.MockThreadCount != nil {
		return m.MockThreadCount(sermonId)
	}
	return 0, nil
}

func (m *MockResolverStorage) Threads(sermonId domain.SermonId, limit, offset int) ([]domain.Thread, error) {
	if m.MockThreads != nil {
		return m.MockThreads(sermonId, limit, offset)
	}
	return nil, nil
}

func (m *MockResolverStorage) Thread(sermonId domain.SermonId, id domain.ThreadId) (domain.Thread, error) {
	m.ThreadCalls++
	if m.MockThread != nil {
		return m.MockThread(sermonId, id)
	}
	return domain.Thread{}, nil
}

func (m *MockResolverStorage) PostCount(threadId domain.ThreadId) (int, error) {
	if m.MockPostCount != nil {
		return m.MockPostCount(threadId)
	}
	return 0, nil
}

func (m *MockResolverStorage) Posts(threadId domain.ThreadId, limit, offset int) ([]domain.Post, error) {
	if m.MockPosts != nil {
		return m.MockPosts(threadId, limit, offset)
	}
	return nil, nil
}

func (m *MockResolverStorage) Post(id domain.PostId) (domain.Post, error) {
	m.PostCalls++
	if m.MockPost != nil {
		return m.MockPost(id)
	}
	return domain.Post{}, nil
}

// tenChurches simulates ten churches paged four at a time.
func tenChurches() *MockResolverStorage {
	all := make([]domain.Church, 10)
	for i := range all {
		all[i] = domain.Church{Id: int64(i + 1), Name: fmt.Sprintf("Church %02d", i+1)}
	}
	return &MockResolverStorage{
		MockChurchCount: func() (int, error) { return len(all), nil },
		MockChurches: func(limit, offset int) ([]domain.Church, error) {
			if offset >= len(all) {
				return nil, nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		},
	}
}

func TestChurchesValidPage(t *testing.T) {
	r := NewResolver(tenChurches())

	listing, err := r.Churches(pagination.ParseRequest("3"))
	require.NoError(t, err)

	assert.Len(t, listing.Items, 2)
	assert.Equal(t, int64(9), listing.Items[0].Id)
	assert.Equal(t, int64(10), listing.Items[1].Id)
	assert.Equal(t, 3, listing.PageCount)
	assert.Equal(t, 3, listing.Page)
	assert.Equal(t, []int{1, 2, 3}, listing.PageNumbers)
	assert.Empty(t, listing.Warning)
}

func TestChurchesPagePastTheEnd(t *testing.T) {
	r := NewResolver(tenChurches())

	listing, err := r.Churches(pagination.ParseRequest("5"))
	require.NoError(t, err)

	assert.Equal(t, 3, listing.PageCount)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, "Page 5 does not exist.", listing.Warning)
	// fallback still fetches page 1
	assert.Len(t, listing.Items, 4)
	assert.Equal(t, int64(1), listing.Items[0].Id)
	// page index sequence reflects the actual page count
	assert.Equal(t, []int{1, 2, 3}, listing.PageNumbers)
}

func TestChurchesNonIntegerPage(t *testing.T) {
	r := NewResolver(tenChurches())

	listing, err := r.Churches(pagination.ParseRequest("abc"))
	require.NoError(t, err)

	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, "Page abc does not exist.", listing.Warning)
}

func TestChurchesEmptyListingIsOnePage(t *testing.T) {
	storage := &MockResolverStorage{
		MockChurchCount: func() (int, error) { return 0, nil },
	}
	r := NewResolver(storage)

	listing, err := r.Churches(pagination.ParseRequest("1"))
	require.NoError(t, err)

	assert.Empty(t, listing.Items)
	assert.Equal(t, 1, listing.PageCount)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, []int{1}, listing.PageNumbers)
	assert.Empty(t, listing.Warning)
}

func TestChurchesCountError(t *testing.T) {
	storage := &MockResolverStorage{
		MockChurchCount: func() (int, error) { return 0, errors.New("connection refused") },
	}
	r := NewResolver(storage)

	_, err := r.Churches(pagination.ParseRequest("1"))
	assert.Error(t, err)
}

func TestChurchesIdempotent(t *testing.T) {
	r := NewResolver(tenChurches())

	first, err := r.Churches(pagination.ParseRequest("2"))
	require.NoError(t, err)
	second, err := r.Churches(pagination.ParseRequest("2"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestThreadNonIntegerIdSkipsStorage(t *testing.T) {
	storage := &MockResolverStorage{}
	r := NewResolver(storage)

	_, err := r.Thread(1, "abc")

	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Zero(t, storage.ThreadCalls)
}

func TestThreadNonPositiveIdSkipsStorage(t *testing.T) {
	storage := &MockResolverStorage{}
	r := NewResolver(storage)

	for _, raw := range []string{"0", "-5", "1.5", ""} {
		_, err := r.Thread(1, raw)
		assert.Error(t, err, "raw=%q", raw)
	}
	assert.Zero(t, storage.ThreadCalls)
}

func TestThreadFound(t *testing.T) {
	storage := &MockResolverStorage{
		MockThread: func(sermonId domain.SermonId, id domain.ThreadId) (domain.Thread, error) {
			return domain.Thread{Id: id, SermonId: sermonId, GroupName: "Young Adults"}, nil
		},
	}
	r := NewResolver(storage)

	thread, err := r.Thread(7, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), thread.Id)
	assert.Equal(t, int64(7), thread.SermonId)
	assert.Equal(t, 1, storage.ThreadCalls)
}

func TestThreadsEmptyPageIsNotAnError(t *testing.T) {
	storage := &MockResolverStorage{
		MockThreadCount: func(sermonId domain.SermonId) (int, error) { return 0, nil },
		MockThreads: func(sermonId domain.SermonId, limit, offset int) ([]domain.Thread, error) {
			return nil, nil
		},
	}
	r := NewResolver(storage)

	listing, err := r.Threads(3, pagination.ParseRequest("1"))
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.Empty(t, listing.Warning)
}

func TestPostsPageSize(t *testing.T) {
	var gotLimit, gotOffset int
	now := time.Now()
	storage := &MockResolverStorage{
		MockPostCount: func(threadId domain.ThreadId) (int, error) { return 12, nil },
		MockPosts: func(threadId domain.ThreadId, limit, offset int) ([]domain.Post, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.Post{{Id: 2, Date: now}, {Id: 1, Date: now}}, nil
		},
	}
	r := NewResolver(storage)

	listing, err := r.Posts(9, pagination.ParseRequest("3"))
	require.NoError(t, err)

	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 10, gotOffset)
	assert.Equal(t, 3, listing.PageCount)
	assert.Equal(t, 3, listing.Page)
}

func TestSeriesListingUsesChurchId(t *testing.T) {
	storage := &MockResolverStorage{
		MockSeriesCount: func(churchId domain.ChurchId) (int, error) {
			assert.Equal(t, int64(5), churchId)
			return 6, nil
		},
		MockSeries: func(churchId domain.ChurchId, limit, offset int) ([]domain.Series, error) {
			assert.Equal(t, int64(5), churchId)
			assert.Equal(t, 4, limit)
			assert.Equal(t, 4, offset)
			return []domain.Series{{Name: "Advent"}, {Name: "Exodus"}}, nil
		},
	}
	r := NewResolver(storage)

	listing, err := r.Series(5, pagination.ParseRequest("2"))
	require.NoError(t, err)
	assert.Len(t, listing.Items, 2)
	assert.Equal(t, 2, listing.PageCount)
	assert.Equal(t, 2, listing.Page)
}

func TestSermonLookupPassesThroughNotFound(t *testing.T) {
	storage := &MockResolverStorage{
		MockSermon: func(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error) {
			return domain.Sermon{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Sermon not found",
				StatusCode: http.StatusNotFound,
			}
		},
	}
	r := NewResolver(storage)

	_, err := r.Sermon(1, "Advent", "Nope")
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestPostNonIntegerIdSkipsStorage(t *testing.T) {
	storage := &MockResolverStorage{}
	r := NewResolver(storage)

	_, err := r.Post("xyz")
	assert.Error(t, err)
	assert.Zero(t, storage.PostCalls)
}
