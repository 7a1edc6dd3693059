package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlines/internal/adapter/parser"
)

const testFeedXML = `
<rss>
<channel>
<title>Test Feed</title>
<link>https://example.com</link>
<description>Test Description</description>
<item>
<title>Item 1</title>
<link>https://example.com/item1</link>
<description>Item 1 Description</description>
<pubDate>Mon, 02 Jan 2006 15:04:05 MST</pubDate>
</item>
</channel>
</rss>`

var testFeeds = map[string]string{
	"bbc": "https://feeds.test/bbc.xml",
	"nyt": "https://feeds.test/nyt.xml",
}

type recordingFetcher struct {
	gotURL string
	err    error
}

func (f *recordingFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	f.gotURL = url
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(testFeedXML)), nil
}

func newArticlesUC(f FeedFetcher) *ArticlesUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewArticlesUseCase(f, parser.NewXMLParser(logger), testFeeds, "bbc", logger)
}

func TestGetArticles_KnownKey(t *testing.T) {
	f := &recordingFetcher{}
	uc := newArticlesUC(f)

	items, err := uc.GetArticles(context.Background(), "nyt")

	require.NoError(t, err)
	assert.Equal(t, testFeeds["nyt"], f.gotURL)
	require.Len(t, items, 1)
	assert.Equal(t, "Item 1", items[0].Title)
}

func TestGetArticles_KeyIsCaseInsensitive(t *testing.T) {
	f := &recordingFetcher{}
	uc := newArticlesUC(f)

	_, err := uc.GetArticles(context.Background(), "NYT")

	require.NoError(t, err)
	assert.Equal(t, testFeeds["nyt"], f.gotURL)
}

func TestGetArticles_UnknownKeyFallsBackToDefault(t *testing.T) {
	f := &recordingFetcher{}
	uc := newArticlesUC(f)

	_, err := uc.GetArticles(context.Background(), "xyz")

	require.NoError(t, err)
	assert.Equal(t, testFeeds["bbc"], f.gotURL)
}

func TestGetArticles_EmptyKeyFallsBackToDefault(t *testing.T) {
	f := &recordingFetcher{}
	uc := newArticlesUC(f)

	_, err := uc.GetArticles(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, testFeeds["bbc"], f.gotURL)
}

func TestGetArticles_FetchErrorPropagates(t *testing.T) {
	f := &recordingFetcher{err: errors.New("connection refused")}
	uc := newArticlesUC(f)

	items, err := uc.GetArticles(context.Background(), "bbc")

	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "fetch failed for bbc")
}
