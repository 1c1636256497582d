package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testWindow() (time.Time, time.Time) {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
}

const listingPage = `<html><body><table>
<tr class="topic-list-item">
  <td><a class="title raw-link" href="/t/ga1-clarification/1">GA1 clarification</a></td>
</tr>
<tr class="topic-list-item">
  <td><a class="title raw-link" href="/t/old-topic/2">Old topic</a></td>
</tr>
<tr class="topic-list-item">
  <td><span>no link here</span></td>
</tr>
</table></body></html>`

func topicJSON(createdAt, slug string, postsCount int, posts string) string {
	return fmt.Sprintf(`{
		"created_at": %q,
		"slug": %q,
		"post_stream": {"posts": [%s]},
		"posts_count": %d
	}`, createdAt, slug, posts, postsCount)
}

func postJSON(number, postsCount int, slug, postURL, cooked string) string {
	return fmt.Sprintf(`{"post_number": %d, "posts_count": %d, "topic_slug": %q, "post_url": %q, "cooked": %q}`,
		number, postsCount, slug, postURL, cooked)
}

func newTestServer(t *testing.T, handlers map[string]string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Clone(context.Background()))
		body, ok := handlers[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestScrapeForum_CollectsPostsInsideWindow(t *testing.T) {
	handlers := map[string]string{
		"/c/courses/tds-kb/34": listingPage,
		"/t/ga1-clarification/1/1.json": topicJSON("2025-02-10T08:00:00Z", "ga1-clarification", 2,
			postJSON(1, 2, "ga1-clarification", "/t/ga1-clarification/1/1", "<p>Use <b>uv</b> to run it.</p>")+","+
				postJSON(2, 2, "ga1-clarification", "/t/ga1-clarification/1/2", "<p>Thanks!</p>")),
		"/t/old-topic/2/1.json": topicJSON("2024-09-01T08:00:00Z", "old-topic", 1,
			postJSON(1, 1, "old-topic", "/t/old-topic/2/1", "<p>stale</p>")),
	}
	server, requests := newTestServer(t, handlers)

	start, end := testWindow()
	client := NewDiscourseClient(DiscourseConfig{
		BaseURL:         server.URL,
		CategoryURL:     "/c/courses/tds-kb/34",
		Session:         "sess-cookie",
		Token:           "t-cookie",
		StartDate:       start,
		EndDate:         end,
		RequestInterval: time.Millisecond,
	}, server.Client(), testLogger())

	docs, err := client.ScrapeForum(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "ga1-clarification", docs[0].Title)
	assert.Equal(t, server.URL+"/t/ga1-clarification/1/1", docs[0].URL)
	assert.Equal(t, "Use uv to run it.", docs[0].Content)
	assert.Equal(t, server.URL+"/t/ga1-clarification/1/2", docs[1].URL)

	first := (*requests)[0]
	session, err := first.Cookie("_forum_session")
	require.NoError(t, err)
	assert.Equal(t, "sess-cookie", session.Value)
	token, err := first.Cookie("_t")
	require.NoError(t, err)
	assert.Equal(t, "t-cookie", token.Value)
}

func TestScrapeForum_SlugFallbackAdmitsTopic(t *testing.T) {
	handlers := map[string]string{
		"/c/courses/tds-kb/34": `<html><body><table>
<tr class="topic-list-item"><td><a class="title raw-link" href="/t/tds-jan-2025-exam/7">Exam</a></td></tr>
</table></body></html>`,
		"/t/tds-jan-2025-exam/7/1.json": topicJSON("2024-12-15T08:00:00Z", "tds-jan-2025-exam", 1,
			postJSON(1, 1, "tds-jan-2025-exam", "/t/tds-jan-2025-exam/7/1", "<p>exam info</p>")),
	}
	server, _ := newTestServer(t, handlers)

	start, end := testWindow()
	client := NewDiscourseClient(DiscourseConfig{
		BaseURL:         server.URL,
		CategoryURL:     "/c/courses/tds-kb/34",
		StartDate:       start,
		EndDate:         end,
		RequestInterval: time.Millisecond,
	}, server.Client(), testLogger())

	docs, err := client.ScrapeForum(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "exam info", docs[0].Content)
}

func TestScrapeForum_PagesThroughLongTopic(t *testing.T) {
	handlers := map[string]string{
		"/c/courses/tds-kb/34": `<html><body><table>
<tr class="topic-list-item"><td><a class="title raw-link" href="/t/long/3">Long</a></td></tr>
</table></body></html>`,
		"/t/long/3/1.json": topicJSON("2025-03-01T08:00:00Z", "long", 3,
			postJSON(1, 3, "long", "/t/long/3/1", "one")+","+
				postJSON(2, 3, "long", "/t/long/3/2", "two")),
		"/t/long/3/2.json": topicJSON("2025-03-01T08:00:00Z", "long", 3,
			postJSON(2, 3, "long", "/t/long/3/2", "two")+","+
				postJSON(3, 3, "long", "/t/long/3/3", "three")),
	}
	server, _ := newTestServer(t, handlers)

	start, end := testWindow()
	client := NewDiscourseClient(DiscourseConfig{
		BaseURL:         server.URL,
		CategoryURL:     "/c/courses/tds-kb/34",
		StartDate:       start,
		EndDate:         end,
		RequestInterval: time.Millisecond,
	}, server.Client(), testLogger())

	docs, err := client.ScrapeForum(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, server.URL+"/t/long/3/1", docs[0].URL)
	assert.Equal(t, server.URL+"/t/long/3/2", docs[1].URL)
	assert.Equal(t, server.URL+"/t/long/3/3", docs[2].URL)
}

func TestScrapeForum_EmptyListingStopsPagination(t *testing.T) {
	handlers := map[string]string{
		"/c/courses/tds-kb/34": `<html><body><table></table></body></html>`,
	}
	server, requests := newTestServer(t, handlers)

	start, end := testWindow()
	client := NewDiscourseClient(DiscourseConfig{
		BaseURL:         server.URL,
		CategoryURL:     "/c/courses/tds-kb/34",
		StartDate:       start,
		EndDate:         end,
		RequestInterval: time.Millisecond,
	}, server.Client(), testLogger())

	docs, err := client.ScrapeForum(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Len(t, *requests, 1)
}

func TestScrapeForum_FailedTopicDoesNotAbortScrape(t *testing.T) {
	handlers := map[string]string{
		"/c/courses/tds-kb/34": `<html><body><table>
<tr class="topic-list-item"><td><a class="title raw-link" href="/t/missing/9">Missing</a></td></tr>
<tr class="topic-list-item"><td><a class="title raw-link" href="/t/ok/10">OK</a></td></tr>
</table></body></html>`,
		"/t/ok/10/1.json": topicJSON("2025-03-01T08:00:00Z", "ok", 1,
			postJSON(1, 1, "ok", "/t/ok/10/1", "fine")),
	}
	server, _ := newTestServer(t, handlers)

	start, end := testWindow()
	client := NewDiscourseClient(DiscourseConfig{
		BaseURL:         server.URL,
		CategoryURL:     "/c/courses/tds-kb/34",
		StartDate:       start,
		EndDate:         end,
		RequestInterval: time.Millisecond,
	}, server.Client(), testLogger())

	docs, err := client.ScrapeForum(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "fine", docs[0].Content)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("plain text"))
	assert.Equal(t, "nested markup here", stripHTML("<div><p>nested <em>markup</em> here</p></div>"))
}
