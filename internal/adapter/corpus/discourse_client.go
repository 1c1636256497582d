package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"vta-orchestrator/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// slug fallback for topics whose created_at falls outside the window
const termSlugMarker = "jan-2025"

// DiscourseClient scrapes course forum topics through the Discourse HTML and
// JSON endpoints using session cookies.
type DiscourseClient struct {
	baseURL     string
	categoryURL string
	session     string
	token       string
	client      *http.Client
	limiter     *rate.Limiter
	startDate   time.Time
	endDate     time.Time
	logger      *slog.Logger
}

// DiscourseConfig carries the scrape parameters.
type DiscourseConfig struct {
	BaseURL     string
	CategoryURL string // path relative to BaseURL, e.g. /c/courses/tds-kb/34
	Session     string // _forum_session cookie
	Token       string // _t cookie
	StartDate   time.Time
	EndDate     time.Time

	// RequestInterval throttles requests against the forum. Zero means the
	// default of 500ms.
	RequestInterval time.Duration
}

func NewDiscourseClient(cfg DiscourseConfig, client *http.Client, logger *slog.Logger) *DiscourseClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &DiscourseClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		categoryURL: cfg.CategoryURL,
		session:     cfg.Session,
		token:       cfg.Token,
		client:      client,
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		startDate:   cfg.StartDate,
		endDate:     cfg.EndDate,
		logger:      logger,
	}
}

type topicRef struct {
	Title string
	URL   string
}

type postStreamResponse struct {
	CreatedAt  string `json:"created_at"`
	Slug       string `json:"slug"`
	PostStream struct {
		Posts []struct {
			PostNumber int    `json:"post_number"`
			PostsCount int    `json:"posts_count"`
			TopicSlug  string `json:"topic_slug"`
			PostURL    string `json:"post_url"`
			Cooked     string `json:"cooked"`
		} `json:"posts"`
	} `json:"post_stream"`
}

// ScrapeForum walks the category listing pages and collects every post of
// every topic inside the date window as a CourseDocument.
func (c *DiscourseClient) ScrapeForum(ctx context.Context, maxPages int) ([]domain.CourseDocument, error) {
	var docs []domain.CourseDocument

	for page := 1; page <= maxPages; page++ {
		topics, err := c.listTopics(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list topics on page %d: %w", page, err)
		}
		if len(topics) == 0 {
			c.logger.Info("no_topics_on_page", slog.Int("page", page))
			break
		}

		for _, topic := range topics {
			posts, err := c.fetchTopicPosts(ctx, topic)
			if err != nil {
				c.logger.Warn("topic_fetch_failed",
					slog.String("topic", topic.Title),
					slog.String("error", err.Error()))
				continue
			}
			docs = append(docs, posts...)
		}
	}

	c.logger.Info("forum_scrape_completed", slog.Int("document_count", len(docs)))
	return docs, nil
}

// listTopics parses one category listing page.
func (c *DiscourseClient) listTopics(ctx context.Context, page int) ([]topicRef, error) {
	url := fmt.Sprintf("%s%s?page=%d", c.baseURL, c.categoryURL, page)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var topics []topicRef
	doc.Find("tr.topic-list-item").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.title.raw-link").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = c.baseURL + href
		}
		topics = append(topics, topicRef{
			Title: strings.TrimSpace(link.Text()),
			URL:   href,
		})
	})
	return topics, nil
}

// fetchTopicPosts pages through {topic}/{post_number}.json until every post
// in the stream has been seen. Topics outside the date window are skipped.
func (c *DiscourseClient) fetchTopicPosts(ctx context.Context, topic topicRef) ([]domain.CourseDocument, error) {
	var docs []domain.CourseDocument
	seen := make(map[int]bool)
	postNumber := 1
	postsCount := 0

	for {
		url := fmt.Sprintf("%s/%d.json", topic.URL, postNumber)
		body, err := c.get(ctx, url)
		if err != nil {
			if len(docs) > 0 {
				break
			}
			return nil, err
		}

		var stream postStreamResponse
		decodeErr := json.NewDecoder(body).Decode(&stream)
		body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode post stream: %w", decodeErr)
		}

		posts := stream.PostStream.Posts
		if len(posts) == 0 {
			break
		}
		if !c.inWindow(stream.CreatedAt, stream.Slug) {
			break
		}

		added := 0
		for _, post := range posts {
			if seen[post.PostNumber] {
				continue
			}
			seen[post.PostNumber] = true
			added++
			docs = append(docs, domain.CourseDocument{
				Title:   post.TopicSlug,
				URL:     c.baseURL + post.PostURL,
				Content: stripHTML(post.Cooked),
			})
		}

		if postsCount == 0 {
			postsCount = posts[0].PostsCount
		}
		postNumber = posts[len(posts)-1].PostNumber

		if added == 0 {
			break
		}
		if postsCount > 0 && len(seen) >= postsCount {
			break
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].URL < docs[j].URL })
	return docs, nil
}

func (c *DiscourseClient) inWindow(createdAt, slug string) bool {
	if createdAt != "" {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			day := t.UTC().Truncate(24 * time.Hour)
			if !day.Before(c.startDate) && !day.After(c.endDate) {
				return true
			}
		} else {
			c.logger.Warn("created_at_parse_failed", slog.String("created_at", createdAt))
		}
	}
	return strings.Contains(strings.ToLower(slug), termSlugMarker)
}

func (c *DiscourseClient) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "_forum_session", Value: c.session})
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: "_t", Value: c.token})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// stripHTML flattens cooked post HTML into plain text.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}
