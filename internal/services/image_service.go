package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	travelTerms = []string{"skyline", "city", "landmark", "architecture", "street", "cityscape",
		"landscape", "view", "tower", "cathedral", "temple", "beach", "old town", "bridge", "aerial"}
	excludedTerms = []string{"portrait", "portraits", "person", "people", "man", "men", "woman", "women",
		"girl", "boy", "selfie", "model", "face", "faces", "wedding", "couple"}
)

type ImageServiceInterface interface {
	// DestinationImage returns a cover photo URL, or nil when none could be found.
	DestinationImage(ctx context.Context, city, country string) *string
}

type UnsplashImageService struct {
	HTTP      *http.Client
	AccessKey string
	BaseURL   string
	logger    *zap.Logger
}

func NewUnsplashImageService(accessKey, baseURL string, timeout time.Duration, logger *zap.Logger) *UnsplashImageService {
	return &UnsplashImageService{
		HTTP:      newProviderHTTPClient(timeout),
		AccessKey: accessKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger.Named("images"),
	}
}

type unsplashPhoto struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Full    string `json:"full"`
	} `json:"urls"`
	Tags []unsplashTag `json:"tags"`
}

type unsplashTag struct {
	Title string `json:"title"`
}

func (p unsplashPhoto) text() string {
	tags := lo.Map(p.Tags, func(t unsplashTag, _ int) string { return t.Title })
	return strings.ToLower(p.Description + " " + p.AltDescription + " " + strings.Join(tags, " "))
}

type unsplashSearchResponse struct {
	Results []unsplashPhoto `json:"results"`
}

func imageQueries(city, country string) []string {
	queries := []string{
		strings.TrimSpace(city + " " + country + " skyline"),
		city + " landmark",
		city + " travel",
		city,
	}
	return lo.Uniq(lo.Filter(queries, func(q string, _ int) bool { return strings.TrimSpace(q) != "" }))
}

func (s *UnsplashImageService) DestinationImage(ctx context.Context, city, country string) *string {
	if strings.TrimSpace(city) == "" {
		return nil
	}
	for _, query := range imageQueries(city, country) {
		photos, err := s.search(ctx, query)
		if err != nil {
			s.logger.Warn("image search failed", zap.String("query", query), zap.Error(err))
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		if u := pickDestinationPhoto(photos); u != "" {
			return &u
		}
	}
	return nil
}

func (s *UnsplashImageService) search(ctx context.Context, query string) ([]unsplashPhoto, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "10")
	q.Set("orientation", "landscape")
	q.Set("content_filter", "high")

	header := http.Header{"Authorization": []string{"Client-ID " + s.AccessKey}}
	var payload unsplashSearchResponse
	if err := getJSON(ctx, s.HTTP, "unsplash", s.BaseURL+"/search/photos?"+q.Encode(), header, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// pickDestinationPhoto skips people shots and prefers photos described with travel terms.
func pickDestinationPhoto(photos []unsplashPhoto) string {
	usable := lo.Filter(photos, func(p unsplashPhoto, _ int) bool {
		if p.URLs.Regular == "" {
			return false
		}
		return !mentionsAny(p.text(), excludedTerms)
	})
	if len(usable) == 0 {
		return ""
	}
	if best, ok := lo.Find(usable, func(p unsplashPhoto) bool {
		return mentionsAny(p.text(), travelTerms)
	}); ok {
		return best.URLs.Regular
	}
	return usable[0].URLs.Regular
}

// mentionsAny matches whole words only, so "face" does not hit "surface". Terms may span words.
func mentionsAny(text string, terms []string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	padded := " " + strings.Join(words, " ") + " "
	return lo.SomeBy(terms, func(term string) bool { return strings.Contains(padded, " "+term+" ") })
}
