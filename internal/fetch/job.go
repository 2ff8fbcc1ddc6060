package fetch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MaxDescriptionLength caps the job description passed on to generation.
const MaxDescriptionLength = 20000

// JobOptions configures JobDescription.
type JobOptions struct {
	Fetch *Options
	// Renderer is used when the HTTP text is too short. Nil disables the fallback.
	Renderer Renderer
	Logger   *zap.Logger
}

// JobPosting is the text of a job page.
type JobPosting struct {
	URL         string
	Platform    Platform
	Title       string
	Description string
	Rendered    bool
}

// JobDescription fetches a job posting and extracts its description using
// platform-specific selectors, rendering in a browser when needed.
func JobDescription(ctx context.Context, urlStr string, opts JobOptions) (*JobPosting, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := DetectPlatform(urlStr)
	logger.Debug("fetching job posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, err
	}

	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)

	html := result.HTML
	text, err := ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("content extraction failed: %w", err)
	}

	rendered := false
	if opts.Renderer != nil && ShouldUseBrowser(text) {
		logger.Debug("content too short, rendering in browser",
			zap.Int("chars", len(text)), zap.Int("min", MinContentLength))

		browserHTML, browserErr := opts.Renderer(ctx, urlStr)
		if browserErr != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(browserErr))
		} else if browserText, extractErr := ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			html, text, rendered = browserHTML, browserText, true
		}
	}

	if text == "" {
		return nil, &Error{URL: urlStr, Message: "no job description text found"}
	}
	if runes := []rune(text); len(runes) > MaxDescriptionLength {
		text = string(runes[:MaxDescriptionLength])
	}

	return &JobPosting{
		URL:         urlStr,
		Platform:    platform,
		Title:       ExtractTitle(html),
		Description: text,
		Rendered:    rendered,
	}, nil
}
