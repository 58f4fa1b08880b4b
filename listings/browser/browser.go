package browser

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"realestate-agent/config"
	"realestate-agent/listings"
	"realestate-agent/services"
	"realestate-agent/utils"
)

const platform = "browser"

// Scraper is a headless-Chrome listings provider. It drives templated
// search-result pages directly instead of going through the extraction
// service, and returns the same raw record shape the mapper already handles.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.URLSet
	retry   *utils.RetryConfig
}

// New creates a ready-to-use browser Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

type cardData struct {
	Address      string `json:"address"`
	Price        string `json:"price"`
	Beds         string `json:"beds"`
	Baths        string `json:"baths"`
	Sqft         string `json:"sqft"`
	PropertyType string `json:"propertyType"`
	URL          string `json:"url"`
}

// Search scrapes search-result pages for the query's location and returns
// raw records. Card fields stay as scraped text; the mapper owns cleaning.
func (s *Scraper) Search(ctx context.Context, q listings.Query) ([]map[string]any, error) {
	slug := services.LocationSlug(q.City, q.State)
	searchURL := fmt.Sprintf("https://www.realtor.com/realestateandhomes-search/%s", slug)

	s.logger.Info("[browser] Starting scrape — location: %s, target: %d pages", q.Location, s.cfg.PagesToScrape)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin := s.chromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var (
		mu      sync.Mutex
		records []map[string]any
	)

	currentURL := searchURL
	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		cards, nextURL, err := s.scrapePage(silentCtx, currentURL, page)
		if err != nil {
			s.logger.Error("[browser] Page %d failed: %v", page, err)
			break
		}
		if len(cards) == 0 {
			s.logger.Warn("[browser] Page %d returned 0 cards — stopping", page)
			break
		}

		for _, c := range cards {
			card := c
			if card.URL == "" || !s.visited.Add(card.URL) {
				continue
			}
			s.pool.Submit(func() {
				rec := map[string]any{
					"building_name": card.Address,
					"property_type": card.PropertyType,
					"address":       card.Address,
					"price":         card.Price,
					"description": fmt.Sprintf("%s beds, %s baths, %s sqft",
						card.Beds, card.Baths, card.Sqft),
					"square_feet": card.Sqft,
					"bedrooms":    card.Beds,
					"bathrooms":   card.Baths,
					"source":      platform,
					"url":         card.URL,
				}
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			})
		}
		s.pool.Wait()

		if nextURL == "" {
			break
		}
		currentURL = nextURL
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	s.logger.Info("[browser] Scrape complete — %d raw records", len(records))
	return records, nil
}

// Trends is not offered by direct page scraping.
func (s *Scraper) Trends(ctx context.Context, q listings.Query) ([]map[string]any, error) {
	return nil, fmt.Errorf("browser: market trends not supported by this provider")
}

func (s *Scraper) scrapePage(allocCtx context.Context, pageURL string, pageNum int) ([]cardData, string, error) {
	var cards []cardData
	var nextURL string

	err := s.retry.Do(fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var pageCards []cardData
		var pageNext string

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(`
				(function() {
					var results = [];
					var limit = `+fmt.Sprintf("%d", s.cfg.ListingsPerPage)+`;

					var cardSelectors = [
						'[data-testid="property-card"]',
						'div[data-testid="card-content"]',
						'li[data-testid="result-card"]'
					];
					var cards = [];
					for (var si = 0; si < cardSelectors.length; si++) {
						cards = document.querySelectorAll(cardSelectors[si]);
						if (cards.length > 0) break;
					}

					function textOf(card, selectors) {
						for (var i = 0; i < selectors.length; i++) {
							var el = card.querySelector(selectors[i]);
							if (el && el.innerText) return el.innerText.trim();
						}
						return '';
					}

					var seen = {};
					for (var i = 0; i < cards.length && results.length < limit; i++) {
						var card = cards[i];
						var linkEl = card.querySelector('a[href*="/realestateandhomes-detail/"]') ||
						             card.querySelector('a[href]');
						var url = linkEl ? linkEl.href : '';
						if (!url || seen[url]) continue;
						seen[url] = true;

						results.push({
							address: textOf(card, ['[data-testid="card-address"]', '[data-label="pc-address"]']),
							price:   textOf(card, ['[data-testid="card-price"]', '[data-label="pc-price"]', 'span[class*="price"]']),
							beds:    textOf(card, ['[data-testid="property-meta-beds"]', 'li[data-label="pc-meta-beds"]']),
							baths:   textOf(card, ['[data-testid="property-meta-baths"]', 'li[data-label="pc-meta-baths"]']),
							sqft:    textOf(card, ['[data-testid="property-meta-sqft"]', 'li[data-label="pc-meta-sqft"]']),
							propertyType: textOf(card, ['[data-testid="card-property-type"]']),
							url: url
						});
					}
					return results;
				})()
			`, &pageCards),

			chromedp.Evaluate(`
				(function() {
					var next = document.querySelector('a[aria-label="Go to next page"]') ||
					           document.querySelector('a[rel="next"]');
					return next && next.href ? next.href : '';
				})()
			`, &pageNext),
		)
		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		cards = pageCards
		nextURL = pageNext
		return nil
	})

	s.logger.Debug("[browser] Page %d — found %d cards", pageNum, len(cards))
	return cards, nextURL, err
}

func (s *Scraper) chromeBinary() string {
	if s.cfg.ChromeBin != "" {
		return s.cfg.ChromeBin
	}
	for _, candidate := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
