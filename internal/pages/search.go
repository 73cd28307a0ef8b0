package pages

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// SearchPage drives the directory page and its search results.
type SearchPage struct {
	*Page
}

// NewSearchPage creates the search results page object.
func NewSearchPage(p *Page) *SearchPage {
	return &SearchPage{Page: p}
}

// Search types the query into the directory search input and submits it
// with Enter, which mobile Twitch requires.
func (s *SearchPage) Search(query string) error {
	s.log.Info("searching", zap.String("query", query))

	if err := s.SendKeys(SearchInput, query, true); err != nil {
		return err
	}
	if err := s.PressEnter(SearchInput); err != nil {
		return err
	}

	time.Sleep(2 * time.Second) // results populate asynchronously
	return nil
}

// WaitForResults waits for the loading spinner to clear and the Channels
// section to render. Failure to verify is logged, not fatal: the
// subsequent channel selection is the authoritative check.
func (s *SearchPage) WaitForResults(timeout time.Duration) {
	s.log.Info("waiting for search results")

	if s.IsVisible(LoadingSpinner, time.Second) {
		s.WaitGone(LoadingSpinner, timeout)
	}

	if err := s.Find(ChannelsHeading, timeout); err != nil {
		s.log.Warn("could not verify results loaded", zap.Error(err))
		return
	}
	time.Sleep(2 * time.Second) // dynamic content settles
}

// ScrollTimes scrolls the results down the given number of viewports,
// pausing between scrolls so new cards can load.
func (s *SearchPage) ScrollTimes(times int) error {
	s.log.Info("scrolling results", zap.Int("times", times))
	for i := 0; i < times; i++ {
		if err := s.ScrollDown(0); err != nil {
			return err
		}
		time.Sleep(1500 * time.Millisecond)
	}
	return nil
}

// SelectRandomChannel picks one channel card from the Channels section at
// random, scrolls it into view and clicks it. Returns an error when the
// section has no cards.
func (s *SearchPage) SelectRandomChannel(rnd *rand.Rand) error {
	s.log.Info("selecting a random channel")
	s.WaitForResults(10 * time.Second)

	var nodes []*cdp.Node
	err := s.sess.Run(s.cfg.ExplicitWait(),
		chromedp.Nodes(ChannelCards.Expr, &nodes, ChannelCards.opt()),
	)
	if err != nil {
		return fmt.Errorf("failed to collect channel cards: %w", err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no channel cards found in results")
	}

	node := nodes[rnd.Intn(len(nodes))]
	s.log.Info("channel card chosen", zap.Int("candidates", len(nodes)))

	if err := s.ScrollIntoView(node); err != nil {
		return err
	}

	err = s.sess.Run(s.cfg.ExplicitWait(),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.MouseClickNode(node),
	)
	if err != nil {
		return fmt.Errorf("failed to click channel card: %w", err)
	}

	time.Sleep(2 * time.Second) // navigation to the streamer page
	return nil
}
