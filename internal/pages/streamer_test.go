package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://m.twitch.tv/somestreamer", "somestreamer"},
		{"https://www.twitch.tv/somestreamer/about", "somestreamer"},
		{"https://m.twitch.tv/somestreamer?tt_content=channel", "somestreamer"},
		{"https://m.twitch.tv/", ""},
		{"https://example.com/whatever", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChannelNameFromURL(tt.url), "url: %s", tt.url)
	}
}

func TestScreenshotName(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	assert.Equal(t, "streamer_somestreamer_20250314_150926.png", ScreenshotName("somestreamer", ts))
	assert.Equal(t, "streamer_two_words_20250314_150926.png", ScreenshotName("two words", ts))
}
