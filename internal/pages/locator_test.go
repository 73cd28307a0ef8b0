package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClickScriptCSS(t *testing.T) {
	loc := Locator{Name: "spinner", By: CSS, Expr: `[data-a-target="loading-spinner"]`}

	script := loc.clickScript()
	assert.Contains(t, script, "document.querySelector")
	assert.Contains(t, script, `loading-spinner`)
	assert.NotContains(t, script, "document.evaluate")
}

func TestClickScriptXPath(t *testing.T) {
	loc := Locator{Name: "browse", By: XPath, Expr: `//div[normalize-space()='Browse']`}

	script := loc.clickScript()
	assert.Contains(t, script, "document.evaluate")
	assert.Contains(t, script, "FIRST_ORDERED_NODE_TYPE")
	assert.Contains(t, script, `Browse`)
	assert.NotContains(t, script, "querySelector")
}

func TestLocatorString(t *testing.T) {
	loc := Locator{Name: "search input", By: CSS, Expr: `input[type="search"]`}
	assert.Equal(t, `search input (input[type="search"])`, loc.String())
}

func TestSelectorsAreComplete(t *testing.T) {
	all := []Locator{
		BrowseButton, ConsentBanner, AppUpsellKeepWeb,
		SearchInput, ChannelsHeading, ChannelCards, LoadingSpinner,
		VideoPlayer, ChatWelcome, StreamTitle,
		MatureGateButton, CloseModalButton, Overlay, BufferingIndicator,
	}

	for _, loc := range all {
		assert.NotEmpty(t, loc.Name, "locator missing name: %q", loc.Expr)
		assert.NotEmpty(t, loc.Expr, "locator missing expression: %s", loc.Name)
	}
}

func TestBrowseButtonHasAlternate(t *testing.T) {
	assert.NotNil(t, BrowseButton.Alt)
	assert.Equal(t, CSS, BrowseButton.Alt.By)
	assert.NotEmpty(t, BrowseButton.Alt.Expr)
}
