package pages

// Twitch mobile web DOM locators
// These are isolated here because Twitch changes their DOM frequently
// Update these when the flow breaks

var (
	// Home page
	BrowseButton = Locator{
		Name: "browse button",
		By:   XPath,
		Expr: `//div[contains(@class,'CoreText-sc') and normalize-space()='Browse']`,
		Alt: &Locator{
			Name: "browse link",
			By:   CSS,
			Expr: `a[href="/directory"]`,
		},
	}
	ConsentBanner = Locator{
		Name: "consent banner",
		By:   XPath,
		Expr: `//button[contains(text(), 'Accept') or contains(text(), 'Reject') or contains(@class, 'consent')]`,
	}
	AppUpsellKeepWeb = Locator{
		Name: "keep using web button",
		By:   XPath,
		Expr: `//button[.//p[contains(normalize-space(), 'Keep using web')]]`,
	}

	// Directory / search results page
	SearchInput = Locator{
		Name: "directory search input",
		By:   CSS,
		Expr: `input[type="search"][placeholder="Search"]`,
	}
	ChannelsHeading = Locator{
		Name: "channels heading",
		By:   XPath,
		Expr: `//h2[normalize-space()='Channels']`,
	}
	ChannelCards = Locator{
		Name: "channel cards",
		By:   XPath,
		Expr: `//h2[normalize-space()='Channels']/ancestor::section//div[contains(@class,'doaFqY')]/*[self::a or self::button]`,
	}
	LoadingSpinner = Locator{
		Name: "loading spinner",
		By:   CSS,
		Expr: `[data-a-target="loading-spinner"]`,
	}

	// Streamer page
	VideoPlayer = Locator{
		Name: "video player",
		By:   CSS,
		Expr: `div[data-a-target="video-player"]`,
	}
	ChatWelcome = Locator{
		Name: "chat welcome message",
		By:   CSS,
		Expr: `div[data-a-target="chat-welcome-message"]`,
	}
	StreamTitle = Locator{
		Name: "stream title",
		By:   CSS,
		Expr: `h2[data-a-target="stream-title"]`,
	}

	// Modals and overlays
	MatureGateButton = Locator{
		Name: "mature content gate",
		By:   XPath,
		Expr: `//button[contains(text(), 'Start Watching') or contains(text(), 'Yes') or contains(text(), 'Continue')]`,
	}
	CloseModalButton = Locator{
		Name: "modal close button",
		By:   XPath,
		Expr: `//button[@aria-label='Close' or contains(@class, 'close')]`,
	}
	Overlay = Locator{
		Name: "blocking overlay",
		By:   CSS,
		Expr: `[class*="overlay"], [class*="Overlay"]`,
	}
	BufferingIndicator = Locator{
		Name: "buffering indicator",
		By:   XPath,
		Expr: `//div[contains(@class, 'buffering') or contains(text(), 'buffering')]`,
	}
)
