// Command fingerprint opens bot.sannysoft.com in a browser using the same
// options as the suite, allowing you to audit the browser fingerprint the
// tests present to Twitch.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/chromedp/chromedp"

	browseropts "github.com/streamqa/twitchsmoke/internal/browser"
	"github.com/streamqa/twitchsmoke/internal/config"
)

func main() {
	log.Println("Opening bot.sannysoft.com with suite browser options...")
	log.Println("Close the browser window when done inspecting.")

	cfg := config.Default()
	cfg.Browser.Headless = false // non-headless so you can see it
	dev := config.Device(cfg.Browser.DeviceName)

	opts := browseropts.Options(cfg, dev)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate("https://bot.sannysoft.com"),
		chromedp.WaitVisible("body", chromedp.ByQuery),
	)
	if err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	fmt.Println("Press Enter to close the browser...")
	fmt.Scanln()

	log.Println("Done.")
}
