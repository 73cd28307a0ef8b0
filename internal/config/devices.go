package config

import "sort"

// DeviceProfile describes a mobile device for Chrome emulation
type DeviceProfile struct {
	Name       string
	Width      int64
	Height     int64
	PixelRatio float64
	UserAgent  string
}

// DefaultDevice is used when a requested device name is unknown
const DefaultDevice = "Pixel 5"

// devices holds the supported mobile emulation profiles
var devices = map[string]DeviceProfile{
	"Pixel 5": {
		Name:       "Pixel 5",
		Width:      393,
		Height:     851,
		PixelRatio: 2.75,
		UserAgent:  "Mozilla/5.0 (Linux; Android 11; Pixel 5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36",
	},
	"iPhone 12": {
		Name:       "iPhone 12",
		Width:      390,
		Height:     844,
		PixelRatio: 3,
		UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
	},
	"iPhone 14 Pro Max": {
		Name:       "iPhone 14 Pro Max",
		Width:      430,
		Height:     932,
		PixelRatio: 3,
		UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
	},
	"Samsung Galaxy S21": {
		Name:       "Samsung Galaxy S21",
		Width:      360,
		Height:     800,
		PixelRatio: 3,
		UserAgent:  "Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36",
	},
}

// Device returns the profile for the given name, falling back to the
// default profile when the name is unknown.
func Device(name string) DeviceProfile {
	if d, ok := devices[name]; ok {
		return d
	}
	return devices[DefaultDevice]
}

// KnownDevice reports whether a profile exists for the given name
func KnownDevice(name string) bool {
	_, ok := devices[name]
	return ok
}

// DeviceNames returns the names of all supported devices, sorted
func DeviceNames() []string {
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
