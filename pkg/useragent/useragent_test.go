package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/useragent"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ua      string
		browser string
		version string
		os      string
		device  string
		label   string
	}{
		{
			name:    "chrome on mac",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			browser: "Chrome", version: "126.0.0.0", os: "macOS", device: useragent.DeviceDesktop,
			label: "Chrome on macOS",
		},
		{
			name:    "edge on windows",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.2592.68",
			browser: "Edge", version: "126.0.2592.68", os: "Windows", device: useragent.DeviceDesktop,
			label: "Edge on Windows",
		},
		{
			name:    "firefox on linux",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			browser: "Firefox", version: "127.0", os: "Linux", device: useragent.DeviceDesktop,
			label: "Firefox on Linux",
		},
		{
			name:    "safari on iphone",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1",
			browser: "Safari", version: "17.5", os: "iOS", device: useragent.DeviceMobile,
			label: "Safari on iOS",
		},
		{
			name:    "chrome on android phone",
			ua:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36",
			browser: "Chrome", version: "126.0.0.0", os: "Android", device: useragent.DeviceMobile,
			label: "Chrome on Android",
		},
		{
			name:    "android tablet",
			ua:      "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			browser: "Chrome", version: "126.0.0.0", os: "Android", device: useragent.DeviceTablet,
			label: "Chrome on Android",
		},
		{
			name:    "bot",
			ua:      "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			browser: "Unknown", os: "Unknown", device: useragent.DeviceBot,
			label: "Unknown device",
		},
		{
			name:    "empty",
			ua:      "",
			browser: "Unknown", os: "Unknown", device: useragent.DeviceUnknown,
			label: "Unknown device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := useragent.Parse(tt.ua)
			assert.Equal(t, tt.browser, got.Browser)
			assert.Equal(t, tt.version, got.BrowserVersion)
			assert.Equal(t, tt.os, got.OS)
			assert.Equal(t, tt.device, got.DeviceType)
			assert.Equal(t, tt.label, got.Name())
		})
	}
}

func TestName_OSOnly(t *testing.T) {
	t.Parallel()
	ua := useragent.UserAgent{Browser: "Unknown", OS: "Linux", DeviceType: useragent.DeviceDesktop}
	assert.Equal(t, "Desktop (Linux)", ua.Name())
}
