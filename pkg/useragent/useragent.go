package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Device types.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

const unknown = "Unknown"

// UserAgent is the subset of a parsed User-Agent header needed to label a
// device for its owner.
type UserAgent struct {
	Browser        string
	BrowserVersion string
	OS             string
	DeviceType     string
}

// Name returns a short human label such as "Chrome on macOS".
func (ua UserAgent) Name() string {
	switch {
	case ua.Browser != unknown && ua.OS != unknown:
		return ua.Browser + " on " + ua.OS
	case ua.Browser != unknown:
		return ua.Browser
	case ua.OS != unknown:
		return cases.Title(language.English).String(ua.DeviceType) + " (" + ua.OS + ")"
	default:
		return "Unknown device"
	}
}

type rule struct {
	name    string
	pattern *regexp.Regexp
}

// Order matters: Edge and Opera carry "Chrome", Chrome carries "Safari".
var browserRules = []rule{
	{"Edge", regexp.MustCompile(`(?:Edg|Edge|EdgA|EdgiOS)/([\d.]+)`)},
	{"Opera", regexp.MustCompile(`(?:OPR|Opera)/([\d.]+)`)},
	{"Samsung Internet", regexp.MustCompile(`SamsungBrowser/([\d.]+)`)},
	{"Firefox", regexp.MustCompile(`(?:Firefox|FxiOS)/([\d.]+)`)},
	{"Chrome", regexp.MustCompile(`(?:Chrome|CriOS)/([\d.]+)`)},
	{"Safari", regexp.MustCompile(`Version/([\d.]+).*Safari/`)},
}

var osRules = []struct {
	name   string
	needle string
}{
	{"iOS", "iPhone"},
	{"iPadOS", "iPad"},
	{"Android", "Android"},
	{"Windows", "Windows"},
	{"ChromeOS", "CrOS"},
	{"macOS", "Macintosh"},
	{"Linux", "Linux"},
}

var botPattern = regexp.MustCompile(`(?i)bot|crawler|spider|slurp|curl/|wget/|python-requests|headless`)

// Parse extracts browser, OS and device type. Unrecognised parts are "Unknown".
func Parse(ua string) UserAgent {
	ua = strings.TrimSpace(ua)
	res := UserAgent{Browser: unknown, OS: unknown, DeviceType: DeviceUnknown}
	if ua == "" {
		return res
	}

	for _, r := range browserRules {
		if m := r.pattern.FindStringSubmatch(ua); m != nil {
			res.Browser = r.name
			res.BrowserVersion = m[1]
			break
		}
	}

	for _, r := range osRules {
		if strings.Contains(ua, r.needle) {
			res.OS = r.name
			break
		}
	}

	res.DeviceType = deviceType(ua, res.OS)
	return res
}

func deviceType(ua, os string) string {
	switch {
	case botPattern.MatchString(ua):
		return DeviceBot
	case os == "iPadOS", strings.Contains(ua, "Tablet"),
		os == "Android" && !strings.Contains(ua, "Mobile"):
		return DeviceTablet
	case os == "iOS", strings.Contains(ua, "Mobile"):
		return DeviceMobile
	case os != unknown:
		return DeviceDesktop
	default:
		return DeviceUnknown
	}
}
