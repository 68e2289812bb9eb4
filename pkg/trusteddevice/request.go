package trusteddevice

import (
	"net/http"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/clientip"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/fingerprint"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/useragent"
)

// InfoFromRequest labels the calling device from its User-Agent and address.
func InfoFromRequest(r *http.Request) Info {
	ua := useragent.Parse(r.UserAgent())
	return Info{
		Name:      ua.Name(),
		Browser:   ua.Browser,
		OS:        ua.OS,
		IPAddress: clientip.FromRequest(r),
	}
}

// FingerprintFromRequest returns the fingerprint used to look the device up.
func FingerprintFromRequest(r *http.Request) string {
	return fingerprint.FromRequest(r)
}
