// Package qrcode renders short strings, typically otpauth:// provisioning
// URIs, as PNG QR codes using github.com/skip2/go-qrcode.
//
//	uri, err := qrcode.DataURI(key.URI, 0)
//	// <img src="{{ uri }}">
package qrcode
