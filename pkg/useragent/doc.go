// Package useragent turns a User-Agent header into the browser, operating
// system and device type shown next to a trusted device, for example
// "Firefox on Windows".
//
// Detection is a short list of ordered patterns covering mainstream
// browsers; it is meant for labels, not for feature detection.
package useragent
