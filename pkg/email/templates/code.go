package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

type OneTimeCodeData struct {
	Product   string
	Intro     string
	Code      string
	ExpiresIn time.Duration
}

// OneTimeCode is the body of a code email. All text is HTML-escaped.
func OneTimeCode(d OneTimeCodeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html><body style="font-family:sans-serif;color:#111">
<h2>%s</h2>
<p>%s</p>
<p style="font-size:28px;letter-spacing:6px;font-family:monospace"><strong>%s</strong></p>
<p style="color:#666">This code expires in %s. If you did not request it, you can ignore this email.</p>
</body></html>`,
			templ.EscapeString(d.Product),
			templ.EscapeString(d.Intro),
			templ.EscapeString(d.Code),
			templ.EscapeString(humanDuration(d.ExpiresIn)),
		)
		return err
	})
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a few minutes"
	case d%time.Hour == 0 && d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
