package core

import (
	"net/url"
	"strings"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
)

// NormalizeURLs trims each URL and checks it is an absolute http(s) URL.
// One bad URL rejects the whole list.
func NormalizeURLs(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errs.Invalid("no URLs submitted")
	}

	out := make([]string, 0, len(raw))
	for _, r := range raw {
		u := strings.TrimSpace(r)
		if u == "" {
			return nil, errs.Invalid("empty URL in request")
		}
		if err := validateURL(u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return &errs.AppError{Kind: errs.InvalidInput, Message: "invalid URL " + raw, Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errs.Invalid("invalid URL %s: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return errs.Invalid("invalid URL %s: missing host", raw)
	}
	return nil
}
