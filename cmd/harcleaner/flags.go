package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/sophialabs/harcleaner/internal/app"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

// listFlags collects the comma-separated flag values before they are split.
type listFlags struct {
	includeTypes, excludeTypes     string
	includeURL, excludeURL         string
	includeMethods, excludeMethods string
	includeStatus, excludeStatus   string
	includeHeaders, excludeHeaders string
	includeCookies, excludeCookies string
	excludeContentTypes            string
}

func parseFlags(args []string, stderr io.Writer) (app.Config, error) {
	cfg := app.DefaultConfig()
	p := &cfg.Profile
	var lists listFlags

	fs := flag.NewFlagSet("harcleaner", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Input, "i", "", "input HAR file")
	fs.StringVar(&cfg.Input, "input", "", "input HAR file")
	fs.StringVar(&cfg.Output, "o", "", "output file")
	fs.StringVar(&cfg.Output, "output", "", "output file")
	fs.StringVar(&cfg.OutputType, "output-type", cfg.OutputType, "output format (har, ml-ingest)")
	fs.StringVar(&cfg.ProfileFile, "profile", "", "YAML filter profile; flags override its values")

	fs.StringVar(&lists.includeTypes, "include-types", "", "comma-separated request types to keep (js, css, json, png...)")
	fs.StringVar(&lists.excludeTypes, "exclude-types", "", "comma-separated request types to drop")
	fs.BoolVar(&p.Methods.XHROnly, "xhr-only", false, "keep only XHR/fetch requests")
	fs.StringVar(&lists.includeMethods, "include-methods", "", "comma-separated HTTP methods to keep")
	fs.StringVar(&lists.excludeMethods, "exclude-methods", "", "comma-separated HTTP methods to drop")
	fs.StringVar(&lists.includeURL, "include-url", "", "comma-separated URL patterns to keep")
	fs.StringVar(&lists.excludeURL, "exclude-url", "", "comma-separated URL patterns to drop")
	fs.StringVar(&lists.includeStatus, "include-status", "", "comma-separated status codes to keep")
	fs.StringVar(&lists.excludeStatus, "exclude-status", "", "comma-separated status codes to drop")
	fs.Func("min-size", "minimum response size in bytes", int64Flag(&p.Size.Min))
	fs.Func("max-size", "maximum response size in bytes", int64Flag(&p.Size.Max))

	fs.StringVar(&lists.includeHeaders, "include-headers", "", "comma-separated header names to keep")
	fs.StringVar(&lists.excludeHeaders, "exclude-headers", "", "comma-separated header names to drop")
	fs.StringVar(&lists.includeCookies, "include-cookies", "", "comma-separated cookie names to keep")
	fs.StringVar(&lists.excludeCookies, "exclude-cookies", "", "comma-separated cookie names to drop")

	fs.BoolVar(&p.Privacy.RemoveCookies, "remove-cookies", false, "remove all cookies")
	fs.BoolVar(&p.Privacy.RemoveAuthTokens, "remove-auth", false, "remove authentication headers")
	fs.BoolVar(&p.Privacy.RemovePersonalIdentifiers, "remove-personal", false, "remove identity headers and redact sensitive query parameters")
	fs.BoolVar(&p.Privacy.RemoveTrackingHeaders, "remove-tracking", false, "remove tracking and analytics headers")

	fs.BoolVar(&p.Content.RemoveResponse, "remove-response-content", false, "remove response bodies")
	fs.BoolVar(&p.Content.RemoveRequest, "remove-request-content", false, "remove request bodies")
	fs.BoolVar(&p.Content.RemoveBase64, "remove-base64", false, "replace base64-looking bodies with a placeholder")
	fs.Func("max-content-size", "replace bodies larger than this many characters", int64Flag(&p.Content.MaxSize))
	fs.StringVar(&lists.excludeContentTypes, "exclude-content-types", "", "comma-separated MIME types whose bodies are removed")

	fs.BoolVar(&p.Vendor.All, "remove-chrome-data", false, "strip browser-specific metadata")
	fs.StringVar(&p.Expression, "expression", "", "boolean expression an entry must satisfy to be kept")

	fs.BoolVar(&cfg.Verbose, "v", false, "list excluded entries in the report")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "list excluded entries in the report")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "report without writing output")
	fs.BoolVar(&cfg.Watch, "watch", false, "re-clean whenever the input or profile file changes")
	fs.DurationVar(&cfg.WatcherDebounce, "watch-debounce", cfg.WatcherDebounce, "delay before re-cleaning after a change")
	fs.StringVar(&cfg.ReportTemplate, "report-template", cfg.ReportTemplate, "report template: text, markdown or a template file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	p.Types = profile.IncludeExclude{Include: profile.ParseList(lists.includeTypes), Exclude: profile.ParseList(lists.excludeTypes)}
	p.Methods.IncludeExclude = profile.IncludeExclude{Include: profile.ParseList(lists.includeMethods), Exclude: profile.ParseList(lists.excludeMethods)}
	p.URLs = profile.IncludeExclude{Include: profile.ParseList(lists.includeURL), Exclude: profile.ParseList(lists.excludeURL)}
	p.Headers = profile.IncludeExclude{Include: profile.ParseList(lists.includeHeaders), Exclude: profile.ParseList(lists.excludeHeaders)}
	p.Cookies = profile.IncludeExclude{Include: profile.ParseList(lists.includeCookies), Exclude: profile.ParseList(lists.excludeCookies)}
	p.Status = profile.StatusCodes{Include: profile.ParseIntList(lists.includeStatus), Exclude: profile.ParseIntList(lists.excludeStatus)}
	p.Content.ExcludeTypes = profile.ParseList(lists.excludeContentTypes)

	return cfg, nil
}

func int64Flag(dst **int64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*dst = &v
		return nil
	}
}
