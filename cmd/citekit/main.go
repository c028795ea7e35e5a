// CLI to turn a URL, DOI or ISBN into citation markup.
//
// $ citekit -l fa 9789642913701
// $ citekit https://www.nytimes.com/2017/01/04/us/politics/...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit"
	"github.com/citekit/citekit/api"
	"github.com/citekit/citekit/config"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/render"
	"github.com/citekit/citekit/resolver"
)

var (
	locale      = flag.String("l", "en", "citation language (en, fa)")
	inputType   = flag.String("t", "", "input type (pmid, pmcid, oclc); default is autodetect")
	dateFormat  = flag.String("d", "", "access date format (%Y-%m-%d, %B %d, %Y, %d %B %Y)")
	timeout     = flag.Duration("T", 15*time.Second, "per request timeout")
	noCache     = flag.Bool("C", false, "disable the on-disk page cache")
	parallel    = flag.Bool("p", false, "query ISBN providers in parallel")
	asJSON      = flag.Bool("json", false, "emit the raw response as JSON")
	verbose     = flag.Bool("verbose", false, "debug output")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(citekit.Version)
		os.Exit(0)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if flag.NArg() != 1 {
		logrus.Fatal("usage: citekit [-l en|fa] [-t TYPE] INPUT")
	}
	loc := render.ParseLocale(*locale)
	cfg := config.Default()
	cfg.Locale = loc
	cfg.Timeout = *timeout
	if *dateFormat != "" {
		cfg.DateFormat = *dateFormat
	}
	client := fetch.New(cfg)
	if !*noCache {
		if _, err := client.WithCache(cfg.CacheDir, cfg.CacheTTL); err != nil {
			logrus.WithError(err).Warn("page cache disabled")
		}
	}
	dispatcher := resolver.NewDefaultDispatcher(client)
	dispatcher.SetNCBIIdentity(cfg.NcbiTool, cfg.NcbiEmail)
	dispatcher.MergeNetloc(cfg.Netloc)
	if *parallel {
		if r, ok := dispatcher.ISBN.(*resolver.IsbnResolver); ok {
			r.Concurrent = true
		}
	}
	pipeline := &api.Pipeline{
		Dispatcher: dispatcher,
		Locale:     loc,
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	resp := pipeline.Process(ctx, api.Request{
		Input:      flag.Arg(0),
		InputType:  *inputType,
		DateFormat: cfg.DateFormat,
	})
	if *asJSON {
		b, err := resp.Marshal()
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Println(string(b))
		return
	}
	switch resp.Error {
	case api.CodeOK:
		fmt.Println(resp.Citation)
		fmt.Println()
		fmt.Println(resp.ShortForm)
		if resp.RefTag != "" {
			fmt.Println()
			fmt.Println(resp.RefTag)
		}
	case api.CodeUnrecognized:
		logrus.Fatal("input not recognized as URL, DOI or ISBN")
	case api.CodeUnavailable:
		logrus.Fatal("upstream service unavailable, try again later")
	default:
		logrus.Fatal("internal error")
	}
}
