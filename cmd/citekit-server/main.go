// HTTP frontend for citation generation. One endpoint, query parameters
// compatible with bookmarklet use:
//
// $ citekit-server -listen :8080
// $ curl 'localhost:8080/en?user_input=10.1038/nrd842&output_format=json'
package main

import (
	"flag"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit"
	"github.com/citekit/citekit/api"
	"github.com/citekit/citekit/config"
	"github.com/citekit/citekit/fetch"
	"github.com/citekit/citekit/render"
	"github.com/citekit/citekit/resolver"
)

var (
	listen      = flag.String("listen", ":5000", "listen address")
	timeout     = flag.Duration("T", 15*time.Second, "per request timeout")
	noCache     = flag.Bool("C", false, "disable the on-disk page cache")
	showVersion = flag.Bool("version", false, "show version")
)

// server holds one pipeline per locale; pipelines are safe for concurrent use.
type server struct {
	pipelines  map[string]*api.Pipeline
	dateFormat string
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	log := logrus.WithField("request_id", id)
	defer func() {
		if v := recover(); v != nil {
			log.WithField("panic", v).Error("recovered")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}()
	locale := strings.Trim(r.URL.Path, "/")
	if locale == "" {
		locale = "en"
	}
	pipeline, ok := s.pipelines[locale]
	if !ok {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	req := api.Request{
		Input:      q.Get("user_input"),
		InputType:  q.Get("input_type"),
		DateFormat: q.Get("dateformat"),
	}
	if req.DateFormat == "" {
		req.DateFormat = s.dateFormat
	}
	started := time.Now()
	resp := pipeline.Process(r.Context(), req)
	log.WithFields(logrus.Fields{
		"input": req.Input,
		"code":  resp.Error,
		"t":     time.Since(started),
	}).Info("handled")
	w.Header().Set("X-Request-ID", id)
	switch q.Get("output_format") {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus(resp.Error))
		b, err := resp.Marshal()
		if err != nil {
			log.WithError(err).Error("marshal failed")
			return
		}
		w.Write(b)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(httpStatus(resp.Error))
		writeHTML(w, resp)
	}
}

func httpStatus(code int) int {
	switch code {
	case api.CodeOK:
		return http.StatusOK
	case api.CodeUnrecognized:
		return http.StatusBadRequest
	case api.CodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeHTML(w http.ResponseWriter, resp api.Response) {
	if resp.Error != api.CodeOK {
		fmt.Fprintf(w, "<p>error %d</p>\n", resp.Error)
		return
	}
	for _, s := range []string{resp.Citation, resp.ShortForm, resp.RefTag} {
		if s == "" {
			continue
		}
		fmt.Fprintf(w, "<pre>%s</pre>\n", html.EscapeString(s))
	}
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(citekit.Version)
		return
	}
	cfg := config.Default()
	cfg.Timeout = *timeout
	client := fetch.New(cfg)
	if !*noCache {
		if _, err := client.WithCache(cfg.CacheDir, cfg.CacheTTL); err != nil {
			logrus.WithError(err).Warn("page cache disabled")
		}
	}
	dispatcher := resolver.NewDefaultDispatcher(client)
	dispatcher.SetNCBIIdentity(cfg.NcbiTool, cfg.NcbiEmail)
	dispatcher.MergeNetloc(cfg.Netloc)
	srv := &server{
		pipelines: map[string]*api.Pipeline{
			"en": {Dispatcher: dispatcher, Locale: render.English},
			"fa": {Dispatcher: dispatcher, Locale: render.Persian},
		},
		dateFormat: cfg.DateFormat,
	}
	logrus.WithField("listen", *listen).Info("starting")
	if err := http.ListenAndServe(*listen, srv); err != nil {
		logrus.Fatal(err)
	}
}
