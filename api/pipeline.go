package api

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit/dateutil"
	"github.com/citekit/citekit/render"
	"github.com/citekit/citekit/resolver"
)

// State tracks a request through the pipeline. Rendered and Failed are the
// only terminals.
type State int

const (
	Classified State = iota
	Dispatched
	Extracting
	Extracted
	Normalized
	Rendered
	Failed
)

func (s State) String() string {
	switch s {
	case Classified:
		return "classified"
	case Dispatched:
		return "dispatched"
	case Extracting:
		return "extracting"
	case Extracted:
		return "extracted"
	case Normalized:
		return "normalized"
	case Rendered:
		return "rendered"
	}
	return "failed"
}

// Pipeline drives one request from classification to rendered markup. It is
// stateless across requests; the dispatcher and locale are read-only after
// startup.
type Pipeline struct {
	Dispatcher *resolver.Dispatcher
	Locale     render.Locale
}

// Process resolves and renders one request. Errors never escape as panics;
// every outcome maps to a response code.
func (p *Pipeline) Process(ctx context.Context, req Request) Response {
	log := logrus.WithField("input", req.Input)
	step := func(s State) {
		log.WithField("state", s).Debug("pipeline")
	}
	step(Classified)
	step(Dispatched)
	step(Extracting)
	rec, err := p.Dispatcher.Resolve(ctx, req.Input, req.InputType)
	if err != nil {
		step(Failed)
		switch {
		case errors.Is(err, resolver.ErrUnrecognized),
			errors.Is(err, resolver.ErrInvalidIdentifier):
			return Response{Error: CodeUnrecognized}
		case errors.Is(err, resolver.ErrProviderUnavailable):
			log.WithError(err).Warn("pipeline: upstream failure")
			return Response{Error: CodeUnavailable}
		case errors.Is(err, resolver.ErrNotFound), errors.Is(err, resolver.ErrParse):
			log.WithError(err).Info("pipeline: lookup failed")
			return Response{Error: CodeUnrecognized}
		}
		log.WithError(err).Error("pipeline: unexpected failure")
		return Response{Error: CodeUnknown}
	}
	step(Extracted)
	step(Normalized)
	out, err := render.Render(rec, p.Locale, dateutil.ParseFormat(req.DateFormat))
	if err != nil {
		// An invalid kind is a bug in a resolver, not a user error.
		step(Failed)
		log.WithError(err).Error("pipeline: render failed")
		return Response{Error: CodeUnknown}
	}
	step(Rendered)
	return Response{
		ShortForm: out.Sfn,
		Citation:  out.Citation,
		RefTag:    out.RefTag,
		Error:     CodeOK,
	}
}
