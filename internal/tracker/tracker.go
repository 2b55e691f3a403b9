// Package tracker is the application service tying the pipeline together:
// file decoding, field extraction, persistence, JD analysis, and match
// scoring. The CLI and the HTTP server are both thin layers over this
// package.
package tracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"talentsift/internal/errors"
	"talentsift/internal/extract"
	"talentsift/internal/jd"
	"talentsift/internal/lexicon"
	"talentsift/internal/match"
	"talentsift/internal/store"
	"talentsift/internal/textextract"
	"talentsift/internal/types"
)

// Service coordinates the resume pipeline over a shared lexicon.
type Service struct {
	lex       *lexicon.Lexicon
	extractor *extract.Extractor
	analyzer  *jd.Analyzer
	scorer    *match.Scorer
	text      *textextract.Service
	store     *store.Store
	logger    *errors.Logger
}

// New wires a service over the given lexicon and store.
func New(lex *lexicon.Lexicon, st *store.Store, logger *errors.Logger) *Service {
	ex := extract.New(lex)
	return &Service{
		lex:       lex,
		extractor: ex,
		analyzer:  jd.NewAnalyzer(lex, ex),
		scorer:    match.NewScorer(lex),
		text:      textextract.NewService(logger),
		store:     st,
		logger:    logger,
	}
}

// WithLexicon returns a new service over the given lexicon, sharing the
// store and logger. Used for lexicon hot reload: the old service keeps
// serving until the swap.
func (s *Service) WithLexicon(lex *lexicon.Lexicon) *Service {
	return New(lex, s.store, s.logger)
}

// Extractor exposes the underlying field extractor, for callers that
// parse without persisting.
func (s *Service) Extractor() *extract.Extractor {
	return s.extractor
}

// Analyzer exposes the JD analyzer.
func (s *Service) Analyzer() *jd.Analyzer {
	return s.analyzer
}

// Scorer exposes the match scorer.
func (s *Service) Scorer() *match.Scorer {
	return s.scorer
}

// ParseBytes decodes and parses a single in-memory file without storing
// the result.
func (s *Service) ParseBytes(data []byte, fileName string) (types.Candidate, error) {
	text, err := s.text.Extract(data, fileName)
	if err != nil {
		return types.Candidate{}, err
	}
	if strings.TrimSpace(text) == "" {
		return types.Candidate{}, errors.NewParseError(errors.ErrCodeEmptyExtraction,
			fmt.Sprintf("No text could be extracted from %s", fileName), nil)
	}
	return s.extractor.Parse(text, fileName), nil
}

// IngestFiles parses each file and appends the successes to the store.
// Per-file failures are reported, never fatal: one bad PDF must not sink
// a batch of fifty.
func (s *Service) IngestFiles(ctx context.Context, paths []string) (types.BatchReport, error) {
	var report types.BatchReport
	var parsed []types.Candidate

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			ioErr := errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Failed to read file: %s", path), err)
			s.logger.LogError(ioErr, "Skipping unreadable file", "path", path)
			report.Failed = append(report.Failed, types.FileFailure{
				FileName: filepath.Base(path), Reason: ioErr.Message,
			})
			continue
		}

		candidate, err := s.ParseBytes(data, filepath.Base(path))
		if err != nil {
			s.logger.LogError(err, "Skipping file", "path", path)
			report.Failed = append(report.Failed, types.FileFailure{
				FileName: filepath.Base(path), Reason: failureReason(err),
			})
			continue
		}

		parsed = append(parsed, candidate)
		report.Succeeded++
		s.logger.Debug("Parsed resume", "file", candidate.FileName,
			"candidate", candidate.Name)
	}

	if len(parsed) > 0 {
		if err := s.store.Append(parsed...); err != nil {
			return report, err
		}
	}
	return report, nil
}

// IngestBytes parses one in-memory file and appends it to the store.
func (s *Service) IngestBytes(data []byte, fileName string) (types.Candidate, error) {
	candidate, err := s.ParseBytes(data, fileName)
	if err != nil {
		return types.Candidate{}, err
	}
	if err := s.store.Append(candidate); err != nil {
		return types.Candidate{}, err
	}
	return candidate, nil
}

// List returns stored candidates passing the filter.
func (s *Service) List(filter types.Filter) ([]types.Candidate, error) {
	candidates, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if filter.Matches(&c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get returns one stored candidate by ID.
func (s *Service) Get(id string) (types.Candidate, error) {
	return s.store.Get(id)
}

// Delete removes one stored candidate by ID.
func (s *Service) Delete(id string) error {
	return s.store.Delete(id)
}

// Clear removes every stored candidate.
func (s *Service) Clear() error {
	return s.store.Clear()
}

// AnalyzeJD runs JD analysis without touching the store.
func (s *Service) AnalyzeJD(text string) jd.Analysis {
	return s.analyzer.Analyze(text)
}

// ApplyJD analyzes the JD, scores every stored candidate against it, and
// persists the match fields. The ranked list is returned in descending
// score order.
func (s *Service) ApplyJD(jdText string) (jd.Analysis, []match.Ranked, error) {
	analysis := s.analyzer.Analyze(jdText)

	var ranked []match.Ranked
	err := s.store.Update(func(candidates []types.Candidate) []types.Candidate {
		for i := range candidates {
			s.scorer.Apply(&candidates[i], analysis)
		}
		ranked = s.scorer.RankAll(candidates, analysis)
		return candidates
	})
	if err != nil {
		return jd.Analysis{}, nil, err
	}
	return analysis, ranked, nil
}

// ClearJD removes all match fields from every stored candidate.
func (s *Service) ClearJD() error {
	return s.store.Update(func(candidates []types.Candidate) []types.Candidate {
		for i := range candidates {
			candidates[i].ClearMatch()
		}
		return candidates
	})
}

// failureReason prefers the structured message over the full error chain
// for user-facing batch reports.
func failureReason(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
