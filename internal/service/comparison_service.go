package service

import (
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sync"
	"time"

	"go-zone-diff/internal/analyzer"
	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/internal/factory"
	"go-zone-diff/internal/locator"
	"go-zone-diff/internal/logger"
	"go-zone-diff/internal/observer"
	"go-zone-diff/internal/pairing"
	"go-zone-diff/internal/preview"
	"go-zone-diff/internal/report"
	"go-zone-diff/internal/repository"
	"go-zone-diff/internal/storage"
	"go-zone-diff/pkg/models"
	"go-zone-diff/pkg/validation"

	"github.com/sirupsen/logrus"
)

// ComparisonService runs folder comparisons
type ComparisonService interface {
	// Compare pairs the two folders, compares every pair and returns the report
	Compare(ctx context.Context, request CompareRequest) (*models.Report, error)

	// Zones returns the zone set used for every comparison
	Zones() models.ZoneSet
}

// CompareRequest describes one comparison run. Empty fields take the
// service defaults; an empty OutputDir becomes a subdirectory named after
// the run id inside the default output directory.
type CompareRequest struct {
	LeftDir    string
	RightDir   string
	OutputDir  string
	ReportPath string
	Options    analyzer.CompareOptions
	Preview    bool
}

// Settings holds service-wide defaults
type Settings struct {
	OutputDir    string
	DiffBaseName string
	HintDistance int
}

// Dependencies groups the collaborators of the comparison service
type Dependencies struct {
	Images    repository.ImageRepository
	History   repository.HistoryRepository
	Analyzer  analyzer.PairAnalyzer
	Storage   factory.StorageFactory
	Reports   factory.ReportWriterFactory
	Publisher observer.Subject
}

// comparisonService implements ComparisonService
type comparisonService struct {
	deps     Dependencies
	zones    models.ZoneSet
	settings Settings
	paths    *validation.PathValidator

	mu     sync.Mutex
	active map[string]string // output directory -> run id
}

// NewComparisonService creates a comparison service for a validated zone set
func NewComparisonService(deps Dependencies, zones models.ZoneSet, settings Settings) (ComparisonService, error) {
	if issues := validation.NewZoneValidator().ValidateZoneSet(zones); validation.HasErrors(issues) {
		return nil, apperrors.NewValidationError("invalid zone configuration", nil).
			WithDetails(fmt.Sprint(validation.ConvertIssuesToMessages(issues)))
	}
	if settings.DiffBaseName == "" {
		settings.DiffBaseName = "difference_name"
	}
	if settings.OutputDir == "" {
		settings.OutputDir = "Picture Difference"
	}
	if settings.HintDistance <= 0 {
		settings.HintDistance = pairing.DefaultMaxDistance
	}
	if deps.Publisher == nil {
		deps.Publisher = observer.NewEventPublisher()
	}
	return &comparisonService{
		deps:     deps,
		zones:    zones,
		settings: settings,
		paths:    validation.NewPathValidator(),
		active:   make(map[string]string),
	}, nil
}

func (s *comparisonService) Zones() models.ZoneSet {
	return s.zones
}

// run carries the per-run state shared by pair comparisons
type run struct {
	info    report.RunInfo
	store   storage.ArtifactStore
	options analyzer.CompareOptions
}

// Compare validates the request, claims the output directory and runs the comparison
func (s *comparisonService) Compare(ctx context.Context, request CompareRequest) (*models.Report, error) {
	start := time.Now()

	opts := request.Options
	if opts.Opacity < 0 || opts.Opacity > 1 || math.IsNaN(opts.Opacity) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("opacity must be within [0,1], got %v", opts.Opacity), nil)
	}

	// Roots must exist before anything is written
	leftRoot, err := s.paths.ValidateRoot(request.LeftDir)
	if err != nil {
		return nil, err
	}
	rightRoot, err := s.paths.ValidateRoot(request.RightDir)
	if err != nil {
		return nil, err
	}

	outputDir := request.OutputDir
	sharedDefault := outputDir == ""
	if sharedDefault {
		outputDir = s.settings.OutputDir
	}
	if err := s.paths.ValidateOutputDir(outputDir, leftRoot, rightRoot); err != nil {
		return nil, err
	}
	if outputDir, err = filepath.Abs(outputDir); err != nil {
		return nil, apperrors.NewIOError("cannot resolve output directory", err)
	}

	// Resolve the report format before any file is written
	var writer report.Writer
	if request.ReportPath != "" {
		if writer, err = s.deps.Reports.CreateWriter(request.ReportPath); err != nil {
			return nil, err
		}
	}

	info := report.NewRunInfo(leftRoot, rightRoot, outputDir)
	runID := info.RunID.String()
	if sharedDefault {
		info.OutputDir = filepath.Join(outputDir, runID)
	}

	release, err := s.claimOutput(info.OutputDir, runID)
	if err != nil {
		return nil, err
	}
	defer release()

	r := &run{info: info, options: opts}

	s.deps.Publisher.NotifyObservers(ctx, observer.ComparisonEvent{
		EventType: observer.RunStarted,
		RunID:     runID,
		Metadata:  map[string]interface{}{"left_root": leftRoot, "right_root": rightRoot, "output_dir": r.info.OutputDir},
	})

	result, err := s.execute(ctx, r, request, writer)
	if err != nil {
		s.deps.Publisher.NotifyObservers(ctx, observer.ComparisonEvent{
			EventType: observer.RunFailed,
			RunID:     runID,
			Duration:  time.Since(start),
			Error:     err.Error(),
		})
		return nil, err
	}

	s.deps.Publisher.NotifyObservers(ctx, observer.ComparisonEvent{
		EventType: observer.RunCompleted,
		RunID:     runID,
		Duration:  time.Since(start),
		Metadata: map[string]interface{}{
			"total":    result.Summary.Total,
			"compared": result.Summary.Compared,
			"missing":  result.Summary.Missing,
			"failed":   result.Summary.Failed,
		},
	})
	return result, nil
}

// claimOutput reserves dir for one run. Diff images are named by record
// index only, so two runs writing the same directory would overwrite each other.
func (s *comparisonService) claimOutput(dir, runID string) (func(), error) {
	key := filepath.Clean(dir)

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, busy := s.active[key]; busy {
		return nil, apperrors.NewConflictError("output directory is in use by another run", nil).
			WithDetails(fmt.Sprintf("%s is held by run %s", key, owner))
	}
	s.active[key] = runID

	return func() {
		s.mu.Lock()
		delete(s.active, key)
		s.mu.Unlock()
	}, nil
}

func (s *comparisonService) execute(ctx context.Context, r *run, request CompareRequest, writer report.Writer) (*models.Report, error) {
	store, err := s.deps.Storage.CreateStore(r.info.OutputDir, r.info.RunID.String())
	if err != nil {
		return nil, err
	}
	r.store = store

	left, err := locator.Locate(r.info.LeftRoot)
	if err != nil {
		return nil, err
	}
	right, err := locator.Locate(r.info.RightRoot)
	if err != nil {
		return nil, err
	}

	// Pair files, then hint at likely renames among the unmatched ones
	pairs := pairing.Reconcile(left, right)
	hints := pairing.SuggestRenames(pairs, s.settings.HintDistance)
	for _, h := range hints {
		s.deps.Publisher.NotifyObservers(ctx, observer.ComparisonEvent{
			EventType: observer.RenameHinted,
			RunID:     r.info.RunID.String(),
			Left:      h.Left,
			Right:     h.Right,
			Metadata:  map[string]interface{}{"subdir": h.Subdir, "distance": h.Distance},
		})
	}

	records, err := s.compareAll(ctx, r, pairs)
	if err != nil {
		return nil, err
	}

	result := report.Assemble(r.info, s.zones, records, hints)

	if request.Preview {
		name, err := s.savePreview(ctx, r, records)
		if err != nil {
			return nil, err
		}
		result.Preview = name
	}

	if writer != nil {
		if err := report.WriteFile(request.ReportPath, writer, result); err != nil {
			return nil, err
		}
	}

	// History failures are logged, not returned
	if s.deps.History != nil {
		if err := s.deps.History.SaveReport(ctx, result); err != nil {
			logger.WithError(err).WithField("run_id", result.RunID).Warn("Failed to record run history")
		}
	}
	return result, nil
}

// compareAll compares pairs in reconciler order. With more than one worker
// the pairs run concurrently but each record lands in its own slot.
func (s *comparisonService) compareAll(ctx context.Context, r *run, pairs []models.ComparisonPair) ([]models.ComparisonRecord, error) {
	records := make([]models.ComparisonRecord, len(pairs))

	if r.options.Workers <= 1 || len(pairs) < 2 {
		for i, pair := range pairs {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.NewTimeoutError("comparison cancelled", err)
			}
			rec, err := s.comparePair(ctx, r, i+1, pair)
			if err != nil {
				return nil, err
			}
			records[i] = rec
		}
		return records, nil
	}

	// Each job writes only its own slot, so no locking is needed
	errs := make([]error, len(pairs))
	pool := analyzer.NewWorkerPool(r.options.Workers)
	pool.Start()
	for i, pair := range pairs {
		i, pair := i, pair
		pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				errs[i] = apperrors.NewTimeoutError("comparison cancelled", err)
				return
			}
			records[i], errs[i] = s.comparePair(ctx, r, i+1, pair)
		})
	}
	pool.Wait()
	pool.Close()

	logger.WithFields(logrus.Fields{
		"run_id":  r.info.RunID,
		"workers": r.options.Workers,
		"jobs":    pool.GetStats().CompletedJobs,
	}).Debug("Worker pool drained")

	// First fatal error in record order wins
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// comparePair produces the record for one pair. Only errors that must
// stop the run are returned; per-pair failures end up in the record.
func (s *comparisonService) comparePair(ctx context.Context, r *run, index int, pair models.ComparisonPair) (models.ComparisonRecord, error) {
	start := time.Now()
	rec := models.ComparisonRecord{
		Index:  index,
		Subdir: pair.Subdir,
		Left:   pair.Left.ID(),
		Right:  pair.Right.ID(),
		Zones:  models.NotApplicable(s.zones),
		Pair:   pair,
	}
	event := observer.ComparisonEvent{
		RunID: r.info.RunID.String(),
		Index: index,
		Left:  rec.Left,
		Right: rec.Right,
	}

	if pair.HasMissing() && !r.options.MissingPlaceholder {
		rec.Status = models.StatusMissing
		event.EventType = observer.PairMissing
		s.deps.Publisher.NotifyObservers(ctx, event)
		return rec, nil
	}

	analysis, err := s.analyzePair(ctx, r, pair)
	if err != nil {
		if !apperrors.IsPairFailure(err) {
			return models.ComparisonRecord{}, err
		}
		rec.Status = models.StatusFailed
		rec.Error = err.Error()
		event.EventType = observer.PairFailed
		event.Error = rec.Error
		s.deps.Publisher.NotifyObservers(ctx, event)
		return rec, nil
	}
	rec.Zones = analysis.Zones
	rec.Status = models.StatusCompared

	if analysis.Diff != nil {
		name := fmt.Sprintf("%s_%d.png", s.settings.DiffBaseName, index)
		if _, err := r.store.Save(ctx, name, analysis.Diff); err != nil {
			return models.ComparisonRecord{}, err
		}
		rec.DiffImage = name
	}

	event.EventType = observer.PairCompared
	event.Duration = time.Since(start)
	s.deps.Publisher.NotifyObservers(ctx, event)
	return rec, nil
}

func (s *comparisonService) analyzePair(ctx context.Context, r *run, pair models.ComparisonPair) (analyzer.PairAnalysis, error) {
	left, err := s.loadSide(ctx, pair.Left)
	if err != nil {
		return analyzer.PairAnalysis{}, err
	}
	right, err := s.loadSide(ctx, pair.Right)
	if err != nil {
		return analyzer.PairAnalysis{}, err
	}
	return s.deps.Analyzer.Analyze(left, right, s.zones, r.options)
}

// loadSide decodes a present image or returns a blank canonical-size placeholder
func (s *comparisonService) loadSide(ctx context.Context, ref models.ImageRef) (image.Image, error) {
	p, ok := ref.Image()
	if !ok {
		return analyzer.BlankImage(s.zones.Width, s.zones.Height), nil
	}
	return s.deps.Images.Load(ctx, p)
}

// savePreview draws the zones over the first compared right-hand screenshot
func (s *comparisonService) savePreview(ctx context.Context, r *run, records []models.ComparisonRecord) (string, error) {
	var sample image.Image
	for _, rec := range records {
		if rec.Status != models.StatusCompared {
			continue
		}
		if p, ok := rec.Pair.Right.Image(); ok {
			img, err := s.deps.Images.Load(ctx, p)
			if err == nil {
				sample = img
				break
			}
		}
	}

	if _, err := r.store.Save(ctx, preview.FileName, preview.Render(sample, s.zones)); err != nil {
		return "", err
	}
	return preview.FileName, nil
}
