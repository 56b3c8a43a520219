package factory

import (
	"fmt"
	"path/filepath"
	"strings"

	"go-zone-diff/internal/config"
	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/internal/report"
	"go-zone-diff/internal/storage"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// LocalStorage writes diff images into the output directory
	LocalStorage StorageType = "local"
	// AzureStorage uploads diff images to blob storage and mirrors them locally
	AzureStorage StorageType = "azure"
)

// StorageFactory creates the artifact store for one run
type StorageFactory interface {
	CreateStore(outputDir, runID string) (storage.ArtifactStore, error)
	Type() StorageType
}

// ReportWriterFactory picks a report writer for an output path
type ReportWriterFactory interface {
	CreateWriter(path string) (report.Writer, error)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	storageType StorageType
	azure       *storage.AzureStore
}

// NewStorageFactory creates a local storage factory, or an Azure one when
// blob credentials are configured
func NewStorageFactory(cfg *config.Config) (StorageFactory, error) {
	if !cfg.AzureEnabled() {
		return &storageFactory{storageType: LocalStorage}, nil
	}
	azure, err := storage.NewAzureStore(cfg.AzureAccount, cfg.AzureKey, cfg.AzureContainer)
	if err != nil {
		return nil, err
	}
	return &storageFactory{storageType: AzureStorage, azure: azure}, nil
}

// NewLocalStorageFactory creates a factory that only writes local files
func NewLocalStorageFactory() StorageFactory {
	return &storageFactory{storageType: LocalStorage}
}

func (f *storageFactory) Type() StorageType {
	return f.storageType
}

// CreateStore prepares outputDir and returns the store for the run
func (f *storageFactory) CreateStore(outputDir, runID string) (storage.ArtifactStore, error) {
	local := storage.NewLocalStore(outputDir)
	if err := local.Prepare(); err != nil {
		return nil, err
	}

	switch f.storageType {
	case LocalStorage:
		return local, nil
	case AzureStorage:
		return f.azure.WithPrefix(runID).WithMirror(local), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", f.storageType)
	}
}

// reportWriterFactory implements ReportWriterFactory
type reportWriterFactory struct {
	writers map[string]report.Writer
}

// NewReportWriterFactory creates a factory knowing the CSV and JSON writers
func NewReportWriterFactory() ReportWriterFactory {
	f := &reportWriterFactory{writers: make(map[string]report.Writer)}
	for _, w := range []report.Writer{report.NewCSVWriter(), report.NewJSONWriter()} {
		f.writers[w.Extension()] = w
	}
	return f
}

// CreateWriter selects a writer by the file extension of path
func (f *reportWriterFactory) CreateWriter(path string) (report.Writer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	w, ok := f.writers[ext]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported report format %q", ext), nil).
			WithDetails("use a .csv or .json report path")
	}
	return w, nil
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory StorageFactory
	ReportFactory  ReportWriterFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) (*ComponentFactory, error) {
	storageFactory, err := NewStorageFactory(cfg)
	if err != nil {
		return nil, err
	}
	return &ComponentFactory{
		StorageFactory: storageFactory,
		ReportFactory:  NewReportWriterFactory(),
	}, nil
}
