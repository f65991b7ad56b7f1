package imageservice

import (
	"context"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module wraps the pipeline service in the mono lifecycle.
type Module struct {
	root    string
	service *Service
	logger  types.Logger
}

// Compile-time interface checks
var _ mono.Module = (*Module)(nil)

// NewModule creates the image service module rooted at the given storage path.
func NewModule(root string, logger types.Logger) *Module {
	return &Module{
		root:   root,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "image-service"
}

// Start creates the service and its storage tree.
func (m *Module) Start(ctx context.Context) error {
	m.service = NewService(m.root)
	if err := m.service.EnsureTree(); err != nil {
		return err
	}

	m.logger.Info("Image service module started", "storage_root", m.root)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(ctx context.Context) error {
	m.logger.Info("Image service module stopped")
	return nil
}

// Service returns the pipeline service instance.
func (m *Module) Service() *Service {
	return m.service
}
