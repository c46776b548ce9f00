// Package registry keeps the node types a trial app workflow may use.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/protocol"
)

var (
	ErrDuplicateNodeType = errors.New("node type already registered")
	ErrUnknownNodeType   = errors.New("node type not registered")
)

type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	nodes  map[models.BlockEnum]protocol.NodeDescriptor
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger: log.With("module", "registry"),
		nodes:  make(map[models.BlockEnum]protocol.NodeDescriptor),
	}
}

func (r *Registry) Register(descriptor protocol.NodeDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	nodeType := descriptor.Type()
	if _, exists := r.nodes[nodeType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeType, nodeType)
	}

	r.nodes[nodeType] = descriptor
	r.logger.Debug("Registered node type", "type", nodeType)

	return nil
}

func (r *Registry) Get(nodeType models.BlockEnum) (protocol.NodeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, ok := r.nodes[nodeType]

	return descriptor, ok
}

// List returns the metadata of every registered node ordered by classification, sort and type.
func (r *Registry) List() []models.NodeMetaData {
	r.mu.RLock()
	metas := make([]models.NodeMetaData, 0, len(r.nodes))

	for _, descriptor := range r.nodes {
		metas = append(metas, descriptor.MetaData())
	}
	r.mu.RUnlock()

	slices.SortFunc(metas, func(a, b models.NodeMetaData) int {
		if c := strings.Compare(string(a.Classification), string(b.Classification)); c != 0 {
			return c
		}

		if a.Sort != b.Sort {
			return a.Sort - b.Sort
		}

		return strings.Compare(string(a.Type), string(b.Type))
	})

	return metas
}

func (r *Registry) StartNodes() []models.NodeMetaData {
	all := r.List()

	return slices.DeleteFunc(all, func(meta models.NodeMetaData) bool {
		return !meta.IsStart
	})
}

func (r *Registry) DefaultConfig(nodeType models.BlockEnum) (map[string]any, error) {
	descriptor, ok := r.Get(nodeType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	}

	return descriptor.DefaultConfig()
}

func (r *Registry) CheckValid(nodeType models.BlockEnum, payload json.RawMessage, translator i18n.Translator) (models.ValidationResult, error) {
	descriptor, ok := r.Get(nodeType)
	if !ok {
		return models.ValidationResult{}, fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	}

	return descriptor.CheckValidRaw(payload, translator), nil
}

// HealthCheck fails when no node type is registered.
func (r *Registry) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.nodes) == 0 {
		return errors.New("no node types registered")
	}

	return nil
}
