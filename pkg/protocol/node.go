// Package protocol defines the contracts node types expose to the registry.
package protocol

import (
	"encoding/json"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
)

// NodeDescriptor is a node type as seen by the registry and the API.
type NodeDescriptor interface {
	// Type returns the node kind this descriptor registers under
	Type() models.BlockEnum

	// MetaData returns how the node type is presented in the editor
	MetaData() models.NodeMetaData

	// DefaultConfig returns a fresh copy of the default node data as a generic map
	DefaultConfig() (map[string]any, error)

	// CheckValidRaw validates a JSON node payload
	CheckValidRaw(payload json.RawMessage, translator i18n.Translator) models.ValidationResult
}
