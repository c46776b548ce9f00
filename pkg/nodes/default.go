// Package nodes provides the generic descriptor every node type is declared with.
package nodes

import (
	"encoding/json"
	"fmt"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
)

// CheckFunc validates a typed node payload.
type CheckFunc[T any] func(payload T, translator i18n.Translator) models.ValidationResult

// Default is an immutable node type descriptor: metadata, a default value template and a
// validation hook. Build it once with NewDefault and share it freely.
type Default[T any] struct {
	metaData     models.NodeMetaData
	defaultValue T
	clone        func(T) T
	checkValid   CheckFunc[T]
}

// NewDefault builds a descriptor. clone must return a copy of its argument sharing no
// mutable state; it guards the template every time DefaultValue is read.
func NewDefault[T any](spec models.MetaSpec, defaultValue T, clone func(T) T, check CheckFunc[T]) *Default[T] {
	return &Default[T]{
		metaData:     models.GenNodeMetaData(spec),
		defaultValue: clone(defaultValue),
		clone:        clone,
		checkValid:   check,
	}
}

// Type returns the node kind.
func (d *Default[T]) Type() models.BlockEnum {
	return d.metaData.Type
}

// MetaData returns the node metadata.
func (d *Default[T]) MetaData() models.NodeMetaData {
	return d.metaData
}

// DefaultValue returns a fresh copy of the default node data.
func (d *Default[T]) DefaultValue() T {
	return d.clone(d.defaultValue)
}

// CheckValid validates payload.
func (d *Default[T]) CheckValid(payload T, translator i18n.Translator) models.ValidationResult {
	if translator == nil {
		translator = i18n.Nop
	}

	return d.checkValid(payload, translator)
}

// DefaultConfig returns DefaultValue converted to a generic map.
func (d *Default[T]) DefaultConfig() (map[string]any, error) {
	raw, err := json.Marshal(d.DefaultValue())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s default: %w", d.metaData.Type, err)
	}

	config := map[string]any{}

	err = json.Unmarshal(raw, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s default: %w", d.metaData.Type, err)
	}

	return config, nil
}

// CheckValidRaw decodes payload into T and validates it. A payload that is empty, null or
// not decodable into T is validated as the zero T.
func (d *Default[T]) CheckValidRaw(payload json.RawMessage, translator i18n.Translator) models.ValidationResult {
	var typed T

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &typed); err != nil {
			var zero T
			typed = zero
		}
	}

	return d.CheckValid(typed, translator)
}
