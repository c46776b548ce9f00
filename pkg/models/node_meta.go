package models

// Classification groups node types in the editor's block picker.
type Classification string

const (
	ClassificationDefault   Classification = "default"
	ClassificationQuestion  Classification = "question-understand"
	ClassificationLogic     Classification = "logic"
	ClassificationTransform Classification = "transform"
	ClassificationUtilities Classification = "utilities"
	ClassificationTrigger   Classification = "trigger"
)

// DefaultAuthor is stamped on node metadata that names no author.
const DefaultAuthor = "trialkit"

// NodeMetaData describes how a node type is presented and constrained in the editor.
type NodeMetaData struct {
	Classification Classification `json:"classification"`
	Sort           int            `json:"sort"`
	Type           BlockEnum      `json:"type"`
	Title          string         `json:"title"`
	Author         string         `json:"author"`
	HelpLinkURI    string         `json:"help_link_uri"`
	IsRequired     bool           `json:"is_required"`
	IsUndeletable  bool           `json:"is_undeletable"`
	IsStart        bool           `json:"is_start"`
	IsSingleton    bool           `json:"is_singleton"`
	IsTypeFixed    bool           `json:"is_type_fixed"`
}

// MetaSpec is the declarative input of GenNodeMetaData. Zero values pick the defaults.
type MetaSpec struct {
	Classification Classification
	Sort           int
	Type           BlockEnum
	Title          string
	Author         string
	HelpLinkURI    string
	IsRequired     bool
	IsUndeletable  bool
	IsStart        bool
	IsSingleton    bool
	IsTypeFixed    bool
}

// GenNodeMetaData expands a MetaSpec into a complete NodeMetaData.
func GenNodeMetaData(spec MetaSpec) NodeMetaData {
	meta := NodeMetaData{
		Classification: spec.Classification,
		Sort:           spec.Sort,
		Type:           spec.Type,
		Title:          spec.Title,
		Author:         spec.Author,
		HelpLinkURI:    spec.HelpLinkURI,
		IsRequired:     spec.IsRequired,
		IsUndeletable:  spec.IsUndeletable,
		IsStart:        spec.IsStart,
		IsSingleton:    spec.IsSingleton,
		IsTypeFixed:    spec.IsTypeFixed,
	}

	if meta.Classification == "" {
		meta.Classification = ClassificationDefault
	}

	if meta.Author == "" {
		meta.Author = DefaultAuthor
	}

	if meta.HelpLinkURI == "" {
		meta.HelpLinkURI = string(spec.Type)
	}

	return meta
}

// ValidationResult is the outcome of a node type's config check.
type ValidationResult struct {
	IsValid      bool   `json:"is_valid"`
	ErrorMessage string `json:"error_message"`
}

// Valid is the result reported by a check that found nothing wrong.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid builds a failing result carrying message.
func Invalid(message string) ValidationResult {
	return ValidationResult{IsValid: false, ErrorMessage: message}
}

// NodeTypeInfo is a node type as served by the API: its metadata and default data.
type NodeTypeInfo struct {
	MetaData     NodeMetaData   `json:"meta_data"`
	DefaultValue map[string]any `json:"default_value"`
}
