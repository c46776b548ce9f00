// Package models defines the domain models for trial apps and workflow node types.
package models

import "time"

// AppMode is the operating mode of an application.
type AppMode string

const (
	AppModeCompletion   AppMode = "completion"
	AppModeWorkflow     AppMode = "workflow"
	AppModeChat         AppMode = "chat"
	AppModeAdvancedChat AppMode = "advanced-chat"
	AppModeAgentChat    AppMode = "agent-chat"
	AppModeChannel      AppMode = "channel"
	AppModeRAGPipeline  AppMode = "rag-pipeline"
)

// AppModes lists every known application mode.
var AppModes = []AppMode{
	AppModeCompletion,
	AppModeWorkflow,
	AppModeChat,
	AppModeAdvancedChat,
	AppModeAgentChat,
	AppModeChannel,
	AppModeRAGPipeline,
}

// IsValid reports whether m is one of the known application modes.
func (m AppMode) IsValid() bool {
	for _, mode := range AppModes {
		if m == mode {
			return true
		}
	}

	return false
}

// IconType describes how SiteInfo.Icon should be interpreted.
type IconType string

const (
	IconTypeEmoji IconType = "emoji"
	IconTypeImage IconType = "image"
	IconTypeLink  IconType = "link"
)

// SiteInfo holds the display metadata of a published application site.
type SiteInfo struct {
	Title                  string   `json:"title"                             validate:"required"`
	ChatColorTheme         string   `json:"chat_color_theme,omitempty"`
	ChatColorThemeInverted bool     `json:"chat_color_theme_inverted"`
	IconType               IconType `json:"icon_type,omitempty"               validate:"omitempty,oneof=emoji image link"`
	Icon                   string   `json:"icon,omitempty"`
	IconBackground         string   `json:"icon_background,omitempty"`
	IconURL                string   `json:"icon_url,omitempty"`
	Description            string   `json:"description,omitempty"`
	DefaultLanguage        string   `json:"default_language,omitempty"`
	PromptPublic           bool     `json:"prompt_public"`
	Copyright              string   `json:"copyright,omitempty"`
	PrivacyPolicy          string   `json:"privacy_policy,omitempty"`
	CustomDisclaimer       string   `json:"custom_disclaimer,omitempty"`
	ShowWorkflowSteps      bool     `json:"show_workflow_steps"`
	UseIconAsAnswerIcon    bool     `json:"use_icon_as_answer_icon"`
}

// TryAppInfo is the metadata returned for a trial app.
type TryAppInfo struct {
	Name string    `json:"name" validate:"required"`
	Mode AppMode   `json:"mode" validate:"required,oneof=completion workflow chat advanced-chat agent-chat channel rag-pipeline"`
	Site *SiteInfo `json:"site" validate:"required"`
}

// TrialApp is the stored form of a trial app.
type TrialApp struct {
	ID        string    `json:"id"         validate:"omitempty,record_id"`
	Name      string    `json:"name"       validate:"required,min=1"`
	Mode      AppMode   `json:"mode"       validate:"required,oneof=completion workflow chat advanced-chat agent-chat channel rag-pipeline"`
	Site      SiteInfo  `json:"site"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Info projects the stored app onto the public TryAppInfo shape.
func (a *TrialApp) Info() *TryAppInfo {
	site := a.Site

	return &TryAppInfo{
		Name: a.Name,
		Mode: a.Mode,
		Site: &site,
	}
}
