package config

import (
	"git.home.luguber.info/inful/kbsite/internal/foundation/normalization"
	"git.home.luguber.info/inful/kbsite/internal/suffix"
)

// SearchProvider selects the search implementation.
type SearchProvider string

const (
	SearchProviderLocal SearchProvider = "local"
	SearchProviderNone  SearchProvider = "none"
)

var searchProviderNormalizer = normalization.NewNormalizer("search provider", map[string]SearchProvider{
	"local":    SearchProviderLocal,
	"none":     SearchProviderNone,
	"disabled": SearchProviderNone,
}, SearchProviderLocal)

// TermProcessorKind names a term processing function.
type TermProcessorKind string

const (
	// TermProcessorDefault leaves tokenization to the search library.
	TermProcessorDefault TermProcessorKind = "default"
	// TermProcessorSuffix expands each term into its suffixes.
	TermProcessorSuffix TermProcessorKind = "suffix"
)

var termProcessorNormalizer = normalization.NewNormalizer("term processor", map[string]TermProcessorKind{
	"default":  TermProcessorDefault,
	"suffix":   TermProcessorSuffix,
	"suffixes": TermProcessorSuffix,
}, TermProcessorDefault)

// SearchConfig configures the search provider.
type SearchConfig struct {
	Provider     SearchProvider     `yaml:"provider"`
	DetailedView bool               `yaml:"detailed_view"`
	MaxResults   int                `yaml:"max_results"`
	Translations SearchTranslations `yaml:"translations"`

	// Documents are indexed with Index, user queries are tokenized with
	// Query. Suffix indexing with default query tokenization is what makes
	// short substring queries match.
	Index TermProcessing `yaml:"index_term_processing"`
	Query TermProcessing `yaml:"query_term_processing"`
}

// TermProcessing describes a term processing function.
type TermProcessing struct {
	Kind      TermProcessorKind `yaml:"kind"`
	MinLength int               `yaml:"min_length,omitempty"`
}

// Processor returns the processing function, or nil when the search
// library's default should be used.
func (tp TermProcessing) Processor() suffix.TermProcessor {
	if tp.Kind != TermProcessorSuffix {
		return nil
	}
	return suffix.ProcessTerm(tp.MinLength)
}

// SuffixLength is the minimum suffix length, or 0 when not suffixing.
func (tp TermProcessing) SuffixLength() int {
	if tp.Kind != TermProcessorSuffix {
		return 0
	}
	return tp.MinLength
}

// Descriptor is the rendered form of the processing function.
func (tp TermProcessing) Descriptor() map[string]any {
	d := map[string]any{"kind": string(tp.Kind)}
	if tp.Kind == TermProcessorSuffix {
		d["minLength"] = tp.MinLength
	}
	return d
}

// SearchTranslations are the localized strings of the search UI.
type SearchTranslations struct {
	Button SearchButtonTranslations `yaml:"button"`
	Modal  SearchModalTranslations  `yaml:"modal"`
}

type SearchButtonTranslations struct {
	ButtonText      string `yaml:"button_text"`
	ButtonAriaLabel string `yaml:"button_aria_label"`
}

type SearchModalTranslations struct {
	DisplayDetails   string            `yaml:"display_details"`
	ResetButtonTitle string            `yaml:"reset_button_title"`
	BackButtonTitle  string            `yaml:"back_button_title"`
	NoResultsText    string            `yaml:"no_results_text"`
	Footer           SearchModalFooter `yaml:"footer"`
}

type SearchModalFooter struct {
	SelectText   string `yaml:"select_text"`
	NavigateText string `yaml:"navigate_text"`
	CloseText    string `yaml:"close_text"`
}
