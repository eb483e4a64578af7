package model

// Confidence labels used by enrichment inference.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Awareness stages (Schwartz).
const (
	AwarenessUnaware       = "unaware"
	AwarenessProblemAware  = "problem_aware"
	AwarenessSolutionAware = "solution_aware"
	AwarenessProductAware  = "product_aware"
	AwarenessMostAware     = "most_aware"
)

// Enrichment holds the marketing fields that enrichment steps populate after
// a profile has been parsed. These are the fields the completeness scorer weighs.
type Enrichment struct {
	AwarenessStage       string              `json:"awarenessStage,omitempty"`
	AwarenessConfidence  string              `json:"awarenessConfidence,omitempty"`
	AwarenessStageSource string              `json:"awarenessStageSource,omitempty"`
	AwarenessSignals     *AwarenessSignals   `json:"awarenessSignals,omitempty"`
	SophisticationLevel  string              `json:"sophisticationLevel,omitempty"`
	ContentPreferences   *ContentPreferences `json:"contentPreferences,omitempty"`
	InfluenceSources     *InfluenceSources   `json:"influenceSources,omitempty"`
	PurchaseBehavior     *PurchaseBehavior   `json:"purchaseBehavior,omitempty"`
	CompetitorContext    *CompetitorContext  `json:"competitorContext,omitempty"`
	CommunicationStyle   *CommunicationStyle `json:"communicationStyle,omitempty"`
	SeasonalContext      *SeasonalContext    `json:"seasonalContext,omitempty"`
	NegativeTriggers     *NegativeTriggers   `json:"negativeTriggers,omitempty"`
}

// AwarenessSignals breaks down which sources drove the awareness classification.
type AwarenessSignals struct {
	BeliefsSignal    string `json:"beliefsSignal,omitempty"`
	ObjectionsSignal string `json:"objectionsSignal,omitempty"`
	LanguageSignal   string `json:"languageSignal,omitempty"`
}

type ContentPreferences struct {
	PreferredFormats []string `json:"preferredFormats,omitempty"`
	AttentionSpan    string   `json:"attentionSpan,omitempty"`
	TonePreference   string   `json:"tonePreference,omitempty"`
}

type InfluenceSources struct {
	TrustedVoices    []string `json:"trustedVoices,omitempty"`
	MediaConsumption []string `json:"mediaConsumption,omitempty"`
	SocialPlatforms  []string `json:"socialPlatforms,omitempty"`
}

// PurchaseBehavior describes how a focus group buys.
type PurchaseBehavior struct {
	BuyingTriggers   []string `json:"buyingTriggers,omitempty"`
	PriceRange       string   `json:"priceRange,omitempty"`
	DecisionProcess  string   `json:"decisionProcess,omitempty"`
	ObjectionHistory []string `json:"objectionHistory,omitempty"`
}

type CompetitorContext struct {
	CurrentSolutions []string `json:"currentSolutions,omitempty"`
	SwitchMotivators []string `json:"switchMotivators,omitempty"`
}

type CommunicationStyle struct {
	FormalityLevel   string `json:"formalityLevel,omitempty"`
	HumorReceptivity string `json:"humorReceptivity,omitempty"`
	StoryPreference  string `json:"storyPreference,omitempty"`
	DataPreference   string `json:"dataPreference,omitempty"`
}

type SeasonalContext struct {
	PeakInterestPeriods []string `json:"peakInterestPeriods,omitempty"`
	LifeEvents          []string `json:"lifeEvents,omitempty"`
	CyclicalBehaviors   []string `json:"cyclicalBehaviors,omitempty"`
}

type NegativeTriggers struct {
	DealBreakers    []string `json:"dealBreakers,omitempty"`
	OffensiveTopics []string `json:"offensiveTopics,omitempty"`
	ToneAversions   []string `json:"toneAversions,omitempty"`
}
