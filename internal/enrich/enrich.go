package enrich

import (
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/model"
)

// Report collects the inference results behind one Apply call. A nil entry
// means the field already had a value and was left alone.
type Report struct {
	Awareness      *AwarenessResult      `json:"awareness,omitempty"`
	Sophistication *SophisticationResult `json:"sophistication,omitempty"`
	Purchase       *PurchaseResult       `json:"purchase,omitempty"`
}

// Enricher fills enrichment fields that a profile is missing.
type Enricher struct {
	rules Rules
}

// New creates an Enricher. Zero-value tables fall back to DefaultRules.
func New(rules Rules) *Enricher {
	def := DefaultRules()
	if len(rules.Awareness) == 0 {
		rules.Awareness = def.Awareness
	}
	if len(rules.Sophistication) == 0 {
		rules.Sophistication = def.Sophistication
	}
	if len(rules.PriceTiers) == 0 {
		rules.PriceTiers = def.PriceTiers
	}
	if len(rules.DecisionStyles) == 0 {
		rules.DecisionStyles = def.DecisionStyles
	}
	return &Enricher{rules: rules}
}

// Apply infers awareness, sophistication and purchase behavior for p. An
// awareness stage set by hand (source other than "auto") is kept, as are an
// existing sophistication level and purchase behavior. The completeness
// score is not updated; rescore after applying.
func (e *Enricher) Apply(p *model.ParsedProfile) Report {
	var rep Report

	if p.AwarenessStage == "" || p.AwarenessStageSource == SourceAuto {
		res := InferAwareness(*p, e.rules.Awareness)
		p.AwarenessStage = res.Stage
		p.AwarenessConfidence = res.Confidence
		p.AwarenessStageSource = SourceAuto
		p.AwarenessSignals = res.Signals
		rep.Awareness = &res
	}

	if p.SophisticationLevel == "" {
		res := InferSophistication(*p, e.rules.Sophistication)
		p.SophisticationLevel = res.Level
		rep.Sophistication = &res
	}

	if p.PurchaseBehavior == nil {
		res := InferPurchaseBehavior(*p, e.rules.PriceTiers, e.rules.DecisionStyles)
		pb := res.Behavior
		p.PurchaseBehavior = &pb
		rep.Purchase = &res
	}

	zap.L().Debug("enrich: applied",
		zap.String("name", p.Name),
		zap.String("awareness", p.AwarenessStage),
		zap.String("sophistication", p.SophisticationLevel),
		zap.String("price_range", p.PurchaseBehavior.PriceRange),
	)
	return rep
}
