package models

import "time"

// StatSource tells consumers where an effective value came from
type StatSource string

const (
	SourceOverride    StatSource = "override"
	SourceReal        StatSource = "real"
	SourceUnavailable StatSource = "unavailable"
)

// EffectiveStat is a resolved value and its provenance. Value is nil when unavailable.
type EffectiveStat struct {
	Value  *float64   `json:"value"`
	Source StatSource `json:"source"`
}

// EffectiveStats is what an observer of a seller's dashboard sees
type EffectiveStats struct {
	SellerID   string                      `json:"seller_id"`
	Timeframe  Timeframe                   `json:"timeframe"`
	Fields     map[StatField]EffectiveStat `json:"fields"`
	Warnings   []string                    `json:"warnings,omitempty"`
	ResolvedAt time.Time                   `json:"resolved_at"`
}

// Get returns the resolved field, or an unavailable marker when missing
func (s *EffectiveStats) Get(f StatField) EffectiveStat {
	if st, ok := s.Fields[f]; ok {
		return st
	}
	return EffectiveStat{Source: SourceUnavailable}
}

// HasOverrides reports whether any field is sourced from an override
func (s *EffectiveStats) HasOverrides() bool {
	for _, st := range s.Fields {
		if st.Source == SourceOverride {
			return true
		}
	}
	return false
}
