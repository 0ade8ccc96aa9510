package models

import "time"

// AnalysisRecord is a computed analysis as kept by the history layer.
type AnalysisRecord struct {
	ID            string               `bson:"_id" json:"id"`
	FarmID        string               `bson:"farm_id" json:"farmId"`
	Input         LivestockData        `bson:"input" json:"input"`
	Locale        LocaleConfig         `bson:"locale" json:"locale"`
	Result        *ProfitabilityResult `bson:"result" json:"result"`
	EngineVersion string               `bson:"engine_version" json:"engineVersion"`
	CacheHit      bool                 `bson:"-" json:"cacheHit,omitempty"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
}

// AnalysisRequest is the HTTP payload for validating or running an analysis.
type AnalysisRequest struct {
	Data   LivestockData `json:"data"`
	Locale LocaleConfig  `json:"locale"`
}
