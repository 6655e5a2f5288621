package models

import "time"

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// Unlimited marks a numeric plan limit with no cap
const Unlimited = -1

type Feature string

const (
	FeatureCloudSync            Feature = "cloudSync"
	FeatureAnalytics            Feature = "analytics"
	FeatureCustomCategories     Feature = "customCategories"
	FeatureExportData           Feature = "exportData"
	FeaturePrioritySupport      Feature = "prioritySupport"
	FeatureAdvancedGoals        Feature = "advancedGoals"
	FeatureSocialFeatures       Feature = "socialFeatures"
	FeatureCustomBadges         Feature = "customBadges"
	FeatureAdvancedScheduling   Feature = "advancedScheduling"
	FeatureHealthAppIntegration Feature = "healthAppIntegration"
)

type Price struct {
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

type Limits struct {
	MaxHabits   int              `json:"maxHabits"`
	MaxGoals    int              `json:"maxGoals"`
	HistoryDays int              `json:"historyDays"`
	Features    map[Feature]bool `json:"features"`
}

type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tier     Tier     `json:"tier"`
	Price    Price    `json:"price"`
	Features []string `json:"features"`
	Limits   Limits   `json:"limits"`
}

// Subscription is the persisted subscription state
type Subscription struct {
	CurrentTier Tier       `json:"currentTier"`
	Plan        Plan       `json:"plan"`
	IsActive    bool       `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether a dated subscription has lapsed at now
func (s Subscription) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
