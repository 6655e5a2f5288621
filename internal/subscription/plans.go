package subscription

import "github.com/ratedzzz/small-steps/internal/models"

var allFeatures = []models.Feature{
	models.FeatureCloudSync,
	models.FeatureAnalytics,
	models.FeatureCustomCategories,
	models.FeatureExportData,
	models.FeaturePrioritySupport,
	models.FeatureAdvancedGoals,
	models.FeatureSocialFeatures,
	models.FeatureCustomBadges,
	models.FeatureAdvancedScheduling,
	models.FeatureHealthAppIntegration,
}

// featureSet enables the listed features and disables the rest
func featureSet(enabled ...models.Feature) map[models.Feature]bool {
	set := make(map[models.Feature]bool, len(allFeatures))
	for _, f := range allFeatures {
		set[f] = false
	}
	for _, f := range enabled {
		set[f] = true
	}
	return set
}

func freePlan() models.Plan {
	return models.Plan{
		ID:    "free_tier",
		Name:  "Free",
		Tier:  models.TierFree,
		Price: models.Price{Monthly: 0, Yearly: 0},
		Features: []string{
			"Up to 3 active habits",
			"Basic badge system",
			"Daily inspiration quotes",
			"7-day habit history",
			"Core habit tracking",
		},
		Limits: models.Limits{
			MaxHabits:   3,
			MaxGoals:    2,
			HistoryDays: 7,
			Features:    featureSet(),
		},
	}
}

func premiumPlan() models.Plan {
	return models.Plan{
		ID:    "premium_monthly",
		Name:  "Premium",
		Tier:  models.TierPremium,
		Price: models.Price{Monthly: 4.99, Yearly: 39.99},
		Features: []string{
			"Unlimited habits and goals",
			"Advanced analytics and insights",
			"Custom categories and templates",
			"Cloud sync across devices",
			"Export your data",
			"Priority customer support",
			"All basic features",
		},
		Limits: models.Limits{
			MaxHabits:   models.Unlimited,
			MaxGoals:    models.Unlimited,
			HistoryDays: models.Unlimited,
			Features: featureSet(
				models.FeatureCloudSync,
				models.FeatureAnalytics,
				models.FeatureCustomCategories,
				models.FeatureExportData,
				models.FeaturePrioritySupport,
			),
		},
	}
}

func proPlan() models.Plan {
	return models.Plan{
		ID:    "pro_monthly",
		Name:  "Pro",
		Tier:  models.TierPro,
		Price: models.Price{Monthly: 9.99, Yearly: 79.99},
		Features: []string{
			"Everything in Premium",
			"Advanced goal milestones",
			"Habit sharing and social features",
			"Create custom badges",
			"Advanced scheduling options",
			"Health app integrations",
			"Detailed progress reports",
			"Advanced analytics dashboard",
		},
		Limits: models.Limits{
			MaxHabits:   models.Unlimited,
			MaxGoals:    models.Unlimited,
			HistoryDays: models.Unlimited,
			Features:    featureSet(allFeatures...),
		},
	}
}

// Plans returns the plans in tier order
func Plans() []models.Plan {
	return []models.Plan{freePlan(), premiumPlan(), proPlan()}
}

// PlanFor returns the plan of tier; ok is false for an unknown tier
func PlanFor(tier models.Tier) (models.Plan, bool) {
	switch tier {
	case models.TierFree:
		return freePlan(), true
	case models.TierPremium:
		return premiumPlan(), true
	case models.TierPro:
		return proPlan(), true
	}
	return models.Plan{}, false
}

// Features lists every gated feature
func Features() []models.Feature {
	return append([]models.Feature(nil), allFeatures...)
}
