package service

import (
	"context"
	"fmt"
	"time"

	"go-clinic-dashboard/config"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/display"
)

// InsightProvider produces display hints for one admission.
type InsightProvider interface {
	Name() string
	Insights(ctx context.Context, admission entity.Admission) ([]entity.Insight, error)
}

// ruleInsightProvider derives insights from the stored risk score, status and
// length of stay. It performs no inference and is deterministic for a given
// clock.
type ruleInsightProvider struct {
	cfg config.InsightConfig
	loc *time.Location
	now func() time.Time
}

func NewRuleInsightProvider(cfg config.InsightConfig, loc *time.Location) InsightProvider {
	return newRuleInsightProvider(cfg, loc, time.Now)
}

func newRuleInsightProvider(cfg config.InsightConfig, loc *time.Location, now func() time.Time) *ruleInsightProvider {
	if cfg.HighRiskThreshold <= 0 {
		cfg.HighRiskThreshold = display.HighRiskScore
	}
	if cfg.ModerateRiskThreshold <= 0 || cfg.ModerateRiskThreshold > cfg.HighRiskThreshold {
		cfg.ModerateRiskThreshold = display.ModerateRiskScore
	}
	if cfg.LongStayDays <= 0 {
		cfg.LongStayDays = 7
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ruleInsightProvider{cfg: cfg, loc: loc, now: now}
}

func (p *ruleInsightProvider) Name() string {
	return "rules"
}

func (p *ruleInsightProvider) Insights(ctx context.Context, a entity.Admission) ([]entity.Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	insights := []entity.Insight{p.risk(a)}

	if a.Status.IsActive() {
		days := a.StayDays(p.now(), p.loc)
		if days >= p.cfg.LongStayDays {
			insights = append(insights, entity.Insight{
				Category:       "length_of_stay",
				Severity:       entity.InsightModerate,
				Title:          "Extended stay",
				Detail:         fmt.Sprintf("Patient has been admitted for %s.", display.FormatLengthOfStay(days)),
				Recommendation: "Review the care plan and discharge barriers.",
				Badge:          display.Warning,
			})
		}
	}

	switch a.Status {
	case entity.AdmissionStatusReadyForDischarge:
		insights = append(insights, entity.Insight{
			Category:       "discharge",
			Severity:       entity.InsightLow,
			Title:          "Ready for discharge",
			Detail:         "The admission is marked ready for discharge.",
			Recommendation: "Complete the discharge summary and follow-up instructions.",
			Badge:          display.Success,
		})
	case entity.AdmissionStatusUnderObservation:
		insights = append(insights, entity.Insight{
			Category: "monitoring",
			Severity: entity.InsightLow,
			Title:    "Under observation",
			Detail:   "Vitals should be reviewed at each shift change.",
			Badge:    display.Info,
		})
	}

	return insights, nil
}

func (p *ruleInsightProvider) risk(a entity.Admission) entity.Insight {
	if a.AIRiskScore == nil {
		return entity.Insight{
			Category: "risk",
			Severity: entity.InsightLow,
			Title:    "No risk score recorded",
			Detail:   "The admission has no stored risk score.",
			Badge:    display.Secondary,
		}
	}

	score := *a.AIRiskScore
	switch {
	case score >= p.cfg.HighRiskThreshold:
		return entity.Insight{
			Category:       "risk",
			Severity:       entity.InsightHigh,
			Title:          "High risk patient",
			Detail:         fmt.Sprintf("Stored risk score %.1f is at or above %.1f.", score, p.cfg.HighRiskThreshold),
			Recommendation: "Increase monitoring frequency and review with the attending physician.",
			Badge:          display.Danger,
		}
	case score >= p.cfg.ModerateRiskThreshold:
		return entity.Insight{
			Category:       "risk",
			Severity:       entity.InsightModerate,
			Title:          "Moderate risk patient",
			Detail:         fmt.Sprintf("Stored risk score %.1f is at or above %.1f.", score, p.cfg.ModerateRiskThreshold),
			Recommendation: "Keep standard monitoring and reassess daily.",
			Badge:          display.Warning,
		}
	default:
		return entity.Insight{
			Category: "risk",
			Severity: entity.InsightLow,
			Title:    "Low risk patient",
			Detail:   fmt.Sprintf("Stored risk score %.1f is below %.1f.", score, p.cfg.ModerateRiskThreshold),
			Badge:    display.Success,
		}
	}
}
