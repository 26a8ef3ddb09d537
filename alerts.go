package tally

import "fmt"

// alerts scans the aggregated data for conditions worth flagging. Categories
// below the sample floor never raise failure-rate alerts, so tiny categories
// cannot dominate the alert list.
func (t *Aggregator) alerts(info *ReportInfo) []*Alert {
	var alerts []*Alert

	maxRate := t.config.FloatValue(MaxFailureRate, 0.20)
	minSample := t.config.IntValue(MinAlertSample, 5)
	for _, name := range info.SortedCategories() {
		category := info.Categories[name]
		if category.Total < minSample || category.Failed == 0 {
			continue
		}
		if rate := category.FailureRate(); rate > maxRate {
			alerts = append(alerts, &Alert{
				Type:     AlertHighFailureRate,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("category %s has a failure rate of %.1f%% (%d of %d cases)",
					name, rate*100, category.Failed, category.Total),
			})
		}
	}

	maxDuration := t.config.FloatValue(MaxCaseDuration, 300)
	for _, c := range info.Cases {
		if c.Duration > maxDuration {
			alerts = append(alerts, &Alert{
				Type:     AlertSlowTest,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("%s took %.2fs to complete", c.Location(), c.Duration),
			})
		}
	}
	return alerts
}
