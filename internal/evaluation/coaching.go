package evaluation

import "github.com/ledgersmith/parity/internal/domain"

// Gap sizes separating the three single-failure coaching responses.
const (
	gapLarge = 15.0
	gapSmall = 5.0
)

// CoachingTip selects one advisory line from the verdict. The checks run in
// strict priority order — all-met short-circuits, then three failures, then
// the two-failure pairs, and only then the single-metric gap analysis —
// because several conditions can be true at once and the caller shows
// exactly one line.
func CoachingTip(v domain.VictoryConditions, thresholds domain.Thresholds) string {
	if v.AllMet {
		return "Perfect balance! Every stakeholder group has signed off on this deal."
	}

	parityFail := !v.ParityMet
	bigFail := !v.BigSatisfactionMet
	smallFail := !v.SmallViabilityMet

	switch {
	case parityFail && bigFail && smallFail:
		return "Nothing works yet — nobody is happy. Reset toward moderate sharing and adjust one lever at a time."
	case parityFail && bigFail:
		return "Parity is short and the big markets are already angry. More sharing won't fly; try the weighted distribution or a luxury tax instead."
	case parityFail && smallFail:
		return "The gap is too wide and small markets can't survive it. Raise the sharing percentage — both problems have the same cure."
	case bigFail && smallFail:
		return "Big markets feel robbed while small markets still starve. Ease the sharing percentage back and lean on the tax to move money."
	}

	// Exactly one metric is failing from here on.
	switch {
	case parityFail:
		return gapTip(thresholds.TargetParity-v.Parity,
			"The revenue gap is still huge. Push sharing up substantially to lift the bottom of the league.",
			"Parity is closing but not there. Nudge sharing upward or switch to the weighted split.",
			"Almost there on parity — a tiny bit more sharing should do it.")
	case bigFail:
		return gapTip(float64(thresholds.MinBigSatisfaction-v.BigSatisfaction),
			"Big markets are in open revolt. Cut the sharing percentage well below the pain line.",
			"Big markets are grumbling. Trim sharing a few points or shift the burden to the tax.",
			"Big markets are nearly on board — back off the sharing slider just a touch.")
	}
	return gapTip(float64(thresholds.MinSmallViability-v.SmallViability),
		"Small markets are far below viable revenue. They need much more help — raise sharing or lower the tax threshold.",
		"Small markets are close to viable. A few more points of sharing closes the gap.",
		"Small markets are a hair from viable — one small adjustment should land it.")
}

// gapTip buckets a threshold shortfall into large / medium / small responses.
func gapTip(gap float64, large, medium, small string) string {
	switch {
	case gap > gapLarge:
		return large
	case gap > gapSmall:
		return medium
	}
	return small
}

// Warning severity bands around a threshold. A metric that has just cleared
// its threshold still warns as fragile; parity never warns.
const (
	warnMildAbove = 10.0
	warnSevereGap = 5.0
)

// Warnings returns zero, one or two warning lines for the big-satisfaction
// and small-viability metrics. A metric below threshold−5 warns severely;
// one between threshold−5 (inclusive) and threshold+10 (exclusive) warns
// mildly; anything higher is safe.
func Warnings(metrics domain.LeagueMetrics, thresholds domain.Thresholds) []string {
	var warnings []string

	if w := bandWarning(float64(metrics.BigSatisfaction), float64(thresholds.MinBigSatisfaction),
		"Big-market owners are close to walking away from the deal.",
		"Big-market owners are threatening to block the next TV contract."); w != "" {
		warnings = append(warnings, w)
	}
	if w := bandWarning(float64(metrics.SmallViability), float64(thresholds.MinSmallViability),
		"Several small markets are hovering at the edge of viability.",
		"Small markets cannot field competitive rosters at this revenue."); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

func bandWarning(actual, threshold float64, mild, severe string) string {
	switch {
	case actual < threshold-warnSevereGap:
		return severe
	case actual < threshold+warnMildAbove:
		return mild
	}
	return ""
}
