package threads

import (
	"sort"

	"github.com/huangsam/reviewlens/schema"
)

// Metrics collapses response threads into latency statistics. Only
// resolved threads contribute to the averages and the distribution; every
// thread contributes to totals, the response rate and the daily rollup.
func Metrics(all []schema.ResponseThread) schema.ResponseTimeMetrics {
	m := schema.ResponseTimeMetrics{TotalComments: len(all)}
	if len(all) == 0 {
		return m
	}

	var hours []float64
	for _, t := range all {
		if !t.Resolved {
			m.UnresolvedComments++
			continue
		}
		m.RespondedComments++
		hours = append(hours, t.ResponseHours)
		bucketResponse(&m.Distribution, t.ResponseHours)
	}
	m.ResponseRate = float64(m.RespondedComments) / float64(m.TotalComments) * 100
	m.CommentsByDay = dailyRollup(all)

	if len(hours) == 0 {
		return m
	}
	sort.Float64s(hours)
	m.FastestResponse = hours[0]
	m.SlowestResponse = hours[len(hours)-1]
	m.AvgResponseTime = mean(hours)
	m.MedianResponseTime = median(hours)
	return m
}

func bucketResponse(d *schema.ResponseDistribution, hours float64) {
	switch {
	case hours < 1:
		d.Under1Hour++
	case hours < 4:
		d.Under4Hours++
	case hours < 24:
		d.Under24Hours++
	case hours < 72:
		d.Under3Days++
	default:
		d.Over3Days++
	}
}

func mean(sorted []float64) float64 {
	sum := 0.0
	for _, h := range sorted {
		sum += h
	}
	return sum / float64(len(sorted))
}

// median expects a sorted slice. An even count averages the middle pair.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// dailyRollup groups threads by the calendar day the reviewer commented,
// in the comment's own timezone, sorted by date ascending.
func dailyRollup(all []schema.ResponseThread) []schema.DayActivity {
	type dayAgg struct {
		received  int
		responded int
		hoursSum  float64
	}
	days := map[string]*dayAgg{}
	for _, t := range all {
		key := t.CommentedAt.Format("2006-01-02")
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{}
			days[key] = agg
		}
		agg.received++
		if t.Resolved {
			agg.responded++
			agg.hoursSum += t.ResponseHours
		}
	}

	out := make([]schema.DayActivity, 0, len(days))
	for date, agg := range days {
		day := schema.DayActivity{
			Date:              date,
			CommentsReceived:  agg.received,
			CommentsResponded: agg.responded,
		}
		if agg.responded > 0 {
			day.AvgResponseTime = agg.hoursSum / float64(agg.responded)
		}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
