package session

import (
	"math"
	"time"
)

// WeakTopicLimit caps the number of weak topics in a Dashboard.
const WeakTopicLimit = 5

// Recommendation thresholds.
const (
	reviewWrongThreshold = 3
	slowAverageThreshold = 60 * time.Second
)

// Stats are the headline counters shown beside the card.
type Stats struct {
	Total    int
	Answered int // positions answered in ModeAll
	Wrong    int // ids ever missed
	Accuracy int // percent, (Answered-Wrong)/Answered rounded; 0 when nothing answered
}

// WeakTopic is a missed question listed on the dashboard.
type WeakTopic struct {
	ID          string
	Title       string
	LastCorrect bool
}

// Dashboard holds the timing aggregates and advice shown on the analytics
// screen.
type Dashboard struct {
	// TimedQuestions counts questions with recorded time.
	TimedQuestions int

	Average time.Duration
	Total   time.Duration
	Fastest time.Duration
	Slowest time.Duration

	WeakTopics      []WeakTopic
	Recommendations []string
}

// Stats computes the headline counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		Total:    e.catalog.Len(),
		Answered: len(e.state.CompletedAll),
		Wrong:    len(e.state.Missed),
	}
	if st.Answered > 0 {
		st.Accuracy = int(math.Round(100 * float64(st.Answered-st.Wrong) / float64(st.Answered)))
		if st.Accuracy < 0 {
			st.Accuracy = 0
		}
	}
	return st
}

// Dashboard builds the analytics summary from per-question timing.
func (e *Engine) Dashboard() Dashboard {
	var d Dashboard
	for _, qs := range e.state.Analytics {
		if qs.TimeSpent <= 0 {
			continue
		}
		if d.TimedQuestions == 0 || qs.TimeSpent < d.Fastest {
			d.Fastest = qs.TimeSpent
		}
		if qs.TimeSpent > d.Slowest {
			d.Slowest = qs.TimeSpent
		}
		d.Total += qs.TimeSpent
		d.TimedQuestions++
	}
	if d.TimedQuestions > 0 {
		d.Average = d.Total / time.Duration(d.TimedQuestions)
	}

	var missed int
	for _, q := range e.catalog.Questions {
		if !e.state.Missed[q.ID] {
			continue
		}
		missed++
		if len(d.WeakTopics) < WeakTopicLimit {
			wt := WeakTopic{ID: q.ID, Title: q.Title}
			if qs, ok := e.state.Analytics[q.ID]; ok {
				wt.LastCorrect = qs.LastCorrect
			}
			d.WeakTopics = append(d.WeakTopics, wt)
		}
	}

	if missed > reviewWrongThreshold {
		d.Recommendations = append(d.Recommendations, "Revisit the questions you missed and practice them again.")
	}
	if d.Average.Round(time.Second) > slowAverageThreshold {
		d.Recommendations = append(d.Recommendations, "Your average time is high. Try answering a little faster.")
	}
	if n := e.catalog.Len(); n > 0 && len(e.state.CompletedAll) == n && missed == 0 {
		d.Recommendations = append(d.Recommendations, "Perfect! Every question answered correctly.")
	}
	if len(d.Recommendations) == 0 {
		d.Recommendations = append(d.Recommendations, "Great progress. Keep going!")
	}
	return d
}
