package viewer

import (
	"context"
	"fmt"
)

// EventKind names the finite set of UI intents.
type EventKind string

const (
	EventSearchRequested  EventKind = "searchRequested"
	EventSuggestionPicked EventKind = "suggestionPicked"
	EventTabSelected      EventKind = "tabSelected"
	EventMetricChanged    EventKind = "metricChanged"
)

// Event carries one UI intent and its parameters.
type Event struct {
	Kind EventKind

	// suggestionPicked
	CorpCode string

	// searchRequested
	Year       string
	ReportCode string

	// tabSelected
	Tab string

	// metricChanged
	Metric string
}

// Dispatch applies a single event to the session.
// 모든 UI 이벤트는 이 디스패처를 통해서만 상태를 바꾼다.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventSuggestionPicked:
		return s.PickSuggestion(ev.CorpCode)
	case EventSearchRequested:
		s.RunSearch(ctx, ev.Year, ev.ReportCode)
		return nil
	case EventTabSelected:
		s.SelectTab(ev.Tab)
		return nil
	case EventMetricChanged:
		s.ChangeMetric(ev.Metric)
		return nil
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
