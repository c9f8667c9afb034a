package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/metrics"
	"github.com/Clark-Hu/movies-dashboard/internal/session"
)

// Page is the dashboard view a session is looking at.
type Page int

const (
	PageOverview Page = iota
	PageAdvancedFilter
)

var pageNames = [...]string{
	PageOverview:       "overview",
	PageAdvancedFilter: "advanced",
}

func (p Page) String() string {
	if p >= 0 && int(p) < len(pageNames) {
		return pageNames[p]
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// ParsePage parses a page name.
func ParsePage(s string) (Page, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range pageNames {
		if n == name {
			return Page(i), nil
		}
	}
	return PageOverview, fmt.Errorf("unknown page %q", s)
}

// Effect is the one-shot animation shown when a page is entered.
type Effect string

const (
	EffectNone     Effect = ""
	EffectBalloons Effect = "balloons"
	EffectSnow     Effect = "snow"
)

func (p Page) entryEffect() Effect {
	if p == PageAdvancedFilter {
		return EffectSnow
	}
	return EffectBalloons
}

// Visit is a session's page after a navigation call.
type Visit struct {
	Page   Page
	Effect Effect
}

// Navigator tracks the current page per session. There is no process-wide
// page; every call names the session it acts on.
type Navigator struct {
	store  session.Store
	logger zerolog.Logger
}

// NewNavigator builds a Navigator over a session store.
func NewNavigator(store session.Store, logger zerolog.Logger) *Navigator {
	return &Navigator{store: store, logger: logger.With().Str("component", "navigator").Logger()}
}

// Current returns the session's page. A session's first visit lands on the
// overview and fires its entry effect once.
func (n *Navigator) Current(ctx context.Context, sessionID string) (Visit, error) {
	return n.visit(ctx, sessionID, nil)
}

// Switch moves the session to page. Changing page re-arms the entry effect;
// staying on the same page does not.
func (n *Navigator) Switch(ctx context.Context, sessionID string, page Page) (Visit, error) {
	return n.visit(ctx, sessionID, &page)
}

func (n *Navigator) visit(ctx context.Context, sessionID string, target *Page) (Visit, error) {
	var (
		out     Visit
		changed bool
	)
	_, err := n.store.Update(ctx, sessionID, func(st *session.State) {
		changed = false
		current, err := ParsePage(st.Page)
		if err != nil {
			// new session or stale value
			current = PageOverview
			st.EffectTriggered = false
		}
		if target != nil && *target != current {
			current = *target
			st.EffectTriggered = false
			changed = true
		}
		st.Page = current.String()
		out = Visit{Page: current}
		if !st.EffectTriggered {
			out.Effect = current.entryEffect()
			st.EffectTriggered = true
		}
	})
	if err != nil {
		return Visit{}, fmt.Errorf("update session: %w", err)
	}
	if changed {
		metrics.RecordPageChange(out.Page.String())
	}
	n.logger.Debug().Str("page", out.Page.String()).Str("effect", string(out.Effect)).Msg("visit")
	return out, nil
}

// Forget drops a session's state.
func (n *Navigator) Forget(ctx context.Context, sessionID string) error {
	if err := n.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}
