package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/session"
)

func newTestNavigator(t *testing.T) *Navigator {
	t.Helper()
	st, err := session.OpenBadger("", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewNavigator(st, zerolog.Nop())
}

func TestParsePage(t *testing.T) {
	for _, p := range []Page{PageOverview, PageAdvancedFilter} {
		got, err := ParsePage(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePage(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePage("settings"); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func TestNavigatorEffects(t *testing.T) {
	ctx := context.Background()
	nav := newTestNavigator(t)
	id := session.NewID()

	steps := []struct {
		name   string
		target *Page
		want   Visit
	}{
		{"first visit", nil, Visit{PageOverview, EffectBalloons}},
		{"reload", nil, Visit{PageOverview, EffectNone}},
		{"same page", ptr(PageOverview), Visit{PageOverview, EffectNone}},
		{"to advanced", ptr(PageAdvancedFilter), Visit{PageAdvancedFilter, EffectSnow}},
		{"stay advanced", nil, Visit{PageAdvancedFilter, EffectNone}},
		{"back", ptr(PageOverview), Visit{PageOverview, EffectBalloons}},
	}
	for _, s := range steps {
		var (
			got Visit
			err error
		)
		if s.target == nil {
			got, err = nav.Current(ctx, id)
		} else {
			got, err = nav.Switch(ctx, id, *s.target)
		}
		if err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if got != s.want {
			t.Fatalf("%s: got %+v, want %+v", s.name, got, s.want)
		}
	}
}

func TestNavigatorSessionsIndependent(t *testing.T) {
	ctx := context.Background()
	nav := newTestNavigator(t)
	a, b := session.NewID(), session.NewID()

	if _, err := nav.Switch(ctx, a, PageAdvancedFilter); err != nil {
		t.Fatal(err)
	}
	got, err := nav.Current(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Page != PageOverview {
		t.Fatalf("session b sees page %v set by session a", got.Page)
	}

	if err := nav.Forget(ctx, a); err != nil {
		t.Fatal(err)
	}
	again, _ := nav.Current(ctx, a)
	if again != (Visit{PageOverview, EffectBalloons}) {
		t.Fatalf("forgotten session should start over, got %+v", again)
	}
}
