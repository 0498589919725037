package module

import (
	"context"
	"net/http/httptest"
	"testing"

	"rapih/internal/modkit"
	"rapih/internal/platform/config"
	phttp "rapih/internal/platform/net/http"
	"rapih/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

type fakeCH struct{ store.Clickhouse }

func (fakeCH) Ping(context.Context) error { return nil }

func TestModule_Mount(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New(), CH: fakeCH{}})
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name = %q ports = %v", m.Name(), m.Ports())
	}
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	for _, p := range []string{"/meta/health", "/meta/ready", "/meta/version", "/meta/service"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", p, nil))
		if rec.Code != 200 {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}
}

func TestPinger(t *testing.T) {
	if pinger(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	if pinger(fakeCH{}) == nil {
		t.Fatalf("fakeCH pings")
	}
	if pinger(struct{}{}) != nil {
		t.Fatalf("struct{} does not ping")
	}
}
