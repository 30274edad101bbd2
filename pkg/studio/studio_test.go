package studio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/integrations/kolamkar"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

const markup = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0L10 10"/></svg>`

// stubService answers the generation endpoint with markup until fail is set.
func stubService(t *testing.T, fail *atomic.Bool) *kolamkar.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, "server error")
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		io.WriteString(w, markup)
	}))
	t.Cleanup(srv.Close)

	c, err := kolamkar.NewClient(nil, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestStudio_Generate(t *testing.T) {
	var fail atomic.Bool
	s := New(stubService(t, &fail), nil)
	ctx := context.Background()

	if err := s.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	st := s.State()
	if st.Markup != markup || st.Err != "" || !st.HasResult() {
		t.Fatalf("state after success = %+v", st)
	}

	res, err := s.Render(ctx, []string{pipeline.FormatSVG})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.FromMarkup() || string(res.Artifacts[pipeline.FormatSVG]) != markup {
		t.Error("render should emit the generated markup verbatim")
	}
}

func TestStudio_GenerateFailureClearsResult(t *testing.T) {
	var fail atomic.Bool
	s := New(stubService(t, &fail), nil)
	ctx := context.Background()

	if err := s.Generate(ctx); err != nil {
		t.Fatal(err)
	}

	fail.Store(true)
	err := s.Generate(ctx)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "server error") {
		t.Errorf("error = %q, want the service text", err)
	}
	if !errors.Is(err, errors.ErrCodeRemote) {
		t.Errorf("code = %s, want REMOTE_ERROR", errors.GetCode(err))
	}

	st := s.State()
	if st.Markup != "" || st.HasResult() {
		t.Error("prior result should be cleared")
	}
	if st.Err != "server error" {
		t.Errorf("recorded error = %q", st.Err)
	}

	// Without markup the local pipeline draws the parameters.
	res, err := s.Render(ctx, []string{pipeline.FormatSVG})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.FromMarkup() || res.Stats.Points != 81 {
		t.Errorf("render = %+v, want a local scene", res.Stats)
	}

	fail.Store(false)
	if err := s.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Err != "" || st.Markup != markup {
		t.Errorf("recovery state = %+v", st)
	}
}

func TestStudio_GenerateWithoutService(t *testing.T) {
	s := New(nil, nil)
	err := s.Generate(context.Background())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Generate() = %v, want UNSUPPORTED", err)
	}
	if s.State().Err == "" {
		t.Error("error should be recorded")
	}
}

func TestStudio_SetParams(t *testing.T) {
	s := New(nil, nil)
	before := s.State().Params

	err := s.SetParams(kolam.Params{Symmetry: "5-fold"})
	if !errors.Is(err, errors.ErrCodeInvalidSymmetry) {
		t.Errorf("SetParams() = %v", err)
	}
	if diff := cmp.Diff(before, s.State().Params); diff != "" {
		t.Errorf("invalid params changed state:\n%s", diff)
	}

	p := kolam.DefaultParams()
	p.Symmetry = kolam.SymmetryRadial
	if err := s.SetParams(p); err != nil {
		t.Fatal(err)
	}
	if s.State().Params.Symmetry != kolam.SymmetryRadial {
		t.Error("params not updated")
	}
}

func TestStudio_SetDesign(t *testing.T) {
	s := New(nil, nil)
	if err := s.SetDesign(design.Kambi{RhombusSize: 11, DotSize: 2}); !errors.Is(err, errors.ErrCodeInvalidDesign) {
		t.Errorf("out of range rhombus = %v", err)
	}
	if err := s.SetDesign(nil); err == nil {
		t.Error("nil design should fail")
	}
	if err := s.SetDesign(design.DefaultKambi()); err != nil {
		t.Fatal(err)
	}
	if got := s.State().Design.Type; got != string(design.FamilyKambi) {
		t.Errorf("design type = %q", got)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	s := New(nil, nil)
	s.SetDesign(design.DefaultGroupTheory())
	st := s.State()
	st.Name = "diwali"
	st.Markup = markup
	if err := store.Set(st); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get("diwali")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(st, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("saved state (-want +got):\n%s", diff)
	}

	restored, err := Restore(nil, nil, got)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.State().Markup != markup {
		t.Error("restored studio lost its markup")
	}

	names, _ := store.List()
	if diff := cmp.Diff([]string{"diwali"}, names); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}

	if err := store.Delete("diwali"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("diwali"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if err := store.Set(State{Name: "../escape"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("path-like name = %v", err)
	}
}
