package studio

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"researchfeed/pkg/posts"
	"researchfeed/pkg/slides"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManagerWithQuietPeriod(zap.NewNop().Sugar(), 10*time.Millisecond)
	t.Cleanup(m.CloseAll)
	return m
}

func editingSession(t *testing.T) *Session {
	t.Helper()
	s := testManager(t).Open()
	if err := s.StartBlank("research"); err != nil {
		t.Fatalf("StartBlank: %v", err)
	}
	return s
}

func feedStub(id string) func(*posts.Post) (string, error) {
	return func(*posts.Post) (string, error) { return id, nil }
}

func TestOpenStartsInTemplateSelection(t *testing.T) {
	s := testManager(t).Open()

	if s.Mode() != ModeTemplateSelection {
		t.Errorf("mode = %q, want %q", s.Mode(), ModeTemplateSelection)
	}
	if err := s.SetTitle("too early"); !errors.Is(err, ErrNoDeck) {
		t.Errorf("editing before a deck exists: err = %v, want ErrNoDeck", err)
	}
}

func TestPublishGate(t *testing.T) {
	s := editingSession(t)

	if s.CanPublish() {
		t.Error("deck without a title must not be publishable")
	}
	if _, _, err := s.PublishToFeed(1, feedStub("p1")); !errors.Is(err, ErrNotReady) {
		t.Errorf("publish without title: err = %v, want ErrNotReady", err)
	}

	if err := s.SetTitle("Batch 3 Results"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if !s.CanPublish() {
		t.Error("titled deck with one slide must be publishable")
	}
}

func TestPublishBlankDeckNeedsConfirm(t *testing.T) {
	s := editingSession(t)
	if err := s.SetTitle("All Blank"); err != nil {
		t.Fatal(err)
	}
	// strip the starter title so the only slide counts as blank
	if err := s.UpdateField(slides.FieldTitle, ""); err != nil {
		t.Fatal(err)
	}

	post, needsConfirm, err := s.PublishToFeed(1, feedStub("p1"))
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if !needsConfirm || post != nil {
		t.Fatalf("blank deck publish = (%v, %v), want parked confirmation", post, needsConfirm)
	}
	if s.Mode() != ModeConfirmingPublish {
		t.Errorf("mode = %q, want %q", s.Mode(), ModeConfirmingPublish)
	}

	post, needsConfirm, err = s.PublishToFeed(1, feedStub("p1"))
	if err != nil || needsConfirm {
		t.Fatalf("confirmed publish = (_, %v, %v)", needsConfirm, err)
	}
	if post == nil || post.ID != "p1" || post.Presentation == nil {
		t.Fatalf("published post = %+v", post)
	}
	if s.Mode() != ModeEditing {
		t.Errorf("mode after publish = %q, want %q", s.Mode(), ModeEditing)
	}
}

func TestCancelPublishReturnsToEditing(t *testing.T) {
	s := editingSession(t)
	if err := s.SetTitle("All Blank"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(slides.FieldTitle, ""); err != nil {
		t.Fatal(err)
	}

	if _, needsConfirm, _ := s.PublishToFeed(1, feedStub("p1")); !needsConfirm {
		t.Fatal("expected parked confirmation")
	}

	s.CancelPublish()
	if s.Mode() != ModeEditing {
		t.Errorf("mode after cancel = %q, want %q", s.Mode(), ModeEditing)
	}
	if err := s.UpdateField(slides.FieldText, "back to work"); err != nil {
		t.Errorf("editing after cancel: %v", err)
	}
}

func TestRequestCloseWithUnsavedChanges(t *testing.T) {
	m := NewManagerWithQuietPeriod(zap.NewNop().Sugar(), time.Hour)
	t.Cleanup(m.CloseAll)

	s := m.Open()
	if s.RequestClose() {
		t.Error("closing before a deck exists must not ask for confirmation")
	}

	if err := s.StartBlank("research"); err != nil {
		t.Fatal(err)
	}
	if s.RequestClose() {
		t.Error("closing a just-seeded deck must not ask for confirmation")
	}

	if err := s.UpdateField(slides.FieldText, "unsaved"); err != nil {
		t.Fatal(err)
	}
	if !s.RequestClose() {
		t.Fatal("closing with unsaved changes must park for confirmation")
	}
	if s.Mode() != ModeConfirmingDiscard {
		t.Errorf("mode = %q, want %q", s.Mode(), ModeConfirmingDiscard)
	}

	s.CancelDiscard()
	if s.Mode() != ModeEditing {
		t.Errorf("mode after cancel = %q, want %q", s.Mode(), ModeEditing)
	}

	// asking again while already parked goes through
	s.UpdateField(slides.FieldText, "still unsaved")
	if !s.RequestClose() {
		t.Fatal("expected parked confirmation again")
	}
	if s.RequestClose() {
		t.Error("repeated request is the confirmation and must proceed")
	}
}

func TestInlineEditCommitOnNavigate(t *testing.T) {
	s := editingSession(t)
	if err := s.AddSlide(); err != nil {
		t.Fatal(err)
	}
	if err := s.Prev(); err != nil {
		t.Fatal(err)
	}

	if err := s.StartInlineEdit(slides.FieldText); err != nil {
		t.Fatal(err)
	}
	if err := s.TypeInlineEdit("typed on slide one"); err != nil {
		t.Fatal(err)
	}

	// moving away must flush the staged value into the slide it was
	// started on, not the destination
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}

	d := s.Deck()
	if d.Slides[0].Content.Text != "typed on slide one" {
		t.Errorf("slide 0 text = %q, staged edit lost on navigate", d.Slides[0].Content.Text)
	}
	if d.Slides[1].Content.Text != "" {
		t.Errorf("slide 1 text = %q, staged edit landed on wrong slide", d.Slides[1].Content.Text)
	}
	if _, ok := s.InlineEditing(); ok {
		t.Error("inline edit still live after navigation")
	}
}

func TestInlineEditDiscard(t *testing.T) {
	s := editingSession(t)
	if err := s.UpdateField(slides.FieldText, "original"); err != nil {
		t.Fatal(err)
	}

	if err := s.StartInlineEdit(slides.FieldText); err != nil {
		t.Fatal(err)
	}
	if err := s.TypeInlineEdit("never mind"); err != nil {
		t.Fatal(err)
	}
	if err := s.DiscardInlineEdit(); err != nil {
		t.Fatal(err)
	}

	if got := s.Deck().Slides[0].Content.Text; got != "original" {
		t.Errorf("text = %q after discard, want %q", got, "original")
	}
}

func TestStartInlineEditCommitsPrevious(t *testing.T) {
	s := editingSession(t)

	if err := s.StartInlineEdit(slides.FieldTitle); err != nil {
		t.Fatal(err)
	}
	if err := s.TypeInlineEdit("Committed Title"); err != nil {
		t.Fatal(err)
	}
	if err := s.StartInlineEdit(slides.FieldText); err != nil {
		t.Fatal(err)
	}

	if got := s.Deck().Slides[0].Content.Title; got != "Committed Title" {
		t.Errorf("title = %q, want the first edit committed", got)
	}
	if field, ok := s.InlineEditing(); !ok || field != slides.FieldText {
		t.Errorf("inline editing = (%q, %v), want text field live", field, ok)
	}
}

func TestPreviewBlocksEdits(t *testing.T) {
	s := editingSession(t)

	if err := s.Preview(); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(slides.FieldText, "x"); !errors.Is(err, ErrWrongMode) {
		t.Errorf("edit in preview: err = %v, want ErrWrongMode", err)
	}
	if err := s.Next(); err != nil {
		t.Errorf("navigation in preview: %v", err)
	}

	if err := s.ClosePreview(); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(slides.FieldText, "x"); err != nil {
		t.Errorf("edit after closing preview: %v", err)
	}
}

func TestNavigationStaysInBounds(t *testing.T) {
	s := editingSession(t)

	if err := s.Prev(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("current = %d after Prev at first slide", s.CurrentIndex())
	}

	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("current = %d after Next at last slide", s.CurrentIndex())
	}
}

func TestMoveSlideBadIndex(t *testing.T) {
	s := editingSession(t)

	if err := s.MoveSlide(0, 5); !errors.Is(err, ErrBadIndex) {
		t.Errorf("move to out-of-range index: err = %v, want ErrBadIndex", err)
	}
}

func TestAutoSaveDebounce(t *testing.T) {
	s := editingSession(t)

	if !s.Saved() {
		t.Fatal("fresh deck should start saved")
	}

	if err := s.UpdateField(slides.FieldText, "dirty now"); err != nil {
		t.Fatal(err)
	}
	if s.Saved() {
		t.Fatal("edit must flip the indicator to unsaved")
	}

	deadline := time.Now().Add(time.Second)
	for !s.Saved() {
		if time.Now().After(deadline) {
			t.Fatal("auto-save never fired after the quiet period")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestCloseStopsAutoSave(t *testing.T) {
	m := NewManagerWithQuietPeriod(zap.NewNop().Sugar(), 10*time.Millisecond)
	t.Cleanup(m.CloseAll)

	s := m.Open()
	if err := s.StartBlank("research"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(slides.FieldText, "dirty"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	time.Sleep(50 * time.Millisecond)
	if s.Saved() {
		t.Error("auto-save fired into a closed session")
	}
	if err := s.UpdateField(slides.FieldText, "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("edit after close: err = %v, want ErrClosed", err)
	}
}

func TestHandleKeyShortcuts(t *testing.T) {
	s := editingSession(t)

	if action, _ := s.HandleKey(KeyEvent{Key: "Enter"}); action != ActionNone {
		t.Errorf("unmodified Enter = %q, want no action", action)
	}

	action, err := s.HandleKey(KeyEvent{Key: "Enter", Mod: true})
	if err != nil || action != ActionAddSlide {
		t.Fatalf("mod+Enter = (%q, %v)", action, err)
	}
	if s.Deck().SlideCount() != 2 {
		t.Errorf("slide count = %d after mod+Enter", s.Deck().SlideCount())
	}

	action, err = s.HandleKey(KeyEvent{Key: "d", Mod: true})
	if err != nil || action != ActionDuplicate {
		t.Fatalf("mod+d = (%q, %v)", action, err)
	}
	if s.Deck().SlideCount() != 3 {
		t.Errorf("slide count = %d after mod+d", s.Deck().SlideCount())
	}

	action, err = s.HandleKey(KeyEvent{Key: "ArrowLeft", Mod: true})
	if err != nil || action != ActionNavigate {
		t.Fatalf("mod+ArrowLeft = (%q, %v)", action, err)
	}

	if action, _ = s.HandleKey(KeyEvent{Key: "s", Mod: true}); action != ActionExport {
		t.Errorf("mod+s = %q, want %q", action, ActionExport)
	}

	if err := s.SetTheme(string(slides.ThemeForest)); err != nil {
		t.Fatal(err)
	}
	if action, err = s.HandleKey(KeyEvent{Key: "t", Mod: true}); err != nil || action != ActionThemeAll {
		t.Fatalf("mod+t = (%q, %v)", action, err)
	}
	for i, sl := range s.Deck().Slides {
		if sl.Theme != slides.ThemeForest {
			t.Errorf("slide %d theme = %q after mod+t", i, sl.Theme)
		}
	}
}

func TestAttachSnapshotIsDetached(t *testing.T) {
	// quiet period long enough that auto-save cannot fire mid-test
	m := NewManagerWithQuietPeriod(zap.NewNop().Sugar(), time.Hour)
	t.Cleanup(m.CloseAll)

	s := m.Open()
	if err := s.StartBlank("research"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTitle("Attached Deck"); err != nil {
		t.Fatal(err)
	}

	snap, dirty, err := s.AttachSnapshot()
	if err != nil {
		t.Fatalf("AttachSnapshot: %v", err)
	}
	if !dirty {
		t.Error("session with fresh edits should report dirty")
	}

	if err := s.UpdateField(slides.FieldTitle, "changed after attach"); err != nil {
		t.Fatal(err)
	}
	if snap.Slides[0].Content.Title == "changed after attach" {
		t.Error("attached snapshot follows later session edits")
	}
	if snap.Title != "Attached Deck" {
		t.Errorf("snapshot title = %q", snap.Title)
	}
}

func TestExportFilenameFromTitle(t *testing.T) {
	s := editingSession(t)
	if err := s.SetTitle("My Research Findings!"); err != nil {
		t.Fatal(err)
	}

	filename, data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename != "my-research-findings.json" {
		t.Errorf("filename = %q", filename)
	}
	if len(data) == 0 {
		t.Error("export produced no data")
	}
}

func TestManagerCloseForgetsSession(t *testing.T) {
	m := testManager(t)
	s := m.Open()

	m.Close(s.ID())

	if _, ok := m.Get(s.ID()); ok {
		t.Error("closed session still addressable")
	}
	if !s.Closed() {
		t.Error("session not marked closed")
	}
}

func TestResumeClonesSnapshot(t *testing.T) {
	src := editingSession(t)
	if err := src.SetTitle("Original"); err != nil {
		t.Fatal(err)
	}
	snap, _, err := src.AttachSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	s := testManager(t).Open()
	if err := s.Resume(snap, "research"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if s.Mode() != ModeEditing {
		t.Errorf("mode = %q after resume", s.Mode())
	}

	if err := s.UpdateField(slides.FieldTitle, "edited copy"); err != nil {
		t.Fatal(err)
	}
	if snap.Slides[0].Content.Title == "edited copy" {
		t.Error("resumed session shares slides with the snapshot")
	}
}
