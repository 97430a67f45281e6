package editor

import "testing"

func TestResizeSeedsFieldsFromCurrentDimensions(t *testing.T) {
	s := openSession(t, 2000, 1333)
	r := s.Resize()
	r.Activate()
	w, h := r.Fields()
	if w != "2000" || h != "1333" {
		t.Fatalf("fields seeded as %s x %s, want 2000 x 1333", w, h)
	}
}

func TestResizeRatioLockSyncsFields(t *testing.T) {
	s := openSession(t, 2000, 1333)
	r := s.Resize()
	r.Activate()

	r.SetWidth("1000")
	if _, h := r.Fields(); h != "667" {
		t.Fatalf("height field %s, want 667", h)
	}

	r.SetHeight("1333")
	if w, _ := r.Fields(); w != "2000" {
		t.Fatalf("width field %s, want 2000", w)
	}
}

func TestResizeWithoutRatioLockLeavesOtherField(t *testing.T) {
	s := openSession(t, 800, 600)
	r := s.Resize()
	r.Activate()
	r.SetKeepRatio(false)
	r.SetWidth("100")
	if _, h := r.Fields(); h != "600" {
		t.Fatalf("unlocked resize touched height: %s", h)
	}
}

func TestResizeApplyRejectsNonNumeric(t *testing.T) {
	s := openSession(t, 800, 600)
	r := s.Resize()
	r.Activate()
	r.SetKeepRatio(false)
	r.SetWidth("12a")

	if err := r.Apply(); err != ErrBadDimensions {
		t.Fatalf("expected ErrBadDimensions, got %v", err)
	}
	if s.History().Len() != 1 {
		t.Fatal("rejected resize must not push")
	}
	if !r.Active() {
		t.Fatal("tool should stay active after a rejected apply")
	}
}

func TestResizeApplyCommitsLogicalDimensions(t *testing.T) {
	s := openSession(t, 800, 600)
	r := s.Resize()
	r.Activate()
	r.SetWidth("400")
	if err := r.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	st := s.Current()
	if st.Width != 400 || st.Height != 300 || st.Mode != ModeResize {
		t.Fatalf("resize state %+v", st)
	}
	if st.Image != nil {
		t.Fatal("resize must not resample pixel data")
	}
	if r.Active() {
		t.Fatal("tool should deactivate after apply")
	}
}

func TestResizeCancelDiscardsPendingEdits(t *testing.T) {
	s := openSession(t, 800, 600)
	r := s.Resize()
	r.Activate()
	r.SetWidth("123")
	r.Cancel()
	if r.Active() {
		t.Fatal("cancel left the tool active")
	}
	if s.History().Len() != 1 {
		t.Fatal("cancel must not push")
	}
}

func TestResizeRatioLockUsesRatioAfterCrop(t *testing.T) {
	s := openSession(t, 1000, 500)
	c := s.Crop()
	c.Activate(RatioCustom)
	c.box = &CropBox{Left: 0, Top: 0, Width: 50, Height: 100}
	if err := c.Apply(); err != nil {
		t.Fatalf("crop: %v", err)
	}

	r := s.Resize()
	r.Activate()
	r.SetWidth("250")
	if _, h := r.Fields(); h != "250" {
		t.Fatalf("ratio lock ignored post-crop ratio, height %s", h)
	}
}
