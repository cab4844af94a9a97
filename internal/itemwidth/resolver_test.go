package itemwidth

import "testing"

func TestNoOutputWithoutMinWidth(t *testing.T) {
	r := New()
	if _, ok := r.SetStretch(true); ok {
		t.Fatalf("expected no emission without a min width")
	}
	if _, ok := r.SetColumns(3); ok {
		t.Fatalf("expected no emission without a min width")
	}
}

func TestMinWidthWhenNotStretching(t *testing.T) {
	r := New()
	w, ok := r.SetMinWidth(300)
	if !ok || w != 300 {
		t.Fatalf("got %v %v", w, ok)
	}
	if _, ok := r.SetGrid(true); ok {
		t.Fatalf("unchanged width must not be emitted again")
	}
}

func TestStretchFillsContainer(t *testing.T) {
	r := New()
	r.SetMinWidth(300)
	r.SetGrid(true)
	r.SetStretch(true)
	r.SetColumns(3)
	w, ok := r.SetContainerWidth(1000)
	// floor((1000 - 20) / 3)
	if !ok || w != 326 {
		t.Fatalf("got %v %v", w, ok)
	}
}

func TestZeroColumnsFallsBackToMinWidth(t *testing.T) {
	r := New()
	r.SetMinWidth(250)
	r.SetGrid(true)
	r.SetStretch(true)
	r.SetContainerWidth(1000)
	w, _ := r.SetColumns(0)
	if w != 250 {
		t.Fatalf("got %v", w)
	}
}

func TestContainerWidthIgnoredWhileNotStretching(t *testing.T) {
	r := New()
	r.SetMinWidth(300)
	r.SetGrid(true)
	if _, ok := r.SetContainerWidth(2000); ok {
		t.Fatalf("container width must be ignored while stretch is off")
	}
	r.SetColumns(2)
	// The container width was never recorded, so stretching uses 0.
	w, ok := r.SetStretch(true)
	if !ok || w != -10 {
		t.Fatalf("got %v %v", w, ok)
	}
	w, _ = r.SetContainerWidth(820)
	if w != 400 {
		t.Fatalf("got %v", w)
	}
}

func TestListNeverStretches(t *testing.T) {
	r := New()
	r.SetMinWidth(300)
	r.SetStretch(true)
	r.SetContainerWidth(5000)
	if r.Width() != 300 {
		t.Fatalf("got %v", r.Width())
	}
}

func TestCustomInset(t *testing.T) {
	r := New()
	r.Inset = 0
	r.SetMinWidth(300)
	r.SetGrid(true)
	r.SetStretch(true)
	w, _ := r.SetContainerWidth(900)
	if w != 900 {
		t.Fatalf("got %v", w)
	}
}
