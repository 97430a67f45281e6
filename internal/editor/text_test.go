package editor

import (
	"image/color"
	"testing"

	"github.com/example/retouch/internal/render"
)

func TestTextClickCreatesEditingObjectAtPosition(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()

	obj := tool.Click(25, 75)
	if obj == nil {
		t.Fatal("click created no object")
	}
	if len(s.Texts()) != 1 {
		t.Fatalf("collection holds %d objects, want 1", len(s.Texts()))
	}
	if obj.X != 25 || obj.Y != 75 {
		t.Fatalf("object at (%v, %v), want (25, 75)", obj.X, obj.Y)
	}
	if !obj.Editing || obj.Text != "" {
		t.Fatalf("new object should be empty and in edit mode: %+v", obj)
	}
	if obj.ID == "" {
		t.Fatal("object has no identity")
	}
}

func TestTextClickClampsPosition(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	obj := tool.Click(-10, 140)
	if obj.X != 0 || obj.Y != 100 {
		t.Fatalf("position not clamped: (%v, %v)", obj.X, obj.Y)
	}
}

func TestTextBlurDeletesEmptyObject(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	tool.Click(50, 50)

	tool.Commit()
	if len(s.Texts()) != 0 {
		t.Fatalf("empty object survived blur, collection has %d", len(s.Texts()))
	}
}

func TestTextBlurKeepsNonEmptyObject(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	obj := tool.Click(50, 50)
	tool.SetText("hello")

	tool.Commit()
	if len(s.Texts()) != 1 {
		t.Fatal("committed object was removed")
	}
	if obj.Editing {
		t.Fatal("object still in edit mode after blur")
	}
	if tool.Editing() != nil {
		t.Fatal("tool still tracks an editing object")
	}
}

func TestTextEscapeDiscardsEvenNonEmpty(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	tool.Click(50, 50)
	tool.SetText("keep me?")

	tool.Discard()
	if len(s.Texts()) != 0 {
		t.Fatal("escape did not discard the object")
	}
}

func TestTextDeleteRemovesById(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	a := tool.Click(10, 10)
	tool.SetText("a")
	tool.Commit()
	b := tool.Click(20, 20)
	tool.SetText("b")
	tool.Commit()

	tool.Delete(a.ID)
	if len(s.Texts()) != 1 || s.Texts()[0].ID != b.ID {
		t.Fatalf("delete removed the wrong object: %+v", s.Texts())
	}
}

func TestTextStyleCapturedAtCreation(t *testing.T) {
	s := openSession(t, 100, 100)
	s.SetTextStyle(TextStyle{
		Size:  48,
		Color: color.RGBA{R: 255, A: 255},
		Bold:  true,
		Align: render.AlignCenter,
	})
	tool := s.Text()
	tool.Activate()
	obj := tool.Click(50, 50)
	tool.SetText("styled")
	tool.Commit()

	s.SetTextStyle(DefaultTextStyle())
	if !obj.Bold || obj.Size != 48 || obj.Align != render.AlignCenter {
		t.Fatalf("restyling the global changed an existing object: %+v", obj)
	}
}

func TestTextRuneEditing(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	tool.Click(50, 50)
	for _, r := range "héllo" {
		tool.Append(r)
	}
	tool.Backspace()
	tool.Backspace()
	if got := tool.Editing().Text; got != "hél" {
		t.Fatalf("rune editing produced %q", got)
	}
}

func TestTextObjectsSurviveUndo(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	tool.Click(50, 50)
	tool.SetText("sticky")
	tool.Commit()

	s.Rotate()
	s.Undo()
	if len(s.Texts()) != 1 {
		t.Fatal("undo must not touch the text overlay collection")
	}
}

func TestTextClickCommitsPreviousEdit(t *testing.T) {
	s := openSession(t, 100, 100)
	tool := s.Text()
	tool.Activate()
	tool.Click(10, 10)
	tool.SetText("first")
	second := tool.Click(20, 20)

	if len(s.Texts()) != 2 {
		t.Fatalf("expected both objects, have %d", len(s.Texts()))
	}
	if tool.Editing() != second {
		t.Fatal("second object should hold edit focus")
	}
	if s.Texts()[0].Editing {
		t.Fatal("first object still marked editing")
	}
}
