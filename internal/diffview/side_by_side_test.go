package diffview

import "testing"

func TestBuildRows_SimpleReplaceAndAdd(t *testing.T) {
	before := "line1\nline2\nline3"
	after := "line1\nline2 changed\nline3\nline4"

	rows := BuildRows(before, after, -1)
	var adds, dels, rep, ctx int
	for _, r := range rows {
		switch r.Kind {
		case RowAdd:
			adds++
		case RowDel:
			dels++
		case RowReplace:
			rep++
		case RowContext:
			ctx++
		}
	}
	if rep != 1 {
		t.Fatalf("expected 1 replace row, got %d", rep)
	}
	if adds != 1 {
		t.Fatalf("expected 1 add row, got %d", adds)
	}
	if dels != 0 {
		t.Fatalf("expected no deletions, got %d", dels)
	}
	if ctx != 2 {
		t.Fatalf("expected 2 context rows, got %d", ctx)
	}
	for _, r := range rows {
		if r.Kind == RowReplace && (r.Left != "line2" || r.Right != "line2 changed" || r.LeftLine != 2 || r.RightLine != 2) {
			t.Fatalf("unexpected replace row %+v", r)
		}
	}
}

func TestBuildRows_DeletionOnly(t *testing.T) {
	rows := BuildRows("keep\nold1\nold2", "keep", -1)
	var dels int
	for _, r := range rows {
		if r.Kind == RowDel {
			dels++
		}
	}
	if dels != 2 {
		t.Fatalf("expected 2 deletions, got %d", dels)
	}
}

func TestBuildRows_Identical(t *testing.T) {
	if rows := BuildRows("same\ntext", "same\ntext", 3); rows != nil {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestBuildRows_CollapsesContext(t *testing.T) {
	before := "a\nb\nc\nd\ne\nf\ng"
	after := "a\nb\nc\nd\ne\nf\nG"
	rows := BuildRows(before, after, 1)
	if len(rows) != 3 {
		t.Fatalf("expected hunk, context and change, got %+v", rows)
	}
	if rows[0].Kind != RowHunk || rows[0].Meta != "@@ -6 +6 @@" {
		t.Fatalf("unexpected hunk row %+v", rows[0])
	}
	if rows[1].Kind != RowContext || rows[1].Left != "f" {
		t.Fatalf("unexpected context row %+v", rows[1])
	}
	if rows[2].Kind != RowReplace || rows[2].Right != "G" {
		t.Fatalf("unexpected change row %+v", rows[2])
	}
	if got := Summarize(rows).String(); got != "1 changed, 0 added, 0 removed" {
		t.Fatalf("summary = %q", got)
	}
}

func TestSegments(t *testing.T) {
	l, r := Segments("the cat sat", "the dog sat")
	var lc, rc string
	for _, s := range l {
		if s.Changed {
			lc += s.Text
		}
	}
	for _, s := range r {
		if s.Changed {
			rc += s.Text
		}
	}
	if lc == "" || rc == "" {
		t.Fatalf("expected changed pieces on both sides: %+v %+v", l, r)
	}
	var joined string
	for _, s := range r {
		joined += s.Text
	}
	if joined != "the dog sat" {
		t.Fatalf("right segments = %q", joined)
	}
}
