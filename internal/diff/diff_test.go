package diff

import (
	"reflect"
	"testing"
)

func TestTables(t *testing.T) {
	tests := []struct {
		name         string
		baseline     []string
		other        []string
		wantBaseline []string
		wantOther    []string
	}{
		{
			name:         "disjoint differences",
			baseline:     []string{"orders", "users"},
			other:        []string{"products", "users"},
			wantBaseline: []string{"orders"},
			wantOther:    []string{"products"},
		},
		{
			name:         "identical sets",
			baseline:     []string{"a", "b"},
			other:        []string{"a", "b"},
			wantBaseline: []string{},
			wantOther:    []string{},
		},
		{
			name:         "empty baseline",
			baseline:     []string{},
			other:        []string{"x"},
			wantBaseline: []string{},
			wantOther:    []string{"x"},
		},
		{
			name:         "case sensitive names",
			baseline:     []string{"Users"},
			other:        []string{"users"},
			wantBaseline: []string{"Users"},
			wantOther:    []string{"users"},
		},
		{
			name:         "result sorted ascending",
			baseline:     []string{"zebra", "apple", "mango"},
			other:        []string{},
			wantBaseline: []string{"apple", "mango", "zebra"},
			wantOther:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Tables("base", "other", tt.baseline, tt.other)

			if d.BaselineLabel != "base" || d.OtherLabel != "other" {
				t.Errorf("labels = %q/%q, want base/other", d.BaselineLabel, d.OtherLabel)
			}
			if !reflect.DeepEqual(d.OnlyInBaseline, tt.wantBaseline) {
				t.Errorf("OnlyInBaseline = %v, want %v", d.OnlyInBaseline, tt.wantBaseline)
			}
			if !reflect.DeepEqual(d.OnlyInOther, tt.wantOther) {
				t.Errorf("OnlyInOther = %v, want %v", d.OnlyInOther, tt.wantOther)
			}
		})
	}
}

func TestTablesSelfDiffIsEmpty(t *testing.T) {
	tables := []string{"users", "orders", "products"}
	d := Tables("a", "b", tables, tables)
	if !d.Empty() {
		t.Errorf("self diff not empty: %+v", d)
	}
}

func TestColumns(t *testing.T) {
	baseline := map[string][]string{
		"users":  {"id", "name"},
		"orders": {"id", "total"},
	}
	other := map[string][]string{
		"users":    {"email", "id", "name"},
		"products": {"id", "sku"},
	}

	diffs := Columns(baseline, other)

	if len(diffs) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(diffs), diffs)
	}
	got := diffs[0]
	if got.Table != "users" {
		t.Errorf("Table = %q, want users", got.Table)
	}
	if !reflect.DeepEqual(got.OnlyInBaseline, []string{}) {
		t.Errorf("OnlyInBaseline = %v, want empty", got.OnlyInBaseline)
	}
	if !reflect.DeepEqual(got.OnlyInOther, []string{"email"}) {
		t.Errorf("OnlyInOther = %v, want [email]", got.OnlyInOther)
	}
}

func TestColumnsSkipsTablesMissingFromEitherSide(t *testing.T) {
	baseline := map[string][]string{
		"only_baseline": {"a", "b"},
	}
	other := map[string][]string{
		"only_other": {"c"},
	}

	diffs := Columns(baseline, other)
	if len(diffs) != 0 {
		t.Errorf("got %d entries for non-intersecting tables, want 0", len(diffs))
	}
}

func TestColumnsSparseResult(t *testing.T) {
	// Tables with identical column sets must produce no entry at all.
	baseline := map[string][]string{
		"users":  {"id", "name"},
		"orders": {"id", "total"},
	}
	other := map[string][]string{
		"users":  {"id", "name"},
		"orders": {"id", "total"},
	}

	diffs := Columns(baseline, other)
	if len(diffs) != 0 {
		t.Errorf("identical columns produced %d entries, want 0: %+v", len(diffs), diffs)
	}
}

func TestColumnsDeterministicOrder(t *testing.T) {
	baseline := map[string][]string{
		"c": {"x"}, "a": {"x"}, "b": {"x"},
	}
	other := map[string][]string{
		"a": {"y"}, "b": {"y"}, "c": {"y"},
	}

	first := Columns(baseline, other)
	second := Columns(baseline, other)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs differ: %+v vs %+v", first, second)
	}
	wantOrder := []string{"a", "b", "c"}
	for i, cd := range first {
		if cd.Table != wantOrder[i] {
			t.Errorf("entry %d table = %q, want %q", i, cd.Table, wantOrder[i])
		}
	}
}
