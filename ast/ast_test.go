// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/saintamh/canif/ast"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		// Scalars
		{`42`, int64(42)},
		{`-7`, int64(-7)},
		{`5.12e-1`, ast.Number{Raw: "5.12e-1", Value: 0.512}},
		{`"a b"`, "a b"},
		{`'a b'`, "a b"},
		{`true`, true},
		{`False`, false},
		{`null`, nil},
		{`None`, nil},
		{`undefined`, "$undefined"},
		{`NotImplemented`, "$NotImplemented"},
		{`foo`, "$$foo"},
		{`<Foo 1>`, "$repr<Foo 1>"},

		// Regexes
		{`/ab/i`, map[string]any{"$regex": "ab", "$options": "i"}},
		{`/ab/`, map[string]any{"$regex": "ab"}},

		// Arrays and tuples
		{`[]`, []any{}},
		{`[1, None, 'x']`, []any{int64(1), nil, "x"}},
		{`[1,,2]`, []any{int64(1), nil, int64(2)}},
		{`(1, 2)`, []any{int64(1), int64(2)}},
		{`(1,)`, []any{int64(1)}},

		// Mappings
		{`{}`, map[string]any{}},
		{`{'a': 1, b: 2, 3: 'x'}`, map[string]any{"a": int64(1), "b": int64(2), "3": "x"}},
		{`{true: 1, None: 2}`, map[string]any{"true": int64(1), "null": int64(2)}},
		{`{(1, 2): 'x'}`, map[string]any{"[1,2]": "x"}},
		{`{'a': {'b': [{'c': 1}]}}`, map[string]any{
			"a": map[string]any{"b": []any{map[string]any{"c": int64(1)}}},
		}},

		// Sets
		{`{1, 2}`, map[string]any{"$set": []any{int64(1), int64(2)}}},
		{`{a}`, map[string]any{"$set": []any{"$$a"}}},

		// Function calls
		{`f()`, map[string]any{"$$f": []any{}}},
		{`f(1, 'x')`, map[string]any{"$$f": []any{int64(1), "x"}}},
		{`f(1, x=2)`, map[string]any{
			"$$f":     []any{int64(1)},
			"$kwargs": map[string]any{"x": int64(2)},
		}},
		{`Date(1573081939)`, map[string]any{"$date": int64(1573081939)}},
		{`Date(2020, 1, 1)`, map[string]any{"$date": []any{int64(2020), int64(1), int64(1)}}},
		{`ObjectId('abc123')`, map[string]any{"$oid": "abc123"}},
		{`new Date(1)`, map[string]any{"$$new Date": []any{int64(1)}}},
		{`OrderedDict([['a', 1], ['b', 2]])`, map[string]any{"a": int64(1), "b": int64(2)}},
		{`OrderedDict(1)`, map[string]any{"$$OrderedDict": []any{int64(1)}}},

		// Keyword arguments disable the special call encodings.
		{`Date(x=1)`, map[string]any{
			"$$Date":  []any{},
			"$kwargs": map[string]any{"x": int64(1)},
		}},
	}

	for _, test := range tests {
		got, err := ast.Parse(test.input)
		if err != nil {
			t.Errorf("Input %#q: Parse failed: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input %#q: value: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		``,
		`[`,
		`1 2`, // trailing content
		`{1: }`,
		`(1)`,
	} {
		if got, err := ast.Parse(input); err == nil {
			t.Errorf("Input %#q: Parse unexpectedly succeeded with %v", input, got)
		}
	}
}

func TestNumberMarshalJSON(t *testing.T) {
	tests := []struct {
		num  ast.Number
		want string
	}{
		// The original spelling is kept whenever JSON allows it.
		{ast.Number{Raw: "5.12e-1", Value: 0.512}, "5.12e-1"},
		{ast.Number{Raw: "5.12e-17", Value: 5.12e-17}, "5.12e-17"},
		{ast.Number{Raw: "1e3", Value: 1000}, "1e3"},

		// Spellings JSON rejects fall back to the decoded value.
		{ast.Number{Raw: "+1.5", Value: 1.5}, "1.5"},
		{ast.Number{Raw: "07.5", Value: 7.5}, "7.5"},
	}
	for _, test := range tests {
		got, err := json.Marshal(test.num)
		if err != nil {
			t.Errorf("Marshal %q failed: %v", test.num.Raw, err)
		} else if string(got) != test.want {
			t.Errorf("Marshal %q: got %s, want %s", test.num.Raw, got, test.want)
		}
	}
}

func TestParsedValueMarshalsToValidJSON(t *testing.T) {
	for _, input := range []string{
		`{'a': [1, 2.5e1], 'b': {1, 2}, 'c': /ab/i}`,
		`Date(1573081939)`,
		`{(1, 2): f(x=None)}`,
		`[undefined, <Foo 1>, foo]`,
	} {
		v, err := ast.Parse(input)
		if err != nil {
			t.Fatalf("Input %#q: Parse failed: %v", input, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			t.Errorf("Input %#q: Marshal failed: %v", input, err)
		} else if !json.Valid(data) {
			t.Errorf("Input %#q: Marshal produced invalid JSON: %s", input, data)
		}
	}
}

func TestDanglingMappingKeyPanics(t *testing.T) {
	mtest.MustPanic(t, func() {
		b := ast.NewBuilder()
		b.OpenDocument()
		b.OpenMapping()
		b.Int("1", 1)
		b.MappingKey()
		b.CloseMapping()
	})
}
