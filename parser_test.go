package variantweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDirective(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Directive
	}{
		{"bare name", "nop", Directive{Name: "nop"}},
		{"single argument", "if(A)", Directive{Name: "if", Args: []string{"A"}}},
		{"trimmed arguments", "if( A ,B,  solved )", Directive{Name: "if", Args: []string{"A", "B", "solved"}}},
		{"empty argument list", "if()", Directive{Name: "if", Args: []string{""}}},
		{"trailing comma", "end(A,)", Directive{Name: "end", Args: []string{"A", ""}}},
		{"split at the last paren", "if(f(x))", Directive{Name: "if", Args: []string{"f(x)"}}},
		{"name is not trimmed", " nop", Directive{Name: " nop"}},
		{"empty body", "", Directive{Name: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDirective(tc.body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Args != nil, got.HasArgs())
		})
	}
}

func Test_ParseDirective_Should_Reject_Malformed_Bodies(t *testing.T) {
	cases := []struct {
		body string
		kind MalformedKind
	}{
		{"if(A", UnterminatedArguments},
		{"if(A)x", TrailingCharacters},
		{"if(A) ", TrailingCharacters},
		{"end)", StrayParen},
		{"nop)(", UnterminatedArguments},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			_, err := ParseDirective(tc.body)
			var me *MalformedDirectiveError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tc.kind, me.Kind)
			assert.Equal(t, tc.body, me.Directive)
		})
	}
}

func Test_Directive_String(t *testing.T) {
	assert.Equal(t, "end", Directive{Name: "end"}.String())
	assert.Equal(t, "if(A, B)", Directive{Name: "if", Args: []string{"A", "B"}}.String())
}

func Test_TagStack(t *testing.T) {
	t.Run("should push in order and pop from the top", func(t *testing.T) {
		var s TagStack
		s.Push("A", "B")
		s.Push("C")
		assert.Equal(t, []string{"A", "B", "C"}, s.Tags())

		top, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, "C", top)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("should report popping an empty stack", func(t *testing.T) {
		var s TagStack
		_, ok := s.Pop()
		assert.False(t, ok)
	})

	t.Run("should remove the entry nearest the top", func(t *testing.T) {
		var s TagStack
		s.Push("A", "B", "A", "C")
		require.True(t, s.RemoveLast("A"))
		assert.Equal(t, []string{"A", "B", "C"}, s.Tags())
		assert.False(t, s.RemoveLast("Z"))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("should not expose its backing slice", func(t *testing.T) {
		var s TagStack
		s.Push("A")
		tags := s.Tags()
		tags[0] = "X"
		assert.Equal(t, []string{"A"}, s.Tags())
	})

	t.Run("should evaluate the conditions predicate over the stack", func(t *testing.T) {
		var s TagStack
		assert.True(t, s.AllIn(NewSettings()), "empty stack always passes")
		s.Push("A", "B")
		assert.True(t, s.AllIn(NewSettings("A", "B", "C")))
		assert.False(t, s.AllIn(NewSettings("A")))
	})
}
