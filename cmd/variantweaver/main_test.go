package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/grahms/variantweaver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskTemplate = "Count the #{if(A)}odd#{end}#{if(B)}even#{end} numbers.\n" +
	"pass # TODO#{if(solved)}\nreturn 42#{end(solved)}\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-format", "json"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("task.tmpl", []byte(taskTemplate), 0o644))
	return dir
}

func TestRenderCmd(t *testing.T) {
	t.Run("should write the selected variant to a file", func(t *testing.T) {
		dir := project(t)
		_, err := run(t, "render", "--template", "task.tmpl", "--out", "out/task.py", "--active-tags", "B,solved")
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, "out", "task.py"))
		require.NoError(t, err)
		assert.Equal(t, "Count the even numbers.\npass # TODO\nreturn 42\n", string(got))
	})

	t.Run("should write to stdout with an empty tag list", func(t *testing.T) {
		project(t)
		out, err := run(t, "render", "--template", "task.tmpl", "--out", "-", "--active-tags", "")
		require.NoError(t, err)
		assert.Equal(t, "Count the  numbers.\npass # TODO\n", out)
	})

	t.Run("should fail on template errors", func(t *testing.T) {
		project(t)
		require.NoError(t, os.WriteFile("bad.tmpl", []byte("x\n#{iff(A)}"), 0o644))
		_, err := run(t, "render", "--template", "bad.tmpl", "--out", "bad.txt")

		var ud *variantweaver.UnknownDirectiveError
		require.ErrorAs(t, err, &ud)
		assert.Equal(t, 2, ud.Pos.Line)
		assert.NoFileExists(t, "bad.txt")
	})

	t.Run("should honour the unclosed policy flag", func(t *testing.T) {
		project(t)
		require.NoError(t, os.WriteFile("open.tmpl", []byte("#{if(A)}x"), 0o644))
		_, err := run(t, "render", "--template", "open.tmpl", "--out", "-", "--unclosed", "strict")
		var uc *variantweaver.UnclosedBlockError
		require.ErrorAs(t, err, &uc)

		_, err = run(t, "render", "--template", "open.tmpl", "--out", "-", "--unclosed", "maybe")
		require.ErrorContains(t, err, "unknown unclosed policy")
	})

	t.Run("should require template and out", func(t *testing.T) {
		project(t)
		_, err := run(t, "render", "--template", "task.tmpl")
		require.Error(t, err)
	})
}

func TestBuildCmd(t *testing.T) {
	dir := project(t)
	manifest := `template: task.tmpl
tags: [A, B, solved]
variants:
  - name: odd
    tags: [A]
    out: dist/odd.py
  - name: even-solved
    tags: [B, solved]
    out: dist/even_solved.py
`
	require.NoError(t, os.WriteFile("variants.yaml", []byte(manifest), 0o644))

	_, err := run(t, "build", "--jobs", "2")
	require.NoError(t, err)

	odd, err := os.ReadFile(filepath.Join(dir, "dist", "odd.py"))
	require.NoError(t, err)
	assert.Equal(t, "Count the odd numbers.\npass # TODO\n", string(odd))

	even, err := os.ReadFile(filepath.Join(dir, "dist", "even_solved.py"))
	require.NoError(t, err)
	assert.Equal(t, "Count the even numbers.\npass # TODO\nreturn 42\n", string(even))
}

func TestCheckCmd(t *testing.T) {
	t.Run("should accept a well formed template", func(t *testing.T) {
		project(t)
		out, err := run(t, "check", "--template", "task.tmpl")
		require.NoError(t, err)
		assert.Contains(t, out, "task.tmpl: ok")
	})

	t.Run("should reject tags missing from the manifest", func(t *testing.T) {
		project(t)
		manifest := "template: task.tmpl\ntags: [A, B]\nvariants:\n  - name: a\n    tags: [A]\n    out: a.py\n"
		require.NoError(t, os.WriteFile("variants.yaml", []byte(manifest), 0o644))

		_, err := run(t, "check", "--manifest", "variants.yaml")
		var it *variantweaver.InvalidTagError
		require.ErrorAs(t, err, &it)
		assert.Equal(t, "solved", it.Tag)
	})

	t.Run("should reject unclosed blocks", func(t *testing.T) {
		project(t)
		require.NoError(t, os.WriteFile("open.tmpl", []byte("#{if(A)}x"), 0o644))
		_, err := run(t, "check", "--template", "open.tmpl")
		var uc *variantweaver.UnclosedBlockError
		require.ErrorAs(t, err, &uc)
	})

	t.Run("should need a template", func(t *testing.T) {
		project(t)
		_, err := run(t, "check")
		require.ErrorContains(t, err, "--template or --manifest")
	})
}

func TestVersionCmd(t *testing.T) {
	project(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "variantweaver version "+variantweaver.Version+"\n", out)
}
