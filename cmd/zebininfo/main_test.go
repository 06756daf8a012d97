package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/dump"
	"github.com/wippyai/zebin/elf"
)

const twoKernels = `version: '1.52'
kernels:
  - name: foo
    execution_env:
      simd_size: 16
  - name: bar
    execution_env:
      simd_size: 8
`

func writeZebin(t *testing.T, dir, name string) string {
	t.Helper()
	b := elf.NewBuilder(elf.TypeZebinExe, elf.MachineIntelGT)
	b.Add(container.TextPrefix+"foo", elf.SectionProgbits, []byte{1, 2, 3, 4})
	b.Add(container.TextPrefix+"bar", elf.SectionProgbits, []byte{5, 6, 7, 8})
	b.Add(container.ZeInfo, elf.SectionZebinZeInfo, []byte(twoKernels))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b.Encode(), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeText(t *testing.T) {
	path := writeZebin(t, t.TempDir(), "a.bin")
	out, err := run(t, "decode", path)
	require.NoError(t, err)
	assert.Contains(t, out, "foo")
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "Success")
	assert.NotContains(t, out, "\x1b[")
}

func TestDecodeJSON(t *testing.T) {
	path := writeZebin(t, t.TempDir(), "a.bin")
	out, err := run(t, "decode", "--format", "json", path)
	require.NoError(t, err)

	var doc dump.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Kernels, 2)
	assert.Equal(t, "foo", doc.Kernels[0].Name)
	assert.Equal(t, uint8(8), doc.Kernels[1].SimdSize)
	assert.Equal(t, 4, doc.Kernels[1].ISASize)
}

func TestDecodeFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeZebin(t, dir, "good.bin")
	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(bad, []byte("\x7fELFjunk"), 0o644))

	out, err := run(t, "decode", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files failed to decode", err.Error())
	assert.Contains(t, out, "InvalidBinary")
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := run(t, "decode", filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.bin")
}

func TestDecodeBadFormat(t *testing.T) {
	path := writeZebin(t, t.TempDir(), "a.bin")
	_, err := run(t, "decode", "--format", "xml", path)
	require.Error(t, err)
}

func TestDecodeConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeZebin(t, dir, "a.bin")
	cfg := filepath.Join(dir, "zebin.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte("output {\n  format = \"yaml\"\n}\n"), 0o644))

	out, err := run(t, "decode", "--config", cfg, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "source:"), "output = %q", out)
}

func TestTreeFind(t *testing.T) {
	path := writeZebin(t, t.TempDir(), "a.bin")
	out, err := run(t, "tree", "--find", "simd_size", path)
	require.NoError(t, err)
	assert.Equal(t, "kernels.execution_env.simd_size: 16\n", out)

	_, err = run(t, "tree", "--find", "no_such_key", path)
	require.Error(t, err)
}

func TestTreeDump(t *testing.T) {
	path := writeZebin(t, t.TempDir(), "a.bin")
	out, err := run(t, "tree", path)
	require.NoError(t, err)
	assert.Contains(t, out, "kernels")
	assert.Contains(t, out, "simd_size")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browseDoc() *dump.Document {
	return &dump.Document{
		Source:  "a.bin",
		Outcome: "Success",
		Kernels: []dump.Kernel{
			{Name: "gemm_f16", SimdSize: 16},
			{Name: "reduce_sum", SimdSize: 8},
			{Name: "gemm_f32", SimdSize: 16},
		},
	}
}

func TestBrowseNavigate(t *testing.T) {
	m := newBrowseModel(browseDoc())
	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("down"))
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
	m.Update(key("up"))
	k, ok := m.current()
	require.True(t, ok)
	assert.Equal(t, "reduce_sum", k.Name)

	m.Update(key("enter"))
	assert.Equal(t, stateDetail, m.state)
	assert.Contains(t, m.View(), "reduce_sum")
	m.Update(key("esc"))
	assert.Equal(t, stateList, m.state)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseFilter(t *testing.T) {
	m := newBrowseModel(browseDoc())
	m.Update(key("/"))
	assert.Equal(t, stateFilter, m.state)
	m.Update(key("g"))
	m.Update(key("m"))
	m.Update(key("3"))

	require.Len(t, m.visible, 1)
	k, _ := m.current()
	assert.Equal(t, "gemm_f32", k.Name)

	m.Update(key("enter"))
	assert.Equal(t, stateList, m.state)
	assert.NotContains(t, m.View(), "reduce_sum")
}

func TestBrowseEmpty(t *testing.T) {
	m := newBrowseModel(&dump.Document{Outcome: "InvalidBinary", Error: "bad"})
	_, ok := m.current()
	assert.False(t, ok)
	m.Update(key("enter"))
	assert.Equal(t, stateList, m.state)
	assert.Contains(t, m.View(), "No kernels.")
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	fw, err := newFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.bin"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("xy"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
