package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggui"
)

const testScene = `
viewport: {width: 800, height: 600}
elements:
  - {name: a, rect: [100, 100, 200, 150], color: "#ff0000"}
  - {name: b, rect: [300, 200, 340, 240], color: "#00ff00", bias: none}
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", writeScene(t)}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 1+2*ggui.CornerCount {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 1+2*ggui.CornerCount, stdout.String())
	}
	if !strings.Contains(lines[1], "bottom-right") || !strings.Contains(lines[4], "top-left") {
		t.Errorf("corner column out of order:\n%s", stdout.String())
	}
}

func TestRunBinary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", writeScene(t), "-format", "binary", "-workers", "2"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := stdout.Len(), 2*ggui.CornerCount*ggui.OutputVertexStride; got != want {
		t.Errorf("wrote %d bytes, want %d", got, want)
	}
}

func TestRunInstancesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "inst.bin")
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", writeScene(t), "-format", "instances", "-output", out}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2*ggui.InstanceStride {
		t.Fatalf("wrote %d bytes, want %d", len(data), 2*ggui.InstanceStride)
	}
	// First instance: rect [100,100,200,150] centered in an 800x600 viewport.
	in := ggui.DecodeInstance(data)
	if in.Position != ggui.V2(-250, -175) || in.Dimensions != ggui.V2(100, 50) {
		t.Errorf("decoded %v / %v", in.Position, in.Dimensions)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("no args: err = %v, want errUsage", err)
	}
	if err := run([]string{"-scene", writeScene(t), "-format", "xml"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := run([]string{"-scene", "does-not-exist.yaml"}, &stdout, &stderr); err == nil {
		t.Error("expected error for missing scene")
	}
}
