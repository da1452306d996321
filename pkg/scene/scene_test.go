package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

func TestCreate_Builtins(t *testing.T) {
	opts := Options{Width: 40, Height: 30}
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID, opts)
			if err != nil {
				t.Fatalf("Create(%q): %v", info.ID, err)
			}
			if s.Name != info.Name {
				t.Errorf("Name = %q, want %q", s.Name, info.Name)
			}
			if s.Camera.Width() != 40 || s.Camera.Height() != 30 {
				t.Errorf("Camera size %dx%d", s.Camera.Width(), s.Camera.Height())
			}
			if len(s.World.Lights()) == 0 || len(s.World.Objects()) == 0 {
				t.Error("Scene should have lights and objects")
			}

			// the center of every built-in scene shows something
			center := s.World.ColorAt(s.Camera.RayForPixel(20, 15))
			if center.Equal(core.Black()) {
				t.Error("Center pixel should not be black")
			}
		})
	}
}

func TestCreate_Errors(t *testing.T) {
	if _, err := Create("missing", DefaultOptions()); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if _, err := Create("default", Options{Width: 0, Height: 10}); err == nil {
		t.Error("Expected error for empty image")
	}
	if _, err := Create("default", Options{Width: 10, Height: 10, ShadowMode: "soft"}); err == nil {
		t.Error("Expected error for unknown shadow mode")
	}
	if _, err := Create("file:does-not-exist", DefaultOptions()); err == nil {
		t.Error("Expected error for missing scene file")
	}
}

func TestCreate_RejectsEscapingFileNames(t *testing.T) {
	for _, id := range []string{"file:", "file:..", "file:../scenes/stripe-room", "file:sub/room", "file:/etc/room", "file:a..b"} {
		t.Run(id, func(t *testing.T) {
			_, err := Create(id, DefaultOptions())
			if err == nil || !strings.Contains(err.Error(), "invalid scene name") {
				t.Errorf("Create(%q) error = %v, want invalid scene name", id, err)
			}
		})
	}
}

func TestIsBuiltin(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		if !IsBuiltin(info.ID) {
			t.Errorf("Expected %q to be built in", info.ID)
		}
	}
	for _, id := range []string{"", "file:default", "scenes/stripe-room.json", "missing"} {
		if IsBuiltin(id) {
			t.Errorf("Expected %q not to be built in", id)
		}
	}
	if !IsFileID("file:stripe-room") || IsFileID("stripe-room.json") {
		t.Error("IsFileID should match only the file: prefix")
	}
}

func TestCreate_ShadowModeOverride(t *testing.T) {
	s, err := Create("spheres", Options{Width: 10, Height: 10, ShadowMode: "per-light"})
	if err != nil {
		t.Fatal(err)
	}
	if s.World.ShadowMode() != world.ShadowPerLight {
		t.Errorf("ShadowMode = %v, want per-light", s.World.ShadowMode())
	}
}

func TestCornellBox(t *testing.T) {
	w := NewCornellBuilder().Build()

	objs := w.Objects()
	if len(objs) != 8 {
		t.Fatalf("Expected 8 objects, got %d", len(objs))
	}
	planes, spheres := 0, 0
	for _, o := range objs {
		switch o.(type) {
		case *geometry.Plane:
			planes++
		case *geometry.Sphere:
			spheres++
		}
	}
	if planes != 5 || spheres != 3 {
		t.Errorf("Expected 5 planes and 3 spheres, got %d and %d", planes, spheres)
	}

	// left wall is red and sits at x = -3
	ray := core.NewRay(core.NewPoint(0, 2.5, 3), core.NewVector(-1, 0, 0))
	hit, ok := geometry.Hit(w.Intersect(ray))
	if !ok || !core.FloatEqual(hit.T, 3) {
		t.Fatalf("Expected left wall at t=3, got %v %v", hit.T, ok)
	}
	if !hit.Shape.Material().Color.Equal(core.Red()) {
		t.Errorf("Left wall color = %v, want red", hit.Shape.Material().Color)
	}

	// the light hangs below the ceiling
	if l := w.Lights()[0]; !l.Position.Equal(core.NewPoint(0, 4.2, 0)) {
		t.Errorf("Light position = %v", l.Position)
	}
}

const roomJSON = `{
	"name": "Test Room",
	"description": "One sphere",
	"group": "Tests",
	"camera": {"from": [0, 1, -5], "to": [0, 1, 0], "fov": 60},
	"lights": [{"position": [-10, 10, -10], "intensity": [1, 1, 1]}],
	"objects": [{"type": "sphere", "transform": [{"op": "translate", "args": [0, 1, 0]}]}]
}`

func TestFileScenes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test_room.json"), []byte(roomJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bare-scene.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 valid scenes, got %d: %+v", len(scenes), scenes)
	}
	// sorted by name
	if scenes[0].Name != "Bare Scene" || scenes[0].Group != "File Scenes" {
		t.Errorf("Fallback metadata = %+v", scenes[0])
	}
	if scenes[1].ID != "file:test_room" || scenes[1].Group != "Tests" || scenes[1].Description != "One sphere" {
		t.Errorf("Parsed metadata = %+v", scenes[1])
	}

	s, err := Create(scenes[1].FilePath, Options{Width: 20, Height: 10})
	if err != nil {
		t.Fatalf("Create from file: %v", err)
	}
	if s.Name != "Test Room" || len(s.World.Objects()) != 1 {
		t.Errorf("Unexpected scene %q with %d objects", s.Name, len(s.World.Objects()))
	}
}

func TestListAllScenes(t *testing.T) {
	resp, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes: %v", err)
	}
	if len(resp.Groups) == 0 || resp.Groups[0].Name != "Built-in Scenes" {
		t.Fatalf("Built-in group should come first: %+v", resp.Groups)
	}
	if len(resp.Groups[0].Scenes) != len(ListBuiltinScenes()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(ListBuiltinScenes()), len(resp.Groups[0].Scenes))
	}
	for _, s := range resp.Groups[0].Scenes {
		if strings.HasPrefix(s.ID, "file:") {
			t.Errorf("File scene %q in built-in group", s.ID)
		}
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
