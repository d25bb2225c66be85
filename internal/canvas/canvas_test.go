package canvas

import (
	"image"
	"testing"
)

func rgbaAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func sameImages(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestNewCanvasIsWhite(t *testing.T) {
	c := New(100, 100)

	r, g, b := rgbaAt(c.Image(), 50, 50)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("New canvas should be white, got (%d, %d, %d)", r, g, b)
	}
}

func TestDrawSegmentPaintsRedLine(t *testing.T) {
	c := New(100, 100)

	c.DrawSegment(Segment{
		PrevX: 10, PrevY: 10,
		X: 50, Y: 50,
		Color: "red",
		Size:  5,
	})

	// Midpoint of the line must be solid red
	r, g, b := rgbaAt(c.Image(), 30, 30)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("Expected red at line midpoint, got (%d, %d, %d)", r, g, b)
	}

	// Far corner stays white
	r, g, b = rgbaAt(c.Image(), 90, 10)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("Expected white off the line, got (%d, %d, %d)", r, g, b)
	}
}

func TestDrawSegmentHexColor(t *testing.T) {
	c := New(50, 50)

	c.DrawSegment(Segment{
		PrevX: 10, PrevY: 25,
		X: 40, Y: 25,
		Color: "#0000ff",
		Size:  4,
	})

	r, g, b := rgbaAt(c.Image(), 25, 25)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("Expected blue at line midpoint, got (%d, %d, %d)", r, g, b)
	}
}

func TestUnknownColorFallsBackToBlack(t *testing.T) {
	c := New(50, 50)

	c.DrawSegment(Segment{
		PrevX: 10, PrevY: 25,
		X: 40, Y: 25,
		Color: "not-a-color",
		Size:  4,
	})

	r, g, b := rgbaAt(c.Image(), 25, 25)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black for an unknown color, got (%d, %d, %d)", r, g, b)
	}
}

func TestLocalAndRemoteSegmentsConverge(t *testing.T) {
	seg := Segment{PrevX: 5, PrevY: 5, X: 45, Y: 40, Color: "green", Size: 3}

	local := New(60, 60)
	local.DrawSegment(seg)

	remote := New(60, 60)
	remote.DrawSegment(seg)

	if !sameImages(local.Image(), remote.Image()) {
		t.Error("Applying the same segment should yield identical pixels on both replicas")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c := New(80, 80)
	c.DrawSegment(Segment{PrevX: 0, PrevY: 0, X: 80, Y: 80, Color: "purple", Size: 6})

	snapshot, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Failed to snapshot: %v", err)
	}

	fresh := New(80, 80)
	if err := fresh.Restore(snapshot); err != nil {
		t.Fatalf("Failed to restore: %v", err)
	}

	if !sameImages(c.Image(), fresh.Image()) {
		t.Error("Restored canvas should match the snapshotted one pixel-for-pixel")
	}
}

func TestRestoreReplacesPriorContent(t *testing.T) {
	blank := New(60, 60)
	blankSnapshot, err := blank.Snapshot()
	if err != nil {
		t.Fatalf("Failed to snapshot: %v", err)
	}

	c := New(60, 60)
	c.DrawSegment(Segment{PrevX: 10, PrevY: 30, X: 50, Y: 30, Color: "black", Size: 8})

	if err := c.Restore(blankSnapshot); err != nil {
		t.Fatalf("Failed to restore: %v", err)
	}

	r, g, b := rgbaAt(c.Image(), 30, 30)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("Restoring a blank snapshot should erase the stroke, got (%d, %d, %d)", r, g, b)
	}
}

func TestCompositeIsAdditive(t *testing.T) {
	first := New(60, 60)
	first.DrawSegment(Segment{PrevX: 10, PrevY: 10, X: 50, Y: 10, Color: "red", Size: 4})
	firstSnap, err := first.Snapshot()
	if err != nil {
		t.Fatalf("Failed to snapshot: %v", err)
	}

	second := New(60, 60)
	second.DrawSegment(Segment{PrevX: 10, PrevY: 50, X: 50, Y: 50, Color: "blue", Size: 4})
	secondSnap, err := second.Snapshot()
	if err != nil {
		t.Fatalf("Failed to snapshot: %v", err)
	}

	c := New(60, 60)
	if err := c.Composite(firstSnap); err != nil {
		t.Fatalf("Failed to composite: %v", err)
	}
	if err := c.Composite(secondSnap); err != nil {
		t.Fatalf("Failed to composite: %v", err)
	}

	r, g, b := rgbaAt(c.Image(), 30, 50)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("Expected blue from the second snapshot, got (%d, %d, %d)", r, g, b)
	}

	// Snapshots are opaque full rasters, so the later one covers the
	// earlier stroke at every pixel
	r, g, b = rgbaAt(c.Image(), 30, 10)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("Expected the later snapshot to cover the red stroke, got (%d, %d, %d)", r, g, b)
	}
}

func TestSnapshotDecodeError(t *testing.T) {
	c := New(10, 10)
	if err := c.Restore([]byte("not a png")); err == nil {
		t.Error("Restoring garbage bytes should fail")
	}
}
