package renderer

import "testing"

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 128, 64, 64, 2},
		{"partial edge tiles", 400, 225, 64, 28},
		{"tile larger than image", 10, 10, 64, 1},
		{"single pixel tiles", 3, 2, 1, 6},
		{"zero tile size uses default", 130, 10, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel is covered exactly once
			covered := make([]int, tt.width*tt.height)
			for id, tile := range tiles {
				if tile.ID != id {
					t.Errorf("Tile %d has ID %d", id, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for idx, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", idx, count)
				}
			}
		})
	}
}

func TestNewTileGrid_EmptyImage(t *testing.T) {
	if tiles := NewTileGrid(0, 10, 8); len(tiles) != 0 {
		t.Errorf("Expected no tiles, got %d", len(tiles))
	}
}
