package asset

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/prize-wheel/wheel"
)

// maxConcurrentLoads bounds parallel image decoding
const maxConcurrentLoads = 4

// Set holds one icon per prize in segment order
type Set struct {
	arts []*Art
}

// Get returns the icon for segment i, nil when icons are disabled
func (s *Set) Get(i int) *Art {
	if s == nil || i < 0 || i >= len(s.arts) {
		return nil
	}
	return s.arts[i]
}

// Len returns the number of icons
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.arts)
}

// LoadImage decodes a png, jpeg or gif file
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Load converts every prize image to terminal art
// Images are decoded in parallel; a prize whose image is missing or unreadable gets a Fallback tile
// width 0 disables icons and returns an empty set
func Load(ctx context.Context, prizes []wheel.Prize, colors []colorful.Color, width int, logger *zap.Logger) (*Set, error) {
	set := &Set{}
	if width <= 0 {
		return set, nil
	}
	set.arts = make([]*Art, len(prizes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, p := range prizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var bg colorful.Color
			if i < len(colors) {
				bg = colors[i]
			}

			if p.Image == "" {
				set.arts[i] = Fallback(p.Name, bg, width)
				return nil
			}

			img, err := LoadImage(p.Image)
			if err != nil {
				logger.Warn("prize image unavailable, using fallback",
					zap.String("prize", p.Name),
					zap.String("image", p.Image),
					zap.Error(err))
				set.arts[i] = Fallback(p.Name, bg, width)
				return nil
			}

			set.arts[i] = ConvertImage(img, width, ModeQuadrant)
			logger.Debug("prize image loaded",
				zap.String("prize", p.Name),
				zap.Int("cols", set.arts[i].Width),
				zap.Int("rows", set.arts[i].Height))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}
