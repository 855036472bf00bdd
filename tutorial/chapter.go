package tutorial

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/learn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownChapter is returned by Lookup for ids with no chapter.
var ErrUnknownChapter = errors.New("tutorial: unknown chapter")

// Chapter is one runnable tutorial step.
type Chapter struct {
	// ID is the command line id, e.g. "1_3".
	ID          string
	Title       string
	Description string

	// New builds a fresh scene for cfg.
	New func(cfg Config) (Scene, error)
}

// DisplayTitle returns the id and the title-cased chapter title, as shown
// in window titles and listings.
func (c Chapter) DisplayTitle() string {
	return c.ID + " " + cases.Title(language.English).String(c.Title)
}

var chapters = map[string]Chapter{}

func register(c Chapter) {
	if _, dup := chapters[c.ID]; dup {
		panic("tutorial: duplicate chapter " + c.ID)
	}
	chapters[c.ID] = c
}

// Lookup returns the chapter with the given id.
func Lookup(id string) (Chapter, error) {
	c, ok := chapters[strings.TrimSpace(id)]
	if !ok {
		return Chapter{}, fmt.Errorf("%w: %q", ErrUnknownChapter, id)
	}
	return c, nil
}

// Chapters returns all chapters sorted by id.
func Chapters() []Chapter {
	list := make([]Chapter, 0, len(chapters))
	for _, c := range chapters {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// windowClear is the clear color of the window chapter, which renders
// nothing of its own.
var windowClear = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

func init() {
	register(Chapter{
		ID:          "1_1",
		Title:       "the window",
		Description: "Open a window; Escape or closing it exits.",
		New: func(Config) (Scene, error) {
			return newClearScene(windowClear), nil
		},
	})
	register(Chapter{
		ID:          "1_2",
		Title:       "the swap chain",
		Description: "Acquire a surface and device and clear every frame.",
		New: func(Config) (Scene, error) {
			return newClearScene(learn.DefaultClearColor), nil
		},
	})
	register(Chapter{
		ID:          "1_2_1",
		Title:       "the swap chain challenge",
		Description: "Space cycles the clear color.",
		New: func(Config) (Scene, error) {
			return newClearScene(clearPalette...), nil
		},
	})
	register(Chapter{
		ID:          "1_3",
		Title:       "the pipeline",
		Description: "A triangle from the built-in vertex index: one draw of three vertices.",
		New: func(Config) (Scene, error) {
			return newTriangleScene(false), nil
		},
	})
	register(Chapter{
		ID:          "1_3_1",
		Title:       "the pipeline challenge",
		Description: "Space toggles the solid and the position-colored triangle.",
		New: func(Config) (Scene, error) {
			return newTriangleScene(true), nil
		},
	})
	register(Chapter{
		ID:          "1_4",
		Title:       "buffers and indices",
		Description: "A pentagon from a vertex buffer and an index buffer.",
		New: func(Config) (Scene, error) {
			return newBufferScene(false), nil
		},
	})
	register(Chapter{
		ID:          "1_4_1",
		Title:       "buffers challenge",
		Description: "Space toggles the pentagon and a star.",
		New: func(Config) (Scene, error) {
			return newBufferScene(true), nil
		},
	})
	register(Chapter{
		ID:          "1_5",
		Title:       "textures and bind groups",
		Description: "The pentagon sampled from a texture (-texture or a checkerboard).",
		New: func(cfg Config) (Scene, error) {
			img, err := diffuseImage(cfg)
			if err != nil {
				return nil, err
			}
			return newTextureScene(img), nil
		},
	})
	register(Chapter{
		ID:          "1_5_1",
		Title:       "textures challenge",
		Description: "Space toggles between two textures.",
		New: func(cfg Config) (Scene, error) {
			img, err := diffuseImage(cfg)
			if err != nil {
				return nil, err
			}
			return newTextureScene(img, Checkerboard(8, 16)), nil
		},
	})
}

// diffuseImage loads cfg.Texture, or returns a checkerboard when none is
// configured.
func diffuseImage(cfg Config) (image.Image, error) {
	if cfg.Texture == "" {
		return Checkerboard(4, 64), nil
	}
	return LoadImage(cfg.Texture)
}
