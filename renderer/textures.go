// Package renderer draws the scene with raylib.
package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureStore owns the sprite textures referenced by materials.
// A texture that fails to load is replaced by a generated radial sprite.
type TextureStore struct {
	textures     map[string]rl.Texture2D
	paths        map[string]string
	fallback     rl.Texture2D
	fallbackSize int
	logger       *slog.Logger
}

// NewTextureStore creates an empty store. Textures are uploaded lazily
// so the store can be built before the GL context exists.
func NewTextureStore(fallbackSize int) *TextureStore {
	if fallbackSize < 2 {
		fallbackSize = 64
	}
	return &TextureStore{
		textures:     make(map[string]rl.Texture2D),
		paths:        make(map[string]string),
		fallbackSize: fallbackSize,
		logger:       slog.With("component", "textures"),
	}
}

// Register associates key with an image path.
func (s *TextureStore) Register(key, path string) {
	s.paths[key] = path
}

// Init loads every registered texture. Must be called after the window is open.
// Load failures are logged and never fatal.
func (s *TextureStore) Init() {
	for key, path := range s.paths {
		if _, ok := s.textures[key]; ok {
			continue
		}
		s.textures[key] = s.load(key, path)
	}
}

// Get returns the texture for key, or the fallback sprite for unknown keys.
func (s *TextureStore) Get(key string) rl.Texture2D {
	if tex, ok := s.textures[key]; ok {
		return tex
	}
	return s.fallbackTexture()
}

func (s *TextureStore) load(key, path string) rl.Texture2D {
	if path == "" {
		s.logger.Warn("no texture path, using generated sprite", "key", key)
		return s.fallbackTexture()
	}
	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		s.logger.Warn("texture failed to load, using generated sprite", "key", key, "path", path)
		return s.fallbackTexture()
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	s.logger.Debug("texture loaded", "key", key, "path", path, "width", tex.Width, "height", tex.Height)
	return tex
}

// fallbackTexture builds a soft white disc that fades to transparent.
func (s *TextureStore) fallbackTexture() rl.Texture2D {
	if s.fallback.ID != 0 {
		return s.fallback
	}
	img := rl.GenImageGradientRadial(s.fallbackSize, s.fallbackSize, 0, rl.White, rl.Blank)
	s.fallback = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(s.fallback, rl.FilterBilinear)
	return s.fallback
}

// Unload releases all GPU textures.
func (s *TextureStore) Unload() {
	for key, tex := range s.textures {
		if tex.ID != 0 && tex.ID != s.fallback.ID {
			rl.UnloadTexture(tex)
		}
		delete(s.textures, key)
	}
	if s.fallback.ID != 0 {
		rl.UnloadTexture(s.fallback)
		s.fallback = rl.Texture2D{}
	}
}
