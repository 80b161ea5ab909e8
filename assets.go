package tex2html

import (
	"errors"

	"github.com/alnah/go-tex2html/internal/assets"
)

// BaseStyle is the name of the stylesheet every page gets before the one
// of its document class.
const BaseStyle = assets.BaseStyleName

// AssetLoader defines the contract for loading CSS styles.
// Implementations may load from filesystem, embedded assets, a database,
// etc.
//
// Styles are looked up by name: BaseStyle, then the name of the document
// class ("article", "book"), then the names passed to WithStyles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain styles/{name}.css files.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	stack, err := assets.New(basePath)
	if err != nil {
		return nil, errors.Join(ErrInvalidAssetPath, err)
	}
	return stack, nil
}

// StyleNames lists the embedded styles.
func StyleNames() []string {
	return assets.StyleNames()
}
