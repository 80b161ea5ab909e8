// Package assets provides the stylesheets of the rendered documents.
//
// Every page links the base stylesheet followed by the stylesheet of its
// document class. Both are embedded at compile time. A Stack may be given a
// directory whose styles/{name}.css files replace the embedded ones of the
// same name:
//
//	{dir}/
//	└── styles/
//	    └── {name}.css           # e.g. base.css, article.css
//
// Reads from the directory go through an os.Root, so a style can never
// resolve to a file outside of it, symlinks included.
package assets
