// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import "golang.org/x/text/cases"

// Name identifies a registered texture. Names compare case-insensitively
// ("Icon" and "ICON" are the same texture) but keep their original spelling.
type Name string

// NameNone is the empty name. It never identifies a texture.
const NameNone Name = ""

// key returns the folded form used for comparisons. A Caser keeps state, so
// each call gets its own.
func (n Name) key() string {
	return cases.Fold().String(string(n))
}

// Equal reports whether two names refer to the same texture.
func (n Name) Equal(other Name) bool {
	if n == other {
		return true
	}
	return n.key() == other.key()
}

// IsNone reports whether n is the empty name.
func (n Name) IsNone() bool {
	return n == NameNone
}

func (n Name) String() string {
	return string(n)
}
