package robocopy

import "errors"

// ErrEmptyPostCopyActions is returned by PostCopyActions.Union when the
// combined value would both add and remove an empty attribute set. Such a
// value would serialize to a meaningless "/a+:" "/a-:" pair, so the
// combination fails fast instead.
var ErrEmptyPostCopyActions = errors.New("post-copy actions would neither add nor remove any attribute")

// PostCopyActions describes attribute changes robocopy applies to files after
// copying them: an "add" set (/a+:<letters>) and a "remove" set
// (/a-:<letters>). Values built from AddAttributes or RemoveAttributes carry
// one half; Union merges halves, unioning attribute sets where both operands
// carry the same half.
type PostCopyActions struct {
	add    *FileAttributes
	remove *FileAttributes
}

// AddAttributes adds the given attributes to copied files (/a+).
func AddAttributes(a FileAttributes) PostCopyActions {
	return PostCopyActions{add: &a}
}

// RemoveAttributes removes the given attributes from copied files (/a-).
func RemoveAttributes(a FileAttributes) PostCopyActions {
	return PostCopyActions{remove: &a}
}

// Union merges two post-copy actions. It fails with ErrEmptyPostCopyActions
// when both halves of the result are present but empty, since emitting an
// empty add/remove pair asks robocopy to do nothing.
func (p PostCopyActions) Union(b PostCopyActions) (PostCopyActions, error) {
	merged := PostCopyActions{add: unionAttributeHalf(p.add, b.add), remove: unionAttributeHalf(p.remove, b.remove)}
	if merged.add != nil && merged.remove != nil && merged.add.IsZero() && merged.remove.IsZero() {
		return PostCopyActions{}, ErrEmptyPostCopyActions
	}
	return merged, nil
}

func unionAttributeHalf(a, b *FileAttributes) *FileAttributes {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		u := *b
		return &u
	case b == nil:
		u := *a
		return &u
	default:
		u := a.Union(*b)
		return &u
	}
}

// Singles decomposes the value into its add-only and remove-only components,
// add first.
func (p PostCopyActions) Singles() []PostCopyActions {
	var singles []PostCopyActions
	if p.add != nil {
		singles = append(singles, AddAttributes(*p.add))
	}
	if p.remove != nil {
		singles = append(singles, RemoveAttributes(*p.remove))
	}
	return singles
}

// Tokens serializes the actions: the add token first, then the remove token.
func (p PostCopyActions) Tokens() []string {
	var tokens []string
	if p.add != nil {
		tokens = append(tokens, "/a+:"+p.add.Letters())
	}
	if p.remove != nil {
		tokens = append(tokens, "/a-:"+p.remove.Letters())
	}
	return tokens
}
