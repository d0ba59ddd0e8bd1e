package document

import (
	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
)

// Session is the editor state around a Document: which block is selected
// and which text block, if any, is in its editing sub-state. Neither piece of
// state lives on the blocks themselves.
type Session struct {
	doc      *Document
	selected string
	editing  string
}

func NewSession(doc *Document) *Session {
	return &Session{doc: doc}
}

func (s *Session) Document() *Document { return s.doc }

// Selected returns the selected block id, or "" when nothing is selected.
func (s *Session) Selected() string { return s.selected }

// Editing returns the id of the text block being edited, or "".
func (s *Session) Editing() string { return s.editing }

func (s *Session) Select(id string) error {
	if s.doc.indexOf(id) < 0 {
		return apperror.NotFound("block", id)
	}
	s.selected = id
	return nil
}

func (s *Session) ClearSelection() {
	s.selected = ""
}

// Insert appends b. A new text block goes straight into editing.
func (s *Session) Insert(b block.Block) {
	s.doc.Append(b)
	if b.Variant() == block.VariantText {
		s.editing = b.ID
	}
}

// BeginEdit puts a text block into its editing sub-state.
func (s *Session) BeginEdit(id string) error {
	b, err := s.doc.Get(id)
	if err != nil {
		return err
	}
	if b.Variant() != block.VariantText {
		return apperror.ValidationFailed("type", "only text blocks can be edited inline")
	}
	s.editing = id
	return nil
}

// EditText writes text into the block being edited. Edits are not validated.
func (s *Session) EditText(text string) error {
	if s.editing == "" {
		return apperror.ValidationFailed("editing", "no text block is being edited")
	}
	_, err := s.doc.UpdateByID(s.editing, block.Patch{Content: &text})
	return err
}

// Blur commits text to the edited block unconditionally and leaves the
// editing sub-state.
func (s *Session) Blur(text string) error {
	if s.editing == "" {
		return nil
	}
	id := s.editing
	s.editing = ""
	_, err := s.doc.UpdateByID(id, block.Patch{Content: &text})
	return err
}

// ApplyStyle merges patch into the selected block's style. With nothing
// selected it is a no-op.
func (s *Session) ApplyStyle(patch block.Style) (block.Block, bool, error) {
	if s.selected == "" {
		return block.Block{}, false, nil
	}
	current, err := s.doc.Get(s.selected)
	if err != nil {
		return block.Block{}, false, err
	}
	merged := current.Style.Merge(patch)
	updated, err := s.doc.UpdateByID(s.selected, block.Patch{Style: &merged})
	if err != nil {
		return block.Block{}, false, err
	}
	return updated, true, nil
}

// Delete removes a block and drops any selection or editing reference to it.
func (s *Session) Delete(id string) error {
	if err := s.doc.DeleteByID(id); err != nil {
		return err
	}
	if s.selected == id {
		s.selected = ""
	}
	if s.editing == id {
		s.editing = ""
	}
	return nil
}

func (s *Session) Duplicate(id string) (block.Block, error) {
	return s.doc.DuplicateByID(id)
}
