// Package document holds the ordered block sequence of one journal entry
// while it is being edited.
//
// Insertion order is display order. A Document is owned by a single editing
// session and is not safe for concurrent use.
package document

import (
	"fmt"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
)

type Document struct {
	blocks []block.Block
}

// New returns a document holding copies of blocks.
func New(blocks []block.Block) *Document {
	d := &Document{}
	d.blocks = cloneAll(blocks)
	return d
}

// Blocks returns a copy of the sequence in display order.
func (d *Document) Blocks() []block.Block {
	return cloneAll(d.blocks)
}

func (d *Document) Len() int {
	return len(d.blocks)
}

// Get returns a copy of the block with the given id.
func (d *Document) Get(id string) (block.Block, error) {
	i := d.indexOf(id)
	if i < 0 {
		return block.Block{}, apperror.NotFound("block", id)
	}
	return d.blocks[i].Clone(), nil
}

// Append adds b at the end. Ids are trusted to be unique because they come
// from the block factory.
func (d *Document) Append(b block.Block) {
	d.blocks = append(d.blocks, b.Clone())
}

// UpdateByID applies p to the block with the given id.
func (d *Document) UpdateByID(id string, p block.Patch) (block.Block, error) {
	i := d.indexOf(id)
	if i < 0 {
		return block.Block{}, apperror.NotFound("block", id)
	}
	updated, err := d.blocks[i].Apply(p)
	if err != nil {
		return block.Block{}, err
	}
	d.blocks[i] = updated
	return updated.Clone(), nil
}

// DeleteByID removes exactly one block and keeps the relative order of the rest.
func (d *Document) DeleteByID(id string) error {
	i := d.indexOf(id)
	if i < 0 {
		return apperror.NotFound("block", id)
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	return nil
}

// DuplicateByID inserts a copy of the block, with a fresh id, right after
// the original and returns the copy.
func (d *Document) DuplicateByID(id string) (block.Block, error) {
	i := d.indexOf(id)
	if i < 0 {
		return block.Block{}, apperror.NotFound("block", id)
	}
	dup := d.blocks[i].Clone()
	dup.ID = block.NewID()

	d.blocks = append(d.blocks, block.Block{})
	copy(d.blocks[i+2:], d.blocks[i+1:])
	d.blocks[i+1] = dup
	return dup.Clone(), nil
}

// Replace swaps in a whole new sequence. This is how blocks are reordered.
func (d *Document) Replace(blocks []block.Block) error {
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			return apperror.ValidationFailed("id", "every block needs an id")
		}
		if _, dup := seen[b.ID]; dup {
			return apperror.ValidationFailed("id", fmt.Sprintf("duplicate block id %s", b.ID))
		}
		seen[b.ID] = struct{}{}
	}
	d.blocks = cloneAll(blocks)
	return nil
}

func (d *Document) indexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(blocks []block.Block) []block.Block {
	out := make([]block.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
