package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
)

func TestSession_InsertTextStartsEditing(t *testing.T) {
	s := NewSession(New(nil))
	text := mustCreate(t, block.VariantText, block.Input{})
	s.Insert(text)
	assert.Equal(t, text.ID, s.Editing())

	quote := mustCreate(t, block.VariantQuote, block.Input{Text: "ق"})
	s.Insert(quote)
	assert.Equal(t, text.ID, s.Editing(), "non-text inserts leave editing alone")
}

func TestSession_EditAndBlurCommit(t *testing.T) {
	s := NewSession(New(nil))
	text := mustCreate(t, block.VariantText, block.Input{})
	s.Insert(text)

	require.NoError(t, s.EditText("صباح"))
	got, err := s.Document().Get(text.ID)
	require.NoError(t, err)
	assert.Equal(t, "صباح", got.Content)

	require.NoError(t, s.Blur(""))
	got, err = s.Document().Get(text.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Content, "blur commits unconditionally, even empty text")
	assert.Equal(t, "", s.Editing())
}

func TestSession_BeginEditOnlyText(t *testing.T) {
	s := NewSession(New(nil))
	code := mustCreate(t, block.VariantCode, block.Input{Code: "x := 1"})
	s.Insert(code)

	err := s.BeginEdit(code.ID)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	assert.True(t, errors.Is(s.BeginEdit("missing"), apperror.ErrNotFound))
}

func TestSession_EditWithoutActiveBlock(t *testing.T) {
	s := NewSession(New(nil))
	assert.True(t, errors.Is(s.EditText("x"), apperror.ErrValidation))
	assert.NoError(t, s.Blur("x"))
}

func TestSession_ApplyStyleOnlyToSelected(t *testing.T) {
	d := New(nil)
	a := mustCreate(t, block.VariantTag, block.Input{Name: "أ"})
	b := mustCreate(t, block.VariantTag, block.Input{Name: "ب"})
	d.Append(a)
	d.Append(b)
	s := NewSession(d)

	_, applied, err := s.ApplyStyle(block.Style{Alignment: block.AlignCenter})
	require.NoError(t, err)
	assert.False(t, applied, "no selection means no-op")

	require.NoError(t, s.Select(b.ID))
	updated, applied, err := s.ApplyStyle(block.Style{Alignment: block.AlignCenter})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, block.AlignCenter, updated.Style.Alignment)
	assert.Equal(t, b.Style.BackgroundColor, updated.Style.BackgroundColor, "merge keeps existing fields")

	untouched, err := d.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, block.Alignment(""), untouched.Style.Alignment)
}

func TestSession_DeleteClearsSelectionAndEditing(t *testing.T) {
	s := NewSession(New(nil))
	text := mustCreate(t, block.VariantText, block.Input{})
	other := mustCreate(t, block.VariantTag, block.Input{Name: "و"})
	s.Insert(text)
	s.Insert(other)

	require.NoError(t, s.Select(other.ID))
	require.NoError(t, s.Delete(text.ID))
	assert.Equal(t, other.ID, s.Selected(), "selection of another block survives")
	assert.Equal(t, "", s.Editing())

	require.NoError(t, s.Delete(other.ID))
	assert.Equal(t, "", s.Selected())
	assert.Equal(t, 0, s.Document().Len())
}

func TestSession_SelectMissing(t *testing.T) {
	s := NewSession(New(nil))
	assert.True(t, errors.Is(s.Select("nope"), apperror.ErrNotFound))
	s.ClearSelection()
	assert.Equal(t, "", s.Selected())
}

func TestSession_Duplicate(t *testing.T) {
	s := NewSession(New(nil))
	q := mustCreate(t, block.VariantQuote, block.Input{Text: "ق"})
	s.Insert(q)

	dup, err := s.Duplicate(q.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Document().Len())
	assert.NotEqual(t, q.ID, dup.ID)
}
