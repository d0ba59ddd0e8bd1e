// Package block defines the content blocks that make up a journal entry.
//
// A Block carries the fields every variant shares (id, content, style and
// layout hints) plus a variant-specific payload in Data. The set of payload
// types is closed: only the types in this package implement Data, so a
// block's variant and the shape of its metadata can never disagree.
package block

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sakif/yawmiyat/internal/apperror"
)

// Variant is the discriminant of a content block.
type Variant string

const (
	VariantText         Variant = "text"
	VariantTag          Variant = "tag"
	VariantAppointment  Variant = "appointment"
	VariantQuote        Variant = "quote"
	VariantCode         Variant = "code"
	VariantTracker      Variant = "tracker"
	VariantShoppingList Variant = "shopping-list"
	VariantTime         Variant = "time"
	VariantShape        Variant = "shape"
)

// Variants lists every variant in the order the editor toolbar offers them.
var Variants = []Variant{
	VariantText, VariantTag, VariantAppointment, VariantQuote, VariantCode,
	VariantTracker, VariantShoppingList, VariantTime, VariantShape,
}

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	for _, known := range Variants {
		if v == known {
			return true
		}
	}
	return false
}

// Point is a layout hint for freely placed blocks.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a layout hint for freely placed blocks.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Block is one unit of entry content.
type Block struct {
	ID       string
	Content  string
	Style    Style
	Position *Point
	Size     *Size
	Data     Data
}

// Data is the variant-specific payload of a block.
type Data interface {
	Variant() Variant
	clone() Data
}

// Variant returns the block's discriminant. A block without a payload is text.
func (b Block) Variant() Variant {
	if b.Data == nil {
		return VariantText
	}
	return b.Data.Variant()
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := b
	out.Style = b.Style.clone()
	if b.Position != nil {
		p := *b.Position
		out.Position = &p
	}
	if b.Size != nil {
		s := *b.Size
		out.Size = &s
	}
	if b.Data != nil {
		out.Data = b.Data.clone()
	}
	return out
}

// NewID returns a fresh block identifier.
func NewID() string {
	return uuid.NewString()
}

// Patch is a partial update of a block. Nil fields are left unchanged.
// Style, when present, replaces the whole style; use Style.Merge for a
// field-level merge.
type Patch struct {
	Content  *string
	Style    *Style
	Data     Data
	Position *Point
	Size     *Size
}

// Apply returns b with p applied. The id is never touched and a payload of a
// different variant is rejected, since changing type requires delete+insert.
func (b Block) Apply(p Patch) (Block, error) {
	out := b.Clone()
	if p.Data != nil {
		if p.Data.Variant() != b.Variant() {
			return b, apperror.ValidationFailed("type",
				fmt.Sprintf("cannot change block %s from %s to %s", b.ID, b.Variant(), p.Data.Variant()))
		}
		out.Data = p.Data.clone()
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Style != nil {
		out.Style = p.Style.clone()
	}
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	if p.Size != nil {
		sz := *p.Size
		out.Size = &sz
	}
	return out, nil
}

// TextData is the (empty) payload of a free text block.
type TextData struct{}

func (TextData) Variant() Variant { return VariantText }
func (d TextData) clone() Data    { return d }

// TagData is the payload of an inline tag chip.
type TagData struct {
	Color string `json:"color"`
}

func (TagData) Variant() Variant { return VariantTag }
func (d TagData) clone() Data    { return d }

// Appointment is a scheduled event embedded in an entry.
type Appointment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Reminder bool   `json:"reminder,omitempty"`
}

type AppointmentData struct {
	Appointment Appointment `json:"appointment"`
}

func (AppointmentData) Variant() Variant { return VariantAppointment }
func (d AppointmentData) clone() Data    { return d }

type QuoteData struct {
	Author string `json:"author"`
}

func (QuoteData) Variant() Variant { return VariantQuote }
func (d QuoteData) clone() Data    { return d }

type CodeData struct {
	Language string `json:"language"`
}

func (CodeData) Variant() Variant { return VariantCode }
func (d CodeData) clone() Data    { return d }

// Tracker counts progress toward a daily target (glasses of water, steps...).
type Tracker struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Unit    string  `json:"unit"`
	Color   string  `json:"color"`
}

// Progress is current/target as a percentage, clamped to [0, 100].
func (t Tracker) Progress() float64 {
	if t.Target <= 0 {
		return 0
	}
	p := t.Current / t.Target * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

type TrackerData struct {
	Tracker Tracker `json:"tracker"`
}

func (TrackerData) Variant() Variant { return VariantTracker }
func (d TrackerData) clone() Data    { return d }

type ShoppingItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Checked  bool     `json:"checked"`
	Quantity *float64 `json:"quantity,omitempty"`
}

type ShoppingListData struct {
	Items []ShoppingItem `json:"items"`
}

func (ShoppingListData) Variant() Variant { return VariantShoppingList }

func (d ShoppingListData) clone() Data {
	items := make([]ShoppingItem, len(d.Items))
	for i, it := range d.Items {
		if it.Quantity != nil {
			q := *it.Quantity
			it.Quantity = &q
		}
		items[i] = it
	}
	return ShoppingListData{Items: items}
}

// TimeData is the (empty) payload of a timestamp block; the formatted time
// lives in Content.
type TimeData struct{}

func (TimeData) Variant() Variant { return VariantTime }
func (d TimeData) clone() Data    { return d }

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeTriangle  ShapeType = "triangle"
	ShapeStar      ShapeType = "star"
	ShapeHexagon   ShapeType = "hexagon"
	ShapeDiamond   ShapeType = "diamond"
)

// ShapeTypes lists the drawable shapes.
var ShapeTypes = []ShapeType{
	ShapeRectangle, ShapeCircle, ShapeTriangle, ShapeStar, ShapeHexagon, ShapeDiamond,
}

func (s ShapeType) Valid() bool {
	for _, known := range ShapeTypes {
		if s == known {
			return true
		}
	}
	return false
}

type ShapeData struct {
	ShapeType   ShapeType `json:"shapeType"`
	FillColor   string    `json:"fillColor"`
	StrokeColor string    `json:"strokeColor"`
	StrokeWidth float64   `json:"strokeWidth"`
}

func (ShapeData) Variant() Variant { return VariantShape }
func (d ShapeData) clone() Data    { return d }
