package block

import (
	"encoding/json"
	"fmt"
)

// wireBlock is the persisted and exported shape of a block.
type wireBlock struct {
	ID       string          `json:"id"`
	Type     Variant         `json:"type"`
	Content  string          `json:"content"`
	Style    *Style          `json:"style,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Position *Point          `json:"position,omitempty"`
	Size     *Size           `json:"size,omitempty"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	w := wireBlock{
		ID:       b.ID,
		Type:     b.Variant(),
		Content:  b.Content,
		Position: b.Position,
		Size:     b.Size,
	}
	if !b.Style.IsZero() {
		s := b.Style
		w.Style = &s
	}

	switch b.Data.(type) {
	case nil, TextData, TimeData:
	default:
		meta, err := json.Marshal(b.Data)
		if err != nil {
			return nil, fmt.Errorf("block: encoding %s metadata: %w", b.Variant(), err)
		}
		w.Metadata = meta
	}

	return json.Marshal(w)
}

func (b *Block) UnmarshalJSON(raw []byte) error {
	var w wireBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}

	data, err := emptyData(w.Type)
	if err != nil {
		return err
	}
	if len(w.Metadata) > 0 && string(w.Metadata) != "null" {
		if data, err = decodeMetadata(w.Type, w.Metadata); err != nil {
			return fmt.Errorf("block: decoding %s metadata for %s: %w", w.Type, w.ID, err)
		}
	}

	*b = Block{
		ID:       w.ID,
		Content:  w.Content,
		Position: w.Position,
		Size:     w.Size,
		Data:     data,
	}
	if w.Style != nil {
		b.Style = *w.Style
	}
	return nil
}

func emptyData(v Variant) (Data, error) {
	switch v {
	case VariantText:
		return TextData{}, nil
	case VariantTag:
		return TagData{}, nil
	case VariantAppointment:
		return AppointmentData{}, nil
	case VariantQuote:
		return QuoteData{}, nil
	case VariantCode:
		return CodeData{}, nil
	case VariantTracker:
		return TrackerData{}, nil
	case VariantShoppingList:
		return ShoppingListData{}, nil
	case VariantTime:
		return TimeData{}, nil
	case VariantShape:
		return ShapeData{}, nil
	}
	return nil, fmt.Errorf("block: unknown type %q", v)
}

func decodeMetadata(v Variant, raw json.RawMessage) (Data, error) {
	switch v {
	case VariantTag:
		var d TagData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantAppointment:
		var d AppointmentData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantQuote:
		var d QuoteData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantCode:
		var d CodeData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantTracker:
		var d TrackerData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantShoppingList:
		var d ShoppingListData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VariantShape:
		var d ShapeData
		err := json.Unmarshal(raw, &d)
		return d, err
	}
	// text and time carry no metadata; anything sent is dropped.
	return emptyData(v)
}
