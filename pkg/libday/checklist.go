package libday

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

type (
	// A Checklist is the decoded content of a checklist entry.
	// Item order is preserved across encode/decode round-trips.
	Checklist struct {
		Items []ChecklistItem
	}

	// A ChecklistItem is a single line of a checklist.
	ChecklistItem struct {
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	}
)

// ValidChecklist returns true if content decodes as a sequence of
// checklist items. Used by the server to validate without fully decoding.
func ValidChecklist(content string) bool {
	v, err := fastjson.Parse(content)
	if err != nil {
		return false
	}

	items, err := v.Array()
	if err != nil {
		return false
	}

	for _, item := range items {
		if item.Type() != fastjson.TypeObject {
			return false
		}
		if item.Exists("text") && item.Get("text").Type() != fastjson.TypeString {
			return false
		}
		if item.Exists("completed") {
			t := item.Get("completed").Type()
			if t != fastjson.TypeTrue && t != fastjson.TypeFalse {
				return false
			}
		}
	}
	return true
}

// ParseChecklist decodes the content of a checklist entry.
func ParseChecklist(content string) (*Checklist, error) {
	var items []ChecklistItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, errors.Wrap(err, "could not parse checklist content")
	}
	return &Checklist{Items: items}, nil
}

// Encode serializes the checklist back to entry content.
func (c *Checklist) Encode() (string, error) {
	payload, err := json.Marshal(c.Items)
	return string(payload), errors.Wrap(err, "could not serialize checklist")
}

// Toggle flips the completed state of the item at the given index.
func (c *Checklist) Toggle(i int) error {
	if i < 0 || i >= len(c.Items) {
		return errors.Errorf("no checklist item at index %d", i)
	}
	c.Items[i].Completed = !c.Items[i].Completed
	return nil
}
