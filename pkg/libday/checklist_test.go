package libday_test

import (
	"testing"

	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/stretchr/testify/assert"
)

func TestValidChecklist(t *testing.T) {
	assert.True(t, libday.ValidChecklist(`[]`))
	assert.True(t, libday.ValidChecklist(`[{"text":"Milk","completed":false}]`))
	assert.True(t, libday.ValidChecklist(`[{"text":"Milk"},{"completed":true}]`))

	assert.False(t, libday.ValidChecklist(``))
	assert.False(t, libday.ValidChecklist(`plain note content`))
	assert.False(t, libday.ValidChecklist(`{"text":"Milk"}`))
	assert.False(t, libday.ValidChecklist(`["Milk","Breadsticks"]`))
	assert.False(t, libday.ValidChecklist(`[{"text":42}]`))
	assert.False(t, libday.ValidChecklist(`[{"text":"Milk","completed":"yes"}]`))
	assert.False(t, libday.ValidChecklist(`[{"text":"Milk","completed":1}]`))
}

func TestValidChecklistAgreesWithParse(t *testing.T) {
	// Whatever the validator lets through, the codec must decode.
	for _, content := range []string{
		`[]`,
		`[{"text":"Milk","completed":false}]`,
		`[{"text":"Milk"},{"completed":true}]`,
		`[{"text":"Milk","completed":"yes"}]`,
		`[{"text":42}]`,
		`plain note content`,
	} {
		_, err := libday.ParseChecklist(content)
		assert.Equal(t, libday.ValidChecklist(content), err == nil, content)
	}
}

func TestParseChecklist(t *testing.T) {
	checklist, err := libday.ParseChecklist(`[{"text":"Milk","completed":false},{"text":"Breadsticks","completed":true}]`)
	assert.NoError(t, err)
	assert.Len(t, checklist.Items, 2)
	assert.Equal(t, "Milk", checklist.Items[0].Text)
	assert.False(t, checklist.Items[0].Completed)
	assert.Equal(t, "Breadsticks", checklist.Items[1].Text)
	assert.True(t, checklist.Items[1].Completed)

	_, err = libday.ParseChecklist(`plain note content`)
	assert.Error(t, err)
}

func TestChecklistToggle(t *testing.T) {
	checklist := &libday.Checklist{
		Items: []libday.ChecklistItem{
			{Text: "Milk"},
			{Text: "Breadsticks", Completed: true},
		},
	}

	assert.NoError(t, checklist.Toggle(0))
	assert.True(t, checklist.Items[0].Completed)
	assert.NoError(t, checklist.Toggle(1))
	assert.False(t, checklist.Items[1].Completed)

	assert.Error(t, checklist.Toggle(-1))
	assert.Error(t, checklist.Toggle(2))
}

func TestChecklistEncode(t *testing.T) {
	checklist := &libday.Checklist{
		Items: []libday.ChecklistItem{
			{Text: "Milk"},
			{Text: "Breadsticks", Completed: true},
		},
	}

	content, err := checklist.Encode()
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"text":"Milk","completed":false},{"text":"Breadsticks","completed":true}]`, content)

	decoded, err := libday.ParseChecklist(content)
	assert.NoError(t, err)
	assert.Equal(t, checklist.Items, decoded.Items)
}
