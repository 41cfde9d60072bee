package dialogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"awaaz/internal/dialogue"
	"awaaz/internal/schema"
)

func TestNextPrompt_AsksFirstMissingField(t *testing.T) {
	prompt := dialogue.NextPrompt(0, []string{schema.FieldGender, schema.FieldAddress})
	assert.Equal(t, "Aap mahila hain ya purush?", prompt)
}

func TestNextPrompt_AcknowledgesExtraction(t *testing.T) {
	prompt := dialogue.NextPrompt(2, []string{schema.FieldPhoneNumber})
	assert.Equal(t, dialogue.AckPrefix+"Aapka phone number batayiye.", prompt)
}

func TestNextPrompt_CompletionAfterExtraction(t *testing.T) {
	assert.Equal(t, dialogue.CompletionAckMessage, dialogue.NextPrompt(1, nil))
}

func TestNextPrompt_CompletionWithoutExtraction(t *testing.T) {
	assert.Equal(t, dialogue.CompletionMessage, dialogue.NextPrompt(0, []string{}))
}
