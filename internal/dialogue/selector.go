package dialogue

import "awaaz/internal/schema"

// Spoken dialogue strings. The phrasing varies with whether the last
// utterance produced anything, so the conversation does not feel like the
// same question on repeat.
const (
	AckPrefix            = "Dhanyavaad! Maine samajh liya. Ab kripya bataiye: "
	CompletionAckMessage = `Bahut accha! Sab jaankari mil gayi hai. Ab aap "Generate Final Form" button dabayein.`
	CompletionMessage    = "Sab jaankari mil gayi hai! Ab aap form bana sakte hain."
	ApologyPrompt        = "Maaf kijiye, ek chhoti si gadbad ho gayi. Kripya dobara bataiye."
)

// NextPrompt picks the next question. The first entry of missing (schema
// order) determines the field asked for; when nothing is missing a
// completion message is returned instead.
func NextPrompt(extractedCount int, missing []string) string {
	if len(missing) == 0 {
		if extractedCount > 0 {
			return CompletionAckMessage
		}
		return CompletionMessage
	}
	prompt := schema.PromptFor(missing[0])
	if extractedCount > 0 {
		return AckPrefix + prompt
	}
	return prompt
}
