package driven

// Prompt names used with PromptStore.Load.
const (
	// PromptGroundedAnswer is the template for answering a question
	// from retrieved context. Takes two %s placeholders: the joined
	// context and the question.
	PromptGroundedAnswer = "grounded_answer"

	// PromptChatSystem is the system prompt for the interactive chat.
	PromptChatSystem = "chat_system"
)

// PromptStore provides access to LLM prompt templates.
// Implementations may load from user-editable files with embedded
// fallbacks.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads.
	Reload()

	// Dir returns the directory prompts are loaded from.
	Dir() string
}
