package domain

import "time"

// DefaultPrompt is substituted when a thread is created or edited with an
// empty prompt.
const DefaultPrompt = "What does God want you to know about him? About yourself?\n" +
	"For what is the soul thankful?\n" +
	"What are the words or actions that demonstrate your soul's love for Christ?\n" +
	"What is your soul afraid of God knowing?\n" +
	"To what extent is your soul willing to go to preserve unity in your community?"

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	GroupName string
	Prompt    string
	SermonId  SermonId
	Owner     Username
}

type Thread struct {
	Id        ThreadId
	SermonId  SermonId
	GroupName string
	Prompt    string
	Username  Username
	Date      time.Time
}

// PromptOrDefault makes the optional-prompt fallback explicit instead of
// scattering empty-string checks through the services.
func PromptOrDefault(prompt string) string {
	if prompt == "" {
		return DefaultPrompt
	}
	return prompt
}
