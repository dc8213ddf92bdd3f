package llm

import (
	"fmt"
)

const personaTemplate = `You are a strict but fair technical interviewer for a %s role focusing on %s.
- Ask only ONE question at a time.
- Keep your responses short (under 3 sentences) like a real conversation.
- If the user's answer is wrong, politely correct them and move on.
- Do not write code unless asked.`

// BuildSystemInstruction returns the fixed interviewer persona parameterized
// by the interview's role and stack. The core treats this as opaque
// configuration; nothing downstream interprets it.
func BuildSystemInstruction(jobRole, techStack string) string {
	return fmt.Sprintf(personaTemplate, jobRole, techStack)
}
