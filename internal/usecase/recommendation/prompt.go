package recommendation

import (
	"fmt"

	"github.com/futig/puppy-picker/internal/entity"
)

const systemPrompt = "You are a helpful dog breed expert. Provide accurate and helpful breed recommendations."

const promptTemplate = `Based on these preferences, recommend the ONE best dog breed match. Provide a brief explanation (2-3 sentences) why this breed is perfect for them.

Use British English spelling and terminology throughout your response.

Activity: %s | Space: %s | Experience: %s | Time: %s | Size: %s | Grooming: %s | Training: %s

Format your response with the breed name on the first line, followed by a blank line, then the explanation. Keep it concise and friendly.`

// BuildPrompt renders the user prompt for a validated answer set
func BuildPrompt(answers entity.AnswerSet) string {
	return fmt.Sprintf(promptTemplate,
		answers[entity.QuestionActivityLevel],
		answers[entity.QuestionLivingSpace],
		answers[entity.QuestionExperience],
		answers[entity.QuestionTimeCommitment],
		answers[entity.QuestionBreedSize],
		answers[entity.QuestionGroomingWillingness],
		answers[entity.QuestionTrainability],
	)
}
