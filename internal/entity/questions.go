package entity

// Question identifiers
const (
	QuestionActivityLevel       = "activityLevel"
	QuestionLivingSpace         = "livingSpace"
	QuestionExperience          = "experience"
	QuestionTimeCommitment      = "timeCommitment"
	QuestionBreedSize           = "breedSize"
	QuestionGroomingWillingness = "groomingWillingness"
	QuestionTrainability        = "trainability"
)

var questions = []Question{
	{
		ID:   QuestionActivityLevel,
		Text: "What's your activity level?",
		Options: []Option{
			{Value: "low", Label: "Low", Description: "I prefer a calm companion"},
			{Value: "moderate", Label: "Moderate", Description: "Regular walks are good"},
			{Value: "high", Label: "High", Description: "I'm very active and love to exercise"},
		},
	},
	{
		ID:   QuestionLivingSpace,
		Text: "What's your living space like?",
		Options: []Option{
			{Value: "apartment", Label: "Apartment", Description: "Small space"},
			{Value: "house", Label: "House", Description: "With a yard"},
			{Value: "farm", Label: "Farm/Rural", Description: "Lots of space"},
		},
	},
	{
		ID:   QuestionExperience,
		Text: "What's your experience with dogs?",
		Options: []Option{
			{Value: "none", Label: "First-timer", Description: "Never owned a dog"},
			{Value: "some", Label: "Some experience", Description: "Owned a dog or two"},
			{Value: "experienced", Label: "Experienced", Description: "Very familiar with dogs"},
		},
	},
	{
		ID:   QuestionTimeCommitment,
		Text: "How much time can you commit daily?",
		Options: []Option{
			{Value: "minimal", Label: "Less than 1 hour", Description: "Busy schedule"},
			{Value: "moderate", Label: "1-3 hours", Description: "Moderate commitment"},
			{Value: "high", Label: "3+ hours", Description: "Lots of time available"},
		},
	},
	{
		ID:   QuestionBreedSize,
		Text: "What size dog do you prefer?",
		Options: []Option{
			{Value: "small", Label: "Small", Description: "Under 9 kg"},
			{Value: "medium", Label: "Medium", Description: "9-23 kg"},
			{Value: "large", Label: "Large", Description: "23-45 kg"},
			{Value: "extra-large", Label: "Extra Large", Description: "45+ kg"},
		},
	},
	{
		ID:   QuestionGroomingWillingness,
		Text: "How much grooming are you comfortable with?",
		Options: []Option{
			{Value: "low", Label: "Low", Description: "Minimal maintenance"},
			{Value: "moderate", Label: "Moderate", Description: "Regular brushing is fine"},
			{Value: "high", Label: "High", Description: "I enjoy grooming"},
		},
	},
	{
		ID:   QuestionTrainability,
		Text: "What's your training preference?",
		Options: []Option{
			{Value: "easy", Label: "Easy to train", Description: "Quick learner"},
			{Value: "moderate", Label: "Moderate", Description: "Some training needed"},
			{Value: "challenge", Label: "Challenge", Description: "I enjoy training challenges"},
		},
	},
}

// Questions returns a copy of the fixed, ordered questionnaire
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		opts := make([]Option, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{ID: q.ID, Text: q.Text, Options: opts}
	}
	return out
}
