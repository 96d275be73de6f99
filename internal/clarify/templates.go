package clarify

import (
	"strings"

	"gandalf.app/compiler/internal/model"
)

func options(a, b, c string) map[string]string {
	return map[string]string{model.OptionA: a, model.OptionB: b, model.OptionC: c}
}

// formatQuestion branches on image-vs-document cues to pick the right format
// family.
func formatQuestion(text string) model.Clarification {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "upload") || strings.Contains(lower, "photo") || strings.Contains(lower, "image") {
		return model.Clarification{
			Question:      "What image formats should be supported?",
			Options:       options("JPG and PNG", "JPG, PNG, and GIF", "All common image formats"),
			DefaultOption: model.OptionA,
		}
	}
	return model.Clarification{
		Question:      "Which format should the report be exported in?",
		Options:       options("CSV", "PDF", "XLSX"),
		DefaultOption: model.OptionA,
	}
}

// platformQuestion distinguishes mobile version questions from environment
// questions.
func platformQuestion(text string) model.Clarification {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "ios") {
		return model.Clarification{
			Question:      "Which iOS version is affected?",
			Options:       options("iOS 16+", "iOS 15", "All supported iOS versions"),
			DefaultOption: model.OptionC,
		}
	}
	if strings.Contains(lower, "android") {
		return model.Clarification{
			Question:      "Which Android version is affected?",
			Options:       options("Android 12+", "Android 11", "All supported Android versions"),
			DefaultOption: model.OptionC,
		}
	}
	return model.Clarification{
		Question:      "Which environment is affected?",
		Options:       options("Production", "Staging", "Both production and staging"),
		DefaultOption: model.OptionA,
	}
}

func scopeQuestion(text string, intentType model.IntentType) model.Clarification {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "button") || strings.Contains(lower, "toggle") || strings.Contains(lower, "control") {
		return model.Clarification{
			Question: "Where should the export be triggered?",
			Options: options(
				"Export button above the table",
				"Export option in row actions",
				"Export from a settings menu",
			),
			DefaultOption: model.OptionA,
		}
	}

	if strings.Contains(lower, "report") || strings.Contains(lower, "dashboard") || strings.Contains(lower, "metric") {
		if intentType == model.IntentBusinessNeed {
			return model.Clarification{
				Question: "What type of reporting is needed first?",
				Options: options(
					"Revenue and sales metrics",
					"User activity metrics",
					"Operational KPIs",
				),
				DefaultOption: model.OptionA,
			}
		}
		return model.Clarification{
			Question: "Which dashboard should be prioritized?",
			Options: options(
				"Executive overview",
				"Sales performance",
				"Customer success metrics",
			),
			DefaultOption: model.OptionA,
		}
	}

	if strings.Contains(lower, "team") && strings.Contains(lower, "schedule") {
		return model.Clarification{
			Question:      "How many team members should be included in the schedule?",
			Options:       options("3 members", "5 members", "7 members"),
			DefaultOption: model.OptionB,
		}
	}

	return model.Clarification{
		Question: "What is the scope of this change?",
		Options: options(
			"Single page/component",
			"Multiple related components",
			"System-wide change",
		),
		DefaultOption: model.OptionA,
	}
}

func actionQuestion(text string) model.Clarification {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "faster") || strings.Contains(lower, "speed") || strings.Contains(lower, "performance") {
		return model.Clarification{
			Question: "Which area should be prioritized for speed improvements?",
			Options: options(
				"Page load time",
				"Search results response time",
				"File upload performance",
			),
			DefaultOption: model.OptionA,
		}
	}

	if strings.Contains(lower, "onboarding") {
		return model.Clarification{
			Question: "Which onboarding stage needs improvement first?",
			Options: options(
				"Signup flow",
				"First-use tutorial",
				"Email onboarding sequence",
			),
			DefaultOption: model.OptionA,
		}
	}

	if strings.Contains(lower, "retention") {
		return model.Clarification{
			Question: "What retention metric should be targeted?",
			Options: options(
				"30-day active users",
				"Weekly active users",
				"7-day return rate",
			),
			DefaultOption: model.OptionA,
		}
	}

	if strings.Contains(lower, "support") && strings.Contains(lower, "ticket") {
		return model.Clarification{
			Question: "Which support ticket category should be addressed first?",
			Options: options(
				"Billing issues",
				"Login/access issues",
				"Feature usage questions",
			),
			DefaultOption: model.OptionB,
		}
	}

	return model.Clarification{
		Question:      "What specific aspect needs improvement?",
		Options:       options("User interface", "Performance", "Functionality"),
		DefaultOption: model.OptionA,
	}
}

func targetQuestion() model.Clarification {
	return model.Clarification{
		Question: "What is the target of this action?",
		Options: options(
			"User interface element",
			"Backend service",
			"Data/content",
		),
		DefaultOption: model.OptionA,
	}
}

func contextQuestion() model.Clarification {
	return model.Clarification{
		Question: "Please provide the meeting transcript to summarize.",
		Options: options(
			"Paste the transcript here",
			"Upload a file",
			"Provide a link",
		),
		DefaultOption: model.OptionA,
	}
}
