package gemini

import "fmt"

func buildChatPrompt(question string) string {
	return fmt.Sprintf(`You are an AI career assistant. Provide helpful, friendly advice about resumes, career development, job search strategies, and professional growth.

User question: %s

Please provide a helpful response that is:
- Professional but friendly
- Actionable and specific
- Under 200 words
- Focused on career development

If the user asks about resume analysis, provide general tips and guidance.`, question)
}

func buildAssessmentPrompt(resumeText, targetRole string) string {
	if targetRole == "" {
		targetRole = "professional"
	}
	return fmt.Sprintf(`Analyze this resume for a %s role and provide:

1. **Skills Assessment**: List key skills found and rate them (1-10)
2. **Gap Analysis**: Identify missing skills for the target role
3. **Improvement Suggestions**: Specific actionable advice
4. **Career Fit**: How well this resume fits the target role (1-10)
5. **Learning Tracks**: Recommend 2-3 learning paths

Resume content:
%s

Please provide a structured JSON response with these sections.`, targetRole, resumeText)
}
