package service

// systemMessage pins the model to JSON-only output.
const systemMessage = "You are a helpful medical/academic report simplifier. Always respond with valid JSON only."

// standardDisclaimer is attached to every analysis, including the fallback.
const standardDisclaimer = "This is an automated analysis. Please consult healthcare professionals for medical advice."

// buildReportPrompt returns the structured analysis prompt for the given
// (already truncated) report text.
func buildReportPrompt(reportText string) string {
	return `You are a medical report simplifier. Analyze this medical/academic report and provide a JSON response with simplified, patient-friendly explanations.

REPORT TEXT:
` + reportText + `

Please return a JSON object with this exact structure:
{
  "summary": "Brief overall summary in simple language",
  "parameters": [
    {
      "parameter": "Test/Course name",
      "original_value": "Original value from report",
      "normal_range": "Normal range if available, or 'Not specified'",
      "interpretation": "Simple 1-2 sentence explanation",
      "severity": "normal|borderline|abnormal",
      "confidence": "high|medium|low"
    }
  ],
  "recommendations": [
    "Simple recommendation 1",
    "Simple recommendation 2"
  ],
  "disclaimer": "This is an automated analysis for educational purposes only. Consult healthcare professionals for medical advice."
}

Focus on:
- Use simple, non-technical language
- Explain what abnormal values might mean
- Provide reassurance for normal values
- Include actionable recommendations when appropriate
- If this is academic data (grades, courses), adapt explanations accordingly`
}
