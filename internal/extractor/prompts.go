package extractor

import "strings"

// extractionInstruction asks, in Arabic, for the six transaction fields as JSON.
const extractionInstruction = `استخرج من الرسالة التالية عناصر العملية المالية وأعطني البيانات بصيغة JSON تحتوي على:
"operation", "card", "merchant", "amount", "balance", "timestamp"`

const extractionExample = `مثال للرد:
{
  "operation": "شراء",
  "card": "0000 ;فيزا-أبل باي",
  "merchant": "examplco",
  "amount": 35,
  "balance": 10000,
  "timestamp": "2026-06-25T23:54:00"
}`

const extractionRules = `Return ONLY one raw JSON object.
Do NOT wrap the response in code fences.
"amount" and "balance" must be numbers; "timestamp" must be ISO-8601.`

// BuildPrompt renders the extraction prompt for one message. description is optional
// context supplied by the user.
func BuildPrompt(message, description string) string {
	var sb strings.Builder
	sb.WriteString(extractionInstruction)
	sb.WriteString("\n\nالرسالة:\n")
	sb.WriteString(message)
	if d := strings.TrimSpace(description); d != "" {
		sb.WriteString("\n\nوصف إضافي: ")
		sb.WriteString(d)
	}
	sb.WriteString("\n\n")
	sb.WriteString(extractionExample)
	sb.WriteString("\n\n")
	sb.WriteString(extractionRules)
	sb.WriteString("\n")
	return sb.String()
}
